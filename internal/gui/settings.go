package gui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

// Settings mirrors the editable fields of the settings form
type Settings struct {
	RawsFolder    string
	ReferenceFile string
	OutputExcel   string
	Genre         string
	Provider      string

	LocalModel                  bool
	HanjaIdentification         bool
	GuessHanja                  bool
	DoCategorization            bool
	DoTranslation               bool
	SimplifiedChineseConversion bool

	// Sizes are kept as typed text until Apply parses them
	ChaptersAnalyzed        string
	CategorizationBatchSize string
	TranslationBatchSize    string
	HanjaGuessingBatchSize  string
}

// SettingsFrom fills the form values from a config
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		RawsFolder:    cfg.RawsFolder,
		ReferenceFile: cfg.ReferenceFile,
		OutputExcel:   cfg.OutputExcel,
		Genre:         cfg.Genre,
		Provider:      cfg.Provider,

		LocalModel:                  cfg.LocalModel,
		HanjaIdentification:         cfg.HanjaIdentification,
		GuessHanja:                  cfg.GuessHanja,
		DoCategorization:            cfg.DoCategorization,
		DoTranslation:               cfg.DoTranslation,
		SimplifiedChineseConversion: cfg.SimplifiedChineseConversion,

		ChaptersAnalyzed:        strconv.Itoa(cfg.ChaptersAnalyzed),
		CategorizationBatchSize: strconv.Itoa(cfg.CategorizationBatchSize),
		TranslationBatchSize:    strconv.Itoa(cfg.TranslationBatchSize),
		HanjaGuessingBatchSize:  strconv.Itoa(cfg.HanjaGuessingBatchSize),
	}
}

// Apply returns a copy of base with the form values applied
// The copy is validated so a run never starts from a broken form.
func (s Settings) Apply(base *config.Config) (*config.Config, error) {
	cfg := *base

	cfg.RawsFolder = strings.TrimSpace(s.RawsFolder)
	cfg.ReferenceFile = strings.TrimSpace(s.ReferenceFile)
	cfg.OutputExcel = strings.TrimSpace(s.OutputExcel)
	cfg.Genre = strings.ToLower(strings.TrimSpace(s.Genre))
	cfg.Provider = strings.ToLower(strings.TrimSpace(s.Provider))

	cfg.LocalModel = s.LocalModel
	cfg.HanjaIdentification = s.HanjaIdentification
	cfg.GuessHanja = s.GuessHanja
	cfg.DoCategorization = s.DoCategorization
	cfg.DoTranslation = s.DoTranslation
	cfg.SimplifiedChineseConversion = s.SimplifiedChineseConversion

	sizes := []struct {
		label string
		text  string
		dst   *int
	}{
		{"chapters per request", s.ChaptersAnalyzed, &cfg.ChaptersAnalyzed},
		{"categorization batch size", s.CategorizationBatchSize, &cfg.CategorizationBatchSize},
		{"translation batch size", s.TranslationBatchSize, &cfg.TranslationBatchSize},
		{"hanja batch size", s.HanjaGuessingBatchSize, &cfg.HanjaGuessingBatchSize},
	}
	for _, size := range sizes {
		n, err := strconv.Atoi(strings.TrimSpace(size.text))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", size.label, size.text)
		}
		*size.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenreOptions lists the configured genres in a stable order
func GenreOptions(cfg *config.Config) []string {
	genres := make([]string, 0, len(cfg.GenreDescriptions))
	for name := range cfg.GenreDescriptions {
		genres = append(genres, name)
	}
	sort.Strings(genres)
	return genres
}

// ProviderOptions lists the selectable providers
func ProviderOptions() []string {
	return []string{config.ProviderGemini, config.ProviderOpenAI, config.ProviderOllama}
}

// CredentialStatus describes the credential the run would use
// The key itself is never shown.
func CredentialStatus(cfg *config.Config) string {
	if cfg.UsesLocalModel() {
		return fmt.Sprintf("Local model %s at %s, no API key needed", cfg.OllamaModel, cfg.OllamaHost)
	}

	key := cfg.ResolveAPIKey()
	switch {
	case key == "":
		return fmt.Sprintf("No API key configured for %s", cfg.Provider)
	case config.IsPlaceholderKey(key):
		return fmt.Sprintf("The API key for %s is a placeholder", cfg.Provider)
	default:
		return fmt.Sprintf("API key configured for %s", cfg.Provider)
	}
}
