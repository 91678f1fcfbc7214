package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Providers understood by the llm package
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// DefaultGenre is used when the configured genre is unknown
const DefaultGenre = "murim"

// DefaultGenreDescriptions maps a genre key to the phrase used in prompts
var DefaultGenreDescriptions = map[string]string{
	"murim":   "Korean martial arts novels",
	"rofan":   "Korean romance fantasy novels",
	"modern":  "Korean modern day novels",
	"game":    "Korean novels about video games",
	"westfan": "Korean western fantasy novels",
	"dungeon": "Korean modern day fantasy novels",
}

// Category names, in sheet order
const (
	CategoryNames         = "character names"
	CategorySkills        = "skills and techniques"
	CategoryTitles        = "character titles"
	CategoryOrganizations = "locations and organizations"
	CategoryItems         = "item names"
	CategoryMisc          = "misc"
)

// DefaultCategories is the ordered category list
var DefaultCategories = []string{
	CategoryNames,
	CategorySkills,
	CategoryTitles,
	CategoryOrganizations,
	CategoryItems,
	CategoryMisc,
}

// placeholderKeys are sample values that count as "no key configured"
var placeholderKeys = []string{
	"YOUR_API_KEY_HERE",
	"YOUR_API_KEY",
	"your-api-key",
	"changeme",
}

// Config holds all settings of a glossary run
type Config struct {
	APIKey        string
	ModelName     string
	Provider      string
	RawsFolder    string
	NounsJSONFile string
	ReferenceFile string
	OutputExcel   string
	ErrorLog      string

	ChaptersAnalyzed        int
	CategorizationBatchSize int
	TranslationBatchSize    int
	HanjaGuessingBatchSize  int
	MaxRetries              int
	RetryDelay              time.Duration
	BatchPause              time.Duration

	HanjaIdentification         bool
	LocalModel                  bool
	GuessHanja                  bool
	DoCategorization            bool
	DoTranslation               bool
	SimplifiedChineseConversion bool

	DictAPIKey      string
	DictionaryCache string

	Genre             string
	GenreDescriptions map[string]string
	Categories        []string

	OllamaHost  string
	OllamaModel string

	// OpenAIBaseURL points the openai provider at a compatible server
	OpenAIBaseURL string
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("raws_folder", "raws")
	v.SetDefault("nouns_json_file", "nouns.json")
	v.SetDefault("reference_file", "")
	v.SetDefault("output_excel", "glossary.xlsx")
	v.SetDefault("error_log", "error.txt")
	v.SetDefault("chapters_analyzed", 5)
	v.SetDefault("categorization_batch_size", 20)
	v.SetDefault("translation_batch_size", 15)
	v.SetDefault("hanja_guessing_batch_size", 15)
	v.SetDefault("max_retries", 10)
	v.SetDefault("retry_delay", 30*time.Second)
	v.SetDefault("batch_pause", time.Second)
	v.SetDefault("hanja_identification", true)
	v.SetDefault("local_model", false)
	v.SetDefault("dict_api_key", "")
	v.SetDefault("guess_hanja", true)
	v.SetDefault("do_categorization", true)
	v.SetDefault("do_translation", true)
	v.SetDefault("simplified_chinese_conversion", true)
	v.SetDefault("genre", DefaultGenre)
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "qwen2.5:7b")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("dictionary.cache", "dictionary_cache.db")
}

// Default returns a Config filled with the default values
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	return Load(v)
}

// Load builds a Config from a viper instance
// Defaults must have been registered with SetDefaults.
func Load(v *viper.Viper) *Config {
	cfg := &Config{
		APIKey:        v.GetString("api_key"),
		ModelName:     v.GetString("model_name"),
		Provider:      strings.ToLower(v.GetString("provider")),
		RawsFolder:    v.GetString("raws_folder"),
		NounsJSONFile: v.GetString("nouns_json_file"),
		ReferenceFile: v.GetString("reference_file"),
		OutputExcel:   v.GetString("output_excel"),
		ErrorLog:      v.GetString("error_log"),

		ChaptersAnalyzed:        v.GetInt("chapters_analyzed"),
		CategorizationBatchSize: v.GetInt("categorization_batch_size"),
		TranslationBatchSize:    v.GetInt("translation_batch_size"),
		HanjaGuessingBatchSize:  v.GetInt("hanja_guessing_batch_size"),
		MaxRetries:              v.GetInt("max_retries"),
		RetryDelay:              seconds(v, "retry_delay"),
		BatchPause:              seconds(v, "batch_pause"),

		HanjaIdentification:         v.GetBool("hanja_identification"),
		LocalModel:                  v.GetBool("local_model"),
		GuessHanja:                  v.GetBool("guess_hanja"),
		DoCategorization:            v.GetBool("do_categorization"),
		DoTranslation:               v.GetBool("do_translation"),
		SimplifiedChineseConversion: v.GetBool("simplified_chinese_conversion"),

		DictAPIKey:      v.GetString("dict_api_key"),
		DictionaryCache: v.GetString("dictionary.cache"),

		Genre:             strings.ToLower(v.GetString("genre")),
		GenreDescriptions: v.GetStringMapString("genres"),
		Categories:        v.GetStringSlice("categories"),

		OllamaHost:  strings.TrimRight(v.GetString("ollama.host"), "/"),
		OllamaModel: v.GetString("ollama.model"),

		OpenAIBaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("openai.base_url")), "/"),
	}

	if len(cfg.GenreDescriptions) == 0 {
		cfg.GenreDescriptions = copyMap(DefaultGenreDescriptions)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]string(nil), DefaultCategories...)
	}

	return cfg
}

// seconds reads a duration key, treating bare numbers as seconds
func seconds(v *viper.Viper, key string) time.Duration {
	switch raw := v.Get(key).(type) {
	case int:
		return time.Duration(raw) * time.Second
	case int64:
		return time.Duration(raw) * time.Second
	case float64:
		return time.Duration(raw * float64(time.Second))
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return time.Duration(n * float64(time.Second))
		}
	}
	return v.GetDuration(key)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate checks the numeric settings and the provider name
func (c *Config) Validate() error {
	sizes := []struct {
		name  string
		value int
	}{
		{"chapters_analyzed", c.ChaptersAnalyzed},
		{"categorization_batch_size", c.CategorizationBatchSize},
		{"translation_batch_size", c.TranslationBatchSize},
		{"hanja_guessing_batch_size", c.HanjaGuessingBatchSize},
		{"max_retries", c.MaxRetries},
	}
	for _, s := range sizes {
		if s.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", s.name, s.value)
		}
	}

	if c.RetryDelay < 0 || c.BatchPause < 0 {
		return fmt.Errorf("retry_delay and batch_pause must not be negative")
	}

	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unknown provider '%s' (use gemini, openai or ollama)", c.Provider)
	}

	if c.RawsFolder == "" {
		return fmt.Errorf("raws_folder must not be empty")
	}
	if !strings.HasSuffix(strings.ToLower(c.OutputExcel), ".xlsx") {
		return fmt.Errorf("output_excel must end in .xlsx, got '%s'", c.OutputExcel)
	}

	return nil
}

// ResolveGenre returns the genre key and its description
// An unknown genre falls back to murim; the bool reports the fallback.
func (c *Config) ResolveGenre() (string, string, bool) {
	if desc, ok := c.GenreDescriptions[c.Genre]; ok {
		return c.Genre, desc, false
	}
	desc, ok := c.GenreDescriptions[DefaultGenre]
	if !ok {
		desc = DefaultGenreDescriptions[DefaultGenre]
	}
	return DefaultGenre, desc, true
}

// UsesLocalModel reports whether extraction runs on the local model server
func (c *Config) UsesLocalModel() bool {
	return c.LocalModel || c.Provider == ProviderOllama
}

// ResolveAPIKey returns the cloud credential for the configured provider
// Provider specific environment variables win over the config file.
func (c *Config) ResolveAPIKey() string {
	var envVars []string
	switch c.Provider {
	case ProviderOpenAI:
		envVars = []string{"OPENAI_API_KEY"}
	case ProviderGemini:
		envVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}

	for _, name := range envVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(c.APIKey)
}

// ResolveDictAPIKey returns the krdict key from the environment or config
func (c *Config) ResolveDictAPIKey() string {
	if key := strings.TrimSpace(os.Getenv("KRDICT_API_KEY")); key != "" {
		return key
	}
	return strings.TrimSpace(c.DictAPIKey)
}

// IsPlaceholderKey reports whether key is empty or a sample value
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	for _, p := range placeholderKeys {
		if strings.EqualFold(key, p) {
			return true
		}
	}
	return false
}

// LoadDotEnv loads .env files into the process environment
// Variables that are already set are not overridden; missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
