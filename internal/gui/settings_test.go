package gui

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

func TestSettings_RoundTrip(t *testing.T) {
	base := config.Default()

	cfg, err := SettingsFrom(base).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg == base {
		t.Error("Expected Apply to return a copy")
	}
	if cfg.ChaptersAnalyzed != base.ChaptersAnalyzed || cfg.RawsFolder != base.RawsFolder {
		t.Errorf("Expected unchanged values, got %d and %q", cfg.ChaptersAnalyzed, cfg.RawsFolder)
	}
}

func TestSettings_Apply(t *testing.T) {
	base := config.Default()

	s := SettingsFrom(base)
	s.RawsFolder = " novel "
	s.Genre = "RoFan"
	s.Provider = "OpenAI"
	s.LocalModel = true
	s.DoTranslation = false
	s.TranslationBatchSize = "7"

	cfg, err := s.Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if cfg.RawsFolder != "novel" {
		t.Errorf("Expected trimmed raws folder, got %q", cfg.RawsFolder)
	}
	if cfg.Genre != "rofan" || cfg.Provider != config.ProviderOpenAI {
		t.Errorf("Expected lower-cased genre and provider, got %q and %q", cfg.Genre, cfg.Provider)
	}
	if !cfg.LocalModel || cfg.DoTranslation {
		t.Error("Expected toggles to be applied")
	}
	if cfg.TranslationBatchSize != 7 {
		t.Errorf("Expected translation batch size 7, got %d", cfg.TranslationBatchSize)
	}
	if base.TranslationBatchSize == 7 || base.RawsFolder == "novel" {
		t.Error("Expected base config to stay untouched")
	}
}

func TestSettings_ApplyErrors(t *testing.T) {
	base := config.Default()

	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr string
	}{
		{"non numeric size", func(s *Settings) { s.ChaptersAnalyzed = "many" }, "chapters per request"},
		{"empty size", func(s *Settings) { s.HanjaGuessingBatchSize = "" }, "hanja batch size"},
		{"zero size", func(s *Settings) { s.CategorizationBatchSize = "0" }, "categorization_batch_size"},
		{"bad output", func(s *Settings) { s.OutputExcel = "glossary.csv" }, "output_excel"},
		{"empty raws", func(s *Settings) { s.RawsFolder = "  " }, "raws_folder"},
		{"unknown provider", func(s *Settings) { s.Provider = "claude" }, "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SettingsFrom(base)
			tt.modify(&s)

			_, err := s.Apply(base)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenreOptions(t *testing.T) {
	genres := GenreOptions(config.Default())

	if len(genres) != len(config.DefaultGenreDescriptions) {
		t.Fatalf("Expected %d genres, got %d", len(config.DefaultGenreDescriptions), len(genres))
	}
	for i := 1; i < len(genres); i++ {
		if genres[i-1] > genres[i] {
			t.Errorf("Expected sorted genres, got %v", genres)
		}
	}
}

func TestCredentialStatus(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name     string
		modify   func(c *config.Config)
		expected string
	}{
		{"local model", func(c *config.Config) { c.LocalModel = true }, "no API key needed"},
		{"missing key", func(c *config.Config) {}, "No API key configured for gemini"},
		{"placeholder", func(c *config.Config) { c.APIKey = "YOUR_API_KEY_HERE" }, "placeholder"},
		{"configured", func(c *config.Config) { c.Provider = config.ProviderOpenAI; c.APIKey = "sk-real" }, "API key configured for openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)

			status := CredentialStatus(cfg)
			if !strings.Contains(status, tt.expected) {
				t.Errorf("Expected status containing %q, got %q", tt.expected, status)
			}
			if cfg.APIKey != "" && strings.Contains(status, cfg.APIKey) {
				t.Errorf("Status must not reveal the key, got %q", status)
			}
		})
	}
}

func TestLogWriter(t *testing.T) {
	var original bytes.Buffer
	var lines []string

	w := &LogWriter{sink: func(line string) { lines = append(lines, line) }, original: &original}

	input := "first line\nsecond line\r\n\n"
	n, err := w.Write([]byte(input))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(input) {
		t.Errorf("Expected %d bytes written, got %d", len(input), n)
	}

	if original.String() != input {
		t.Errorf("Expected original writer to receive %q, got %q", input, original.String())
	}
	if len(lines) != 2 || lines[0] != "first line" || lines[1] != "second line" {
		t.Errorf("Expected two trimmed lines, got %q", lines)
	}
}
