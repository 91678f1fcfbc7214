package cli

import (
	"strings"
	"testing"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"LogLevel", flags.LogLevel, "info"},
		{"EnvFile", flags.EnvFile, ".env"},
		{"CfgFile", flags.CfgFile, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestBoundFlags_UniqueNames(t *testing.T) {
	names := make(map[string]bool)
	keys := make(map[string]bool)

	for _, f := range boundFlags {
		if names[f.name] {
			t.Errorf("Duplicate flag name %s", f.name)
		}
		if keys[f.key] {
			t.Errorf("Duplicate config key %s", f.key)
		}
		names[f.name] = true
		keys[f.key] = true

		switch f.kind {
		case "string", "bool", "int":
		default:
			t.Errorf("Flag %s has unknown kind %q", f.name, f.kind)
		}
	}
}

func TestBoundFlags_ProviderUsageListsProviders(t *testing.T) {
	var usage string
	for _, f := range boundFlags {
		if f.name == "provider" {
			usage = f.usage
		}
	}
	if usage == "" {
		t.Fatal("Expected a provider flag")
	}

	for _, provider := range []string{config.ProviderGemini, config.ProviderOpenAI, config.ProviderOllama} {
		if !strings.Contains(usage, provider) {
			t.Errorf("Expected provider usage to mention %s, got %q", provider, usage)
		}
	}
}
