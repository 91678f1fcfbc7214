package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

// resetViper restores the global viper after a test
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "glossarymaker" {
		t.Errorf("Expected Use to be 'glossarymaker', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "glossary") {
		t.Errorf("Expected Short description to mention the glossary")
	}

	flagTests := []string{
		"config", "log-level", "env-file", "raws", "output", "nouns", "reference",
		"error-log", "provider", "model", "genre", "local", "chapters", "max-retries",
	}
	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}

	subcommands := map[string]bool{}
	for _, c := range cmd.Commands() {
		subcommands[c.Name()] = true
	}
	for _, name := range []string{"setup", "archive", "models", "sample-config"} {
		if !subcommands[name] {
			t.Errorf("Expected subcommand %s", name)
		}
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		expected  string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := "raws_folder: novel\ngenre: rofan\nollama:\n  host: http://gpu:11434\n"
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			expected: "novel",
		},
		{
			name:      "without config file",
			setupFunc: func(t *testing.T) string { return "" },
			expected:  "raws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())

			InitConfig(tt.setupFunc(t))

			cfg := LoadConfig()
			if cfg.RawsFolder != tt.expected {
				t.Errorf("Expected raws folder %q, got %q", tt.expected, cfg.RawsFolder)
			}
		})
	}
}

func TestInitConfig_Env(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLOSSARYMAKER_OUTPUT_EXCEL", "env.xlsx")
	t.Setenv("GLOSSARYMAKER_OLLAMA_HOST", "http://env:11434")

	InitConfig("")

	cfg := LoadConfig()
	if cfg.OutputExcel != "env.xlsx" {
		t.Errorf("Expected env.xlsx, got %q", cfg.OutputExcel)
	}
	if cfg.OllamaHost != "http://env:11434" {
		t.Errorf("Expected env ollama host, got %q", cfg.OllamaHost)
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)
	config.SetDefaults(viper.GetViper())

	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())

	cfg := LoadConfig()
	if cfg.RawsFolder != "raws" || cfg.ChaptersAnalyzed != 5 {
		t.Errorf("Expected unset flags to keep defaults, got %q and %d", cfg.RawsFolder, cfg.ChaptersAnalyzed)
	}

	_ = cmd.PersistentFlags().Set("raws", "/test/raws")
	_ = cmd.PersistentFlags().Set("chapters", "3")
	_ = cmd.PersistentFlags().Set("local", "true")

	cfg = LoadConfig()
	if cfg.RawsFolder != "/test/raws" {
		t.Errorf("Expected raws_folder to be /test/raws, got %s", cfg.RawsFolder)
	}
	if cfg.ChaptersAnalyzed != 3 {
		t.Errorf("Expected chapters_analyzed to be 3, got %d", cfg.ChaptersAnalyzed)
	}
	if !cfg.LocalModel {
		t.Error("Expected local_model to be true")
	}
}

func TestConfigPath(t *testing.T) {
	resetViper(t)

	if got := ConfigPath(&Flags{CfgFile: "custom.yaml"}); got != "custom.yaml" {
		t.Errorf("Expected custom.yaml, got %s", got)
	}
	if got := ConfigPath(&Flags{}); got != config.SampleFileName {
		t.Errorf("Expected %s, got %s", config.SampleFileName, got)
	}
}

func TestSampleConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	cmd := newSampleConfigCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "Sample config written") {
		t.Errorf("Unexpected output %q", out.String())
	}

	out.Reset()
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Second execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("Expected existing file to be kept, got %q", out.String())
	}
}

func TestArchiveCommand_NothingToArchive(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	config.SetDefaults(viper.GetViper())
	viper.Set("nouns_json_file", filepath.Join(dir, "nouns.json"))
	viper.Set("output_excel", filepath.Join(dir, "glossary.xlsx"))
	viper.Set("error_log", filepath.Join(dir, "error.txt"))

	cmd := newArchiveCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to archive") {
		t.Errorf("Unexpected output %q", out.String())
	}
}
