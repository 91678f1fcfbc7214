// Package setup verifies that the environment can run a glossary build.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"codeberg.org/snonux/glossarymaker/internal/chapter"
	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/dictionary"
	"codeberg.org/snonux/glossarymaker/internal/hanja"
	"codeberg.org/snonux/glossarymaker/internal/llm"
	"codeberg.org/snonux/glossarymaker/internal/pipeline"
)

// SuccessMessage is printed when every check passes
const SuccessMessage = "Setup completed successfully!"

// ErrChecksFailed is returned when at least one check fails
var ErrChecksFailed = errors.New("setup checks failed")

// ModelLister reports the models of the local model server
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Options configures a setup run
type Options struct {
	// ConfigPath receives a sample config when it does not exist yet
	ConfigPath string
	// Out receives the report; defaults to stdout
	Out io.Writer
	// Models replaces the Ollama client in local mode
	Models ModelLister
}

// Check is a single verification step
type Check struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// Run performs every check and prints a report
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "=== glossarymaker setup ===")

	checks := Checks(cfg, opts)
	failed := 0
	for _, check := range checks {
		detail, err := check.Run(ctx)
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s: %v\n", check.Name, err)
			continue
		}
		if detail != "" {
			fmt.Fprintf(out, "✓ %s: %s\n", check.Name, detail)
		} else {
			fmt.Fprintf(out, "✓ %s\n", check.Name)
		}
	}

	if failed > 0 {
		fmt.Fprintf(out, "\n%d check(s) failed\n", failed)
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, failed, len(checks))
	}

	fmt.Fprintf(out, "\n%s\n", SuccessMessage)
	return nil
}

// Checks returns the checks for cfg in the order they run
func Checks(cfg *config.Config, opts Options) []Check {
	checks := []Check{
		{Name: "Config file", Run: func(ctx context.Context) (string, error) { return checkConfigFile(opts.ConfigPath) }},
		{Name: "Settings", Run: func(ctx context.Context) (string, error) { return "", cfg.Validate() }},
		{Name: "Chapter folder", Run: func(ctx context.Context) (string, error) { return checkRaws(cfg.RawsFolder) }},
		{Name: "Output location", Run: func(ctx context.Context) (string, error) { return checkWritable(cfg.OutputExcel) }},
	}

	if cfg.UsesLocalModel() {
		checks = append(checks,
			Check{Name: "Local model server", Run: func(ctx context.Context) (string, error) {
				models := opts.Models
				if models == nil {
					models = llm.NewOllama(cfg.OllamaHost, cfg.OllamaModel)
				}
				return checkLocalModel(ctx, models, cfg.OllamaHost, cfg.OllamaModel)
			}},
			Check{Name: "Dictionary cache", Run: func(ctx context.Context) (string, error) { return checkDictionary(cfg) }},
		)
	} else {
		checks = append(checks, Check{Name: "API credential", Run: func(ctx context.Context) (string, error) {
			if _, err := pipeline.CheckCredential(cfg); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s key configured", cfg.Provider), nil
		}})
	}

	if cfg.SimplifiedChineseConversion {
		checks = append(checks, Check{Name: "Simplified Chinese converter", Run: func(ctx context.Context) (string, error) {
			return "", hanja.Ready()
		}})
	}

	return checks
}

func checkConfigFile(path string) (string, error) {
	if path == "" {
		return "using defaults", nil
	}
	created, err := config.WriteSample(path)
	if err != nil {
		return "", err
	}
	if created {
		return "created sample at " + path, nil
	}
	return path, nil
}

func checkRaws(dir string) (string, error) {
	files, err := chapter.ListChapters(dir)
	if err != nil {
		return "", fmt.Errorf("%w (create it and add numbered chapter files like 1.txt)", err)
	}
	return fmt.Sprintf("%d chapter file(s) in %s", len(files), dir), nil
}

func checkWritable(output string) (string, error) {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".glossarymaker-*")
	if err != nil {
		return "", fmt.Errorf("cannot write to %s: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return dir, nil
}

func checkLocalModel(ctx context.Context, models ModelLister, host, model string) (string, error) {
	names, err := models.ListModels(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot reach %s: %w", host, err)
	}
	if slices.Contains(names, model) || slices.Contains(names, model+":latest") {
		return fmt.Sprintf("%s available at %s", model, host), nil
	}
	return fmt.Sprintf("%s reachable, %s will be pulled on first run", host, model), nil
}

func checkDictionary(cfg *config.Config) (string, error) {
	cache, err := dictionary.OpenCache(cfg.DictionaryCache)
	if err != nil {
		return "", err
	}
	defer cache.Close()

	n, err := cache.Len()
	if err != nil {
		return "", err
	}
	detail := fmt.Sprintf("%d cached word(s)", n)
	if key := cfg.ResolveDictAPIKey(); key == "" || strings.HasPrefix(key, "YOUR_") {
		detail += ", no dictionary key so lookups are skipped"
	}
	return detail, nil
}
