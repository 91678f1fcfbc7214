package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/glossarymaker/internal/archive"
	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/llm"
	"codeberg.org/snonux/glossarymaker/internal/pipeline"
	"codeberg.org/snonux/glossarymaker/internal/setup"
)

func runGlossary(cmd *cobra.Command, args []string) error {
	cfg := LoadConfig()

	summary, err := pipeline.New(cfg, pipeline.Options{Out: cmd.OutOrStdout()}).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrMissingCredential) {
			printErr("Error: no API key for %s. Set %s, add it to %s or run 'glossarymaker setup'.\n",
				cfg.Provider, keyEnvVar(cfg.Provider), config.SampleFileName)
		}
		return err
	}

	if summary.Workbooks != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nDone! Glossary saved to: %s\n", summary.Workbooks.CategorizedPath)
	}
	return nil
}

func keyEnvVar(provider string) string {
	if provider == config.ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

func newSetupCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Verify the environment and write a sample config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setup.Run(cmd.Context(), LoadConfig(), setup.Options{
				ConfigPath: ConfigPath(flags),
				Out:        cmd.OutOrStdout(),
			})
		},
	}
}

func newArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move previous outputs into archive/glossary-<timestamp>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			base := filepath.Dir(cfg.NounsJSONFile)

			if _, err := archive.ArchiveOutputs(base, archive.OutputFiles(cfg)); err != nil {
				if errors.Is(err, archive.ErrNothingToArchive) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to archive")
					return nil
				}
				return fmt.Errorf("failed to archive outputs: %w", err)
			}
			return nil
		},
	}
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available for the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			return llm.NewLister(cfg, cfg.ResolveAPIKey()).ListAvailableModels(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newSampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config [path]",
		Short: "Write a commented sample config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.SampleFileName
			if len(args) > 0 {
				path = args[0]
			}

			created, err := config.WriteSample(path)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, not overwriting\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample config written to %s\n", path)
			return nil
		},
	}
}

// Exit prints err and exits with a non-zero status
func Exit(err error) {
	printErr("Error: %v\n", err)
	os.Exit(1)
}
