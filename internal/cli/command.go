package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/glossarymaker/internal"
	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// CreateRootCommand creates and configures the root cobra command
// Running it without a subcommand builds the glossary.
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glossarymaker",
		Short: "Korean novel glossary builder",
		Long: `glossarymaker builds a Korean to English glossary workbook from
numbered chapter files of a novel.

Proper nouns are extracted, categorised, translated and given hanja by
Gemini, OpenAI or a local Ollama model.

Examples:
  glossarymaker setup                 # Check the environment, write a sample config
  glossarymaker --raws chapters       # Build glossary.xlsx from chapters/*.txt
  glossarymaker --local --genre rofan # Use the local model for a romance fantasy
  glossarymaker archive               # Move previous outputs into archive/
  glossarymaker gui                   # Launch the desktop app`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGlossary,
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newSetupCommand(flags),
		newArchiveCommand(),
		newModelsCommand(),
		newSampleConfigCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/"+config.SampleFileName+" or ./"+config.SampleFileName+")")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.EnvFile, "env-file", flags.EnvFile, "Dotenv file with API keys")

	for _, f := range boundFlags {
		switch f.kind {
		case "bool":
			pf.BoolP(f.name, f.short, false, f.usage)
		case "int":
			pf.IntP(f.name, f.short, 0, f.usage)
		default:
			pf.StringP(f.name, f.short, "", f.usage)
		}
	}

	bindFlagsToViper(pf)
}

// bindFlagsToViper makes changed flags override config keys
func bindFlagsToViper(fs *pflag.FlagSet) {
	for _, f := range boundFlags {
		if flag := fs.Lookup(f.name); flag != nil {
			_ = viper.BindPFlag(f.key, flag)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.SampleFileName, ".yaml"))
	}

	// Environment variables, ollama.host becomes GLOSSARYMAKER_OLLAMA_HOST
	viper.SetEnvPrefix("GLOSSARYMAKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Default().Info("Using config file", "path", viper.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
		logging.Default().Warn("Could not read config file", "err", err)
	}
}

// Initialize loads the dotenv file, sets up logging and reads the config
func Initialize(flags *Flags) {
	logging.Init(os.Stderr, flags.LogLevel)
	if err := config.LoadDotEnv(flags.EnvFile); err != nil {
		logging.Default().Warn("Ignoring env file", "err", err)
	}
	InitConfig(flags.CfgFile)
}

// LoadConfig returns the effective configuration
func LoadConfig() *config.Config {
	return config.Load(viper.GetViper())
}

// ConfigPath returns the config file in use, or where a new one goes
func ConfigPath(flags *Flags) string {
	if flags.CfgFile != "" {
		return flags.CfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.SampleFileName
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
