package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/surveystat/internal/config"
)

var (
	dbPath   string
	cfgFile  string
	logLevel string
	quiet    bool

	// RootCmd is the root command for surveystat
	RootCmd = &cobra.Command{
		Use:   "surveystat",
		Short: "Passion vs. performance analysis for student surveys",
		Long: `surveystat loads a student survey export, derives a Passion Score for every
respondent and reports how it relates to CGPA.

The Passion Score adds up four answers, from -1 to 8:
  • wanted the major (Yes 2, No 0)
  • considering a master's degree (Yes 2, No 0)
  • major aligns with interests and goals (Yes 2, No 0)
  • engagement outside coursework (Frequently 2, Occasionally 1, Rarely 0, Never -1)

Examples:
  # Print summary statistics and the CGPA / Passion Score correlation
  surveystat analyze survey.csv

  # Also write the figures
  surveystat analyze survey.csv --plots ./plots

  # Keep a record of the run, then list past runs
  surveystat analyze survey.csv --save
  surveystat history

  # Re-run whenever the export changes
  surveystat watch survey.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			initLogging()
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "run history database path (default: ~/.surveystat/surveystat.db)")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/surveystat/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and status messages")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// initConfig reads the config file, .env and SURVEYSTAT_* environment
// variables. Flags set on the command line take precedence.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if dir, err := config.Dir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SURVEYSTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file: %v\n", err)
		}
		return
	}
	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch viper.GetString("log-level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if p := viper.GetString("db"); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".surveystat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create surveystat directory: %w", err)
	}

	return filepath.Join(dir, "surveystat.db"), nil
}
