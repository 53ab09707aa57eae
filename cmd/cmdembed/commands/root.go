// Package commands implements the cmdembed CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/localrivet/gomcp/logx"
	"github.com/spf13/cobra"

	"github.com/localrivet/cmdembed/internal/config"
	"github.com/localrivet/cmdembed/internal/logger"
)

var (
	configPath string
	verbose    bool

	// runLog carries run-level command messages. Set by loadConfig.
	runLog logx.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cmdembed",
	Short: "Build binary embedding assets for command lookup",
	Long: `cmdembed builds the two binary assets a command-lookup tool loads at
startup: a reduced store of pretrained word vectors, and a per-command
embedding table averaged from the words of each catalog entry.

Run "reduce" first to produce the vector store, then "embed" to
generate the table against a command catalog.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to the pipeline config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig loads the pipeline configuration, applies the logging
// settings to the default logger, and sets up the run-level logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithPath(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	appLogger := logger.New(logger.DefaultConfig())
	appLogger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.Format == "json" {
		appLogger.SetFormat(logger.JSON)
	}
	logger.SetDefaultLogger(appLogger)

	runLog = config.GetLoggerFromConfig(cfg)

	return cfg, nil
}

// newSlogLogger builds the slog logger handed to the pipeline facade.
func newSlogLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
