// Package main provides the advert_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/config"
	"github.com/jonathan/advert-generator/internal/logger"
)

// defaults apply after the config file and environment.
var defaults = config.Config{
	Format:    "docx",
	OutputDir: ".",
	LogLevel:  "info",
	LogFormat: "pretty",
	Addr:      ":8080",
}

// app holds the settings shared by every command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	cfg config.Config
}

// load resolves configuration in order: flags, config file, environment,
// defaults. It also initializes logging.
func (a *app) load() error {
	cfg := config.Config{}
	if a.configPath != "" {
		fileCfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *fileCfg
	}
	cfg.ApplyEnv()
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	cfg = cfg.MergeWithDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	a.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "advert_agent",
		Short: "House-style job advert generator",
		Long: "advert_agent rewrites job descriptions into job adverts in a company's house style " +
			"and exports them as Word or Markdown documents, one at a time, in batches, or over a REST API.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: json or pretty")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newGenerateCmd(a),
		newBatchCmd(a),
		newFormatCmd(a),
		newExtractCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
