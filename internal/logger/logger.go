// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Init replaces it.
var Logger = log.Logger

// Config controls log level and output format.
type Config struct {
	Level        string `json:"level" yaml:"level"`   // trace, debug, info, warn, error
	Format       string `json:"format" yaml:"format"` // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
	// Output defaults to stderr so command output on stdout stays clean.
	Output io.Writer `json:"-" yaml:"-"`
}

// Init builds the logger from config and installs it as the zerolog global
// and as the default for log.Ctx on contexts that carry no logger.
func Init(config Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	var output io.Writer = os.Stderr
	if config.Output != nil {
		output = config.Output
	}
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    config.Output != nil,
		}
	}

	builder := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		builder = builder.Caller()
	}

	Logger = builder.Logger()
	log.Logger = Logger
	zerolog.DefaultContextLogger = &Logger
	return Logger
}

// WithContext attaches the process-wide logger to ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
