// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Config represents the configuration that can be loaded from a JSON or YAML
// file. All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Generation
	APIKey          string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`                                      // Gemini API key
	Model           string  `json:"model,omitempty" yaml:"model,omitempty"`                                          // Overrides the standard tier model
	Temperature     float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`       // Sampling temperature
	MaxOutputTokens int32   `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty" validate:"gte=0"` // Response token cap
	StyleFile       string  `json:"style_file,omitempty" yaml:"style_file,omitempty"`                                // House style JSON/YAML

	// Output
	Format      string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=docx md markdown"`
	NoListStyle bool   `json:"no_list_style,omitempty" yaml:"no_list_style,omitempty"` // Use bullet glyphs instead of the list style
	OutputDir   string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Behavior
	Workers     int    `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0,lte=64"` // Batch concurrency, 0 = auto
	UseBrowser  bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`                // Render thin pages in headless Chrome
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" validate:"omitempty,url"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`

	// Server
	Addr        string   `json:"addr,omitempty" yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

var (
	validate     = validator.New()
	typeOfConfig = reflect.TypeOf(Config{})
)

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", fieldName(fe.StructField()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.StyleFile != "" {
		if _, err := os.Stat(c.StyleFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: style file not found: %s", c.StyleFile)
		}
	}

	return nil
}

// fieldName maps a struct field to its config file key.
func fieldName(structField string) string {
	field, ok := typeOfConfig.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.StyleFile == "" {
		result.StyleFile = defaults.StyleFile
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	// Numeric fields: use default if zero
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills empty fields from environment variables: GEMINI_API_KEY,
// ADVERT_MODEL, DATABASE_URL, LOG_LEVEL and ADVERT_ADDR.
func (c *Config) ApplyEnv() {
	setIfEmpty(&c.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&c.Model, "ADVERT_MODEL")
	setIfEmpty(&c.DatabaseURL, "DATABASE_URL")
	setIfEmpty(&c.LogLevel, "LOG_LEVEL")
	setIfEmpty(&c.Addr, "ADVERT_ADDR")
}

func setIfEmpty(field *string, env string) {
	if *field == "" {
		*field = os.Getenv(env)
	}
}
