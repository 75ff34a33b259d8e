// Package config loads oasguard settings from the environment and an optional
// YAML file. Environment variables use the OASGUARD_ prefix and take
// precedence over the file.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/resolver"
	"github.com/erraggy/oasguard/validator"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "OASGUARD"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the merged configuration.
type Config struct {
	ConfigFile string `envconfig:"CONFIG_FILE" yaml:"-"`

	Level           int           `envconfig:"LEVEL" yaml:"level"`
	Format          string        `envconfig:"FORMAT" yaml:"format"`
	Jobs            int           `envconfig:"JOBS" yaml:"jobs"`
	Include         []string      `envconfig:"INCLUDE" yaml:"include"`
	NoColor         bool          `envconfig:"NO_COLOR" yaml:"noColor"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" yaml:"httpTimeout"`
	DocumentTimeout time.Duration `envconfig:"DOCUMENT_TIMEOUT" yaml:"documentTimeout"`

	LogLevel  string `envconfig:"LOG_LEVEL" yaml:"logLevel"`
	LogFormat string `envconfig:"LOG_FORMAT" yaml:"logFormat"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"otlpEndpoint"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" yaml:"otlpInsecure"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Level:       int(validator.DefaultLevel),
		Format:      FormatText,
		Jobs:        1,
		HTTPTimeout: resolver.DefaultHTTPTimeout,
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// OASGUARD_CONFIG_FILE (if any), then the environment.
func Load() (*Config, error) {
	cfg := Default()

	var initial struct {
		ConfigFile string `envconfig:"CONFIG_FILE"`
	}
	if err := envconfig.Process(EnvPrefix, &initial); err != nil {
		return nil, configError("environment", err)
	}
	if initial.ConfigFile != "" {
		if err := cfg.loadFile(initial.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, configError("environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &oaserrors.ConfigError{Option: "config file", Value: path, Message: "cannot be read", Cause: err}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &oaserrors.ConfigError{Option: "config file", Value: path, Message: "is not valid YAML", Cause: err}
	}
	c.ConfigFile = path
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !c.ValidationLevel().Valid() {
		return &oaserrors.ConfigError{Option: "level", Value: c.Level, Message: "must be 0, 1 or 2"}
	}
	switch strings.ToLower(c.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return &oaserrors.ConfigError{Option: "format", Value: c.Format, Message: "must be text, json or yaml"}
	}
	if c.Jobs < 1 {
		return &oaserrors.ConfigError{Option: "jobs", Value: c.Jobs, Message: "must be at least 1"}
	}
	if c.HTTPTimeout <= 0 {
		return &oaserrors.ConfigError{Option: "http timeout", Value: c.HTTPTimeout, Message: "must be positive"}
	}
	if c.DocumentTimeout < 0 {
		return &oaserrors.ConfigError{Option: "document timeout", Value: c.DocumentTimeout, Message: "cannot be negative"}
	}
	return nil
}

// ValidationLevel returns Level as a validator.Level.
func (c *Config) ValidationLevel() validator.Level {
	return validator.Level(c.Level)
}

func configError(source string, err error) error {
	var pe *envconfig.ParseError
	if errors.As(err, &pe) {
		return &oaserrors.ConfigError{Option: pe.KeyName, Value: pe.Value, Message: "is invalid", Cause: err}
	}
	return &oaserrors.ConfigError{Option: source, Message: "cannot be processed", Cause: err}
}
