package validator

import (
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/resolver"
)

// Option is a function that configures a Validator
type Option func(*validateConfig) error

// validateConfig holds configuration for a Validator
type validateConfig struct {
	level    Level
	resolver resolver.Resolver
	logger   logging.Logger
}

// applyOptions applies option functions over the defaults
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		level:  DefaultLevel,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.resolver == nil {
		r, err := resolver.New(resolver.WithLogger(cfg.logger))
		if err != nil {
			return nil, err
		}
		cfg.resolver = r
	}
	return cfg, nil
}

// WithLevel sets the validation level
// Default: LevelFull
func WithLevel(level Level) Option {
	return func(cfg *validateConfig) error {
		if !level.Valid() {
			return &oaserrors.ConfigError{Option: "level", Value: int(level), Message: "must be 0, 1 or 2"}
		}
		cfg.level = level
		return nil
	}
}

// WithResolver sets the resolver used for both families
// Default: resolver.New() with the validator's logger
func WithResolver(r resolver.Resolver) Option {
	return func(cfg *validateConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "resolver", Message: "cannot be nil"}
		}
		cfg.resolver = r
		return nil
	}
}

// WithLogger sets the logger for validation events
func WithLogger(l logging.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}
