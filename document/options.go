package document

import (
	"github.com/erraggy/oasguard/oaserrors"
)

// Option is a function that configures classification.
type Option func(*classifyConfig) error

type classifyConfig struct {
	name     string
	location string
}

// WithName sets the display name of the document (a file path or "inline").
func WithName(name string) Option {
	return func(cfg *classifyConfig) error {
		cfg.name = name
		return nil
	}
}

// WithLocation sets the file path or URL that relative $ref values resolve against.
func WithLocation(location string) Option {
	return func(cfg *classifyConfig) error {
		if location == "" {
			return &oaserrors.ConfigError{Option: "location", Message: "cannot be empty"}
		}
		cfg.location = location
		return nil
	}
}
