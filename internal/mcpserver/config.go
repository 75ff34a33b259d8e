package mcpserver

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/validator"
)

// envPrefix scopes the server settings under OASGUARD_MCP_*.
const envPrefix = "OASGUARD_MCP"

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Validate tool default level.
	Level int `envconfig:"LEVEL" default:"2"`

	// Report cache settings.
	CacheEnabled       bool          `envconfig:"CACHE_ENABLED" default:"true"`
	CacheMaxSize       int           `envconfig:"CACHE_MAX_SIZE" default:"10"`
	CacheFileTTL       time.Duration `envconfig:"CACHE_FILE_TTL" default:"15m"`
	CacheURLTTL        time.Duration `envconfig:"CACHE_URL_TTL" default:"5m"`
	CacheContentTTL    time.Duration `envconfig:"CACHE_CONTENT_TTL" default:"15m"`
	CacheSweepInterval time.Duration `envconfig:"CACHE_SWEEP_INTERVAL" default:"60s"`

	// Result list defaults.
	ResultLimit int `envconfig:"RESULT_LIMIT" default:"100"`
	MaxLimit    int `envconfig:"MAX_LIMIT" default:"1000"`

	// Input and network limits.
	MaxInlineSize   int64         `envconfig:"MAX_INLINE_SIZE" default:"10485760"`
	AllowPrivateIPs bool          `envconfig:"ALLOW_PRIVATE_IPS" default:"false"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// loadConfig reads configuration from OASGUARD_MCP_* environment variables.
func loadConfig() (serverConfig, error) {
	var c serverConfig
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return serverConfig{}, &oaserrors.ConfigError{Option: "mcp environment", Message: "cannot be processed", Cause: err}
	}
	return c, c.validate()
}

func (c serverConfig) validate() error {
	if !validator.Level(c.Level).Valid() {
		return &oaserrors.ConfigError{Option: envPrefix + "_LEVEL", Value: c.Level, Message: "must be 0, 1 or 2"}
	}
	positive := []struct {
		name string
		ok   bool
	}{
		{"CACHE_MAX_SIZE", c.CacheMaxSize > 0},
		{"RESULT_LIMIT", c.ResultLimit > 0},
		{"MAX_LIMIT", c.MaxLimit > 0},
		{"MAX_INLINE_SIZE", c.MaxInlineSize > 0},
		{"HTTP_TIMEOUT", c.HTTPTimeout > 0},
	}
	for _, p := range positive {
		if !p.ok {
			return &oaserrors.ConfigError{Option: envPrefix + "_" + p.name, Message: "must be positive"}
		}
	}
	return nil
}
