// Package report renders validation reports for the CLI, either as the
// gateway-style text log or as a structured JSON/YAML document.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/validator"
)

// Reporter receives reports in source order and the counters at the end.
type Reporter interface {
	// Report renders or records one document report.
	Report(r *validator.Report)
	// Finish writes whatever follows the last report.
	Finish(c batch.Counters) error
}

// Option configures a Reporter.
type Option func(*reporterConfig)

type reporterConfig struct {
	color bool
	quiet bool
}

// WithColor enables colored text output.
func WithColor(enabled bool) Option {
	return func(cfg *reporterConfig) { cfg.color = enabled }
}

// WithQuiet limits text output to the summary line.
func WithQuiet(quiet bool) Option {
	return func(cfg *reporterConfig) { cfg.quiet = quiet }
}

// New returns the reporter for format ("text", "json" or "yaml").
func New(format string, w io.Writer, opts ...Option) (Reporter, error) {
	cfg := reporterConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch strings.ToLower(format) {
	case config.FormatText, "":
		return NewText(w, cfg), nil
	case config.FormatJSON, config.FormatYAML:
		return &Structured{w: w, format: strings.ToLower(format)}, nil
	default:
		return nil, fmt.Errorf("report: invalid format %q. Valid formats: %s, %s, %s",
			format, config.FormatText, config.FormatJSON, config.FormatYAML)
	}
}
