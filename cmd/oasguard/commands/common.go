// Package commands provides CLI command handlers for oasguard.
package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/cliutil"
	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/internal/telemetry"
)

// ErrFailures is returned by HandleValidate when at least one document
// failed. The summary has already been printed; callers only set the exit
// status.
var ErrFailures = errors.New("one or more documents failed validation")

// Streams are the writers a command prints to.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams returns the process's standard output and error.
func StdStreams() Streams {
	return Streams{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// IsTarget reports whether arg reads as a validation target rather than a
// command name: a location: target, inline document text, or an existing path.
func IsTarget(arg string) bool {
	if strings.HasPrefix(arg, batch.LocationPrefix) {
		return true
	}
	if strings.ContainsAny(arg, "{:\n") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// normalizeTarget turns an existing file or directory path into a location:
// target. Anything else is passed through as inline document text.
func normalizeTarget(arg string) string {
	if strings.HasPrefix(arg, batch.LocationPrefix) || strings.ContainsAny(arg, "{\n") {
		return arg
	}
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	return batch.LocationPrefix + arg
}

// newLogger builds the stderr logger from the log settings of cfg.
func newLogger(cfg *config.Config, w io.Writer) logging.Logger {
	return logging.NewSlogAdapter(logging.New(w, cfg.LogFormat, cfg.LogLevel))
}

// initTelemetry installs the OTLP exporter configured in cfg. A failure is
// logged and telemetry stays disabled.
func initTelemetry(ctx context.Context, cfg *config.Config, logger logging.Logger) telemetry.ShutdownFunc {
	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceVersion: oasguard.Version(),
	}, logger)
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		return func(context.Context) error { return nil }
	}
	return shutdown
}

// stringList is a flag.Value collecting repeated or comma-separated values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*s = append(*s, p)
		}
	}
	return nil
}
