package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// ctx is cancelled. Logs go to stderr; stdout carries the protocol.
func HandleMCP(ctx context.Context, args []string, streams Streams) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(streams.Stderr)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard mcp\n\n")
		Writef(fs.Output(), "Serve the validate, classify and scan_refs tools over the Model Context Protocol (stdio).\n\n")
		Writef(fs.Output(), "Server defaults come from OASGUARD_MCP_* environment variables; logging\n")
		Writef(fs.Output(), "and telemetry use OASGUARD_LOG_LEVEL, OASGUARD_LOG_FORMAT and OTEL_EXPORTER_OTLP_ENDPOINT.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, streams.Stderr)
	shutdown := initTelemetry(ctx, cfg, logger)
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	logger.Info("starting MCP server")
	return mcpserver.Run(ctx, logger)
}
