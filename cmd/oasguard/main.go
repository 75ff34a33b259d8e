package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/cmd/oasguard/commands"
)

// commandNames lists the commands offered as typo suggestions.
var commandNames = []string{"validate", "mcp", "version", "help"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], commands.StdStreams())
	stop()
	os.Exit(code)
}

// run dispatches args and returns the process exit status.
func run(ctx context.Context, args []string, streams commands.Streams) int {
	if len(args) < 1 {
		printUsage(streams)
		return 1
	}

	command := args[0]
	var err error
	switch command {
	case "version", "-v", "--version":
		commands.Writef(streams.Stdout, "oasguard %s\n", oasguard.Version())
		commands.Writef(streams.Stdout, "%s\n", oasguard.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage(streams)
		return 0
	case "validate":
		err = commands.HandleValidate(ctx, args[1:], streams)
	case "mcp":
		err = commands.HandleMCP(ctx, args[1:], streams)
	default:
		if !commands.IsTarget(command) {
			commands.Writef(streams.Stderr, "Unknown command: %s\n", command)
			if s := suggestCommand(command); s != "" {
				commands.Writef(streams.Stderr, "Did you mean: %s?\n", s)
			}
			commands.Writef(streams.Stderr, "\n")
			printUsage(streams)
			return 1
		}
		err = commands.HandleValidate(ctx, args, streams)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrFailures):
		return 1
	default:
		commands.Writef(streams.Stderr, "Error: %v\n", err)
		return 1
	}
}

// suggestCommand returns the closest command within edit distance 2 of
// input, or "" when none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage(streams commands.Streams) {
	commands.Writef(streams.Stdout, `oasguard - API gateway import checks for Swagger 2.0 and OpenAPI 3.x

Usage:
  oasguard <command> [options]
  oasguard <target> [level]

Commands:
  validate    Validate documents the way the API gateway does before import
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasguard validate location:./apis
  oasguard validate -format json location:petstore.yaml
  oasguard location:./apis 1
  oasguard mcp

Run 'oasguard <command> --help' for more information on a command.
`)
}
