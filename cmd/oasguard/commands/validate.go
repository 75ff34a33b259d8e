package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/internal/fileutil"
	"github.com/erraggy/oasguard/internal/report"
	"github.com/erraggy/oasguard/resolver"
	"github.com/erraggy/oasguard/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Level   int
	Format  string
	Jobs    int
	Quiet   bool
	NoColor bool
	Include stringList
	Output  string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Flag defaults come from cfg, so flags override the environment and config file.
func SetupValidateFlags(cfg *config.Config) (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.IntVar(&flags.Level, "level", cfg.Level, "validation level: 0 parse-only, 1 compatibility, 2 full")
	fs.StringVar(&flags.Format, "format", cfg.Format, "output format: text, json, or yaml")
	fs.IntVar(&flags.Jobs, "jobs", cfg.Jobs, "number of documents validated concurrently")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only print the summary line")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only print the summary line")
	fs.BoolVar(&flags.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.Var(&flags.Include, "include", "file glob to validate in directories (repeatable or comma-separated; default all files)")
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard validate [flags] <target> [level]\n\n")
		Writef(fs.Output(), "Check Swagger 2.0 and OpenAPI 3.x documents against the API gateway import policy.\n\n")
		Writef(fs.Output(), "Target:\n")
		Writef(fs.Output(), "  location:<path>  a document file, or a directory walked recursively\n")
		Writef(fs.Output(), "  <text>           a JSON or YAML document passed inline\n")
		Writef(fs.Output(), "  <path>           an existing file or directory\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nLevels:\n")
		Writef(fs.Output(), "  0  parse-only: the document must resolve\n")
		Writef(fs.Output(), "  1  compatibility: resolver findings are warnings\n")
		Writef(fs.Output(), "  2  full (default): resolver findings are errors, path and operation checks run\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard validate location:./apis\n")
		Writef(fs.Output(), "  oasguard validate -level 1 location:petstore.yaml\n")
		Writef(fs.Output(), "  oasguard validate -format json -jobs 4 -include '*.yaml' ./apis | jq '.summary'\n")
		Writef(fs.Output(), "  oasguard location:./apis 1\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Every document passed\n")
		Writef(fs.Output(), "  1    At least one document failed, or the arguments are invalid\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(ctx context.Context, args []string, streams Streams) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs, flags := SetupValidateFlags(cfg)
	fs.SetOutput(streams.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("validate command requires a target and an optional level")
	}
	target := normalizeTarget(fs.Arg(0))
	if fs.NArg() == 2 {
		level, err := validator.ParseLevel(fs.Arg(1))
		if err != nil {
			return err
		}
		flags.Level = int(level)
	}

	cfg.Level = flags.Level
	cfg.Format = flags.Format
	cfg.Jobs = flags.Jobs
	cfg.NoColor = flags.NoColor
	if len(flags.Include) > 0 {
		cfg.Include = flags.Include
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := rejectSymlinkOutput(filepath.Clean(flags.Output)); err != nil {
			return err
		}
	}

	logger := newLogger(cfg, streams.Stderr)
	shutdown := initTelemetry(ctx, cfg, logger)
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	var (
		out io.Writer = streams.Stdout
		buf *bytes.Buffer
	)
	if flags.Output != "" {
		buf = &bytes.Buffer{}
		out = buf
	}
	rep, err := report.New(cfg.Format, out,
		report.WithColor(!cfg.NoColor && buf == nil && !color.NoColor),
		report.WithQuiet(flags.Quiet),
	)
	if err != nil {
		return err
	}

	res, err := resolver.New(
		resolver.WithHTTPTimeout(cfg.HTTPTimeout),
		resolver.WithLogger(logger),
		resolver.WithUserAgent(oasguard.UserAgent()),
	)
	if err != nil {
		return err
	}
	orch, err := batch.NewOrchestrator(
		batch.WithLevel(cfg.ValidationLevel()),
		batch.WithResolver(res),
		batch.WithLogger(logger),
		batch.WithDocumentTimeout(cfg.DocumentTimeout),
	)
	if err != nil {
		return err
	}
	runner := batch.NewRunner(orch,
		batch.WithJobs(cfg.Jobs),
		batch.WithIncludePatterns(cfg.Include...),
		batch.WithReportHandler(rep.Report),
	)

	counters, runErr := runner.Run(ctx, target)
	if err := rep.Finish(counters); err != nil {
		return err
	}
	if buf != nil {
		if err := fileutil.WriteReport(flags.Output, buf.Bytes()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		Writef(streams.Stderr, "Report written to %s\n", flags.Output)
	}
	if runErr != nil {
		return fmt.Errorf("validation interrupted: %w", runErr)
	}
	if counters.Failed > 0 {
		return ErrFailures
	}
	return nil
}

// rejectSymlinkOutput refuses to write the report through a symlink.
func rejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}
