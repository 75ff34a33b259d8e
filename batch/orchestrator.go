package batch

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/internal/severity"
	"github.com/erraggy/oasguard/internal/telemetry"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/resolver"
	"github.com/erraggy/oasguard/validator"
)

// Orchestrator runs the per-document state machine. It keeps no state between
// documents and may be shared by concurrent callers.
type Orchestrator struct {
	validator *validator.Validator
	logger    logging.Logger
	timeout   time.Duration
	tracer    trace.Tracer
	documents metric.Int64Counter
}

// Option configures an Orchestrator.
type Option func(*orchestratorConfig) error

type orchestratorConfig struct {
	level    validator.Level
	resolver resolver.Resolver
	logger   logging.Logger
	timeout  time.Duration
}

// WithLevel sets the validation level.
// Default: validator.LevelFull
func WithLevel(level validator.Level) Option {
	return func(cfg *orchestratorConfig) error {
		if !level.Valid() {
			return &oaserrors.ConfigError{Option: "level", Value: int(level), Message: "must be 0, 1 or 2"}
		}
		cfg.level = level
		return nil
	}
}

// WithResolver sets the resolver handed to the validator.
func WithResolver(r resolver.Resolver) Option {
	return func(cfg *orchestratorConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "resolver", Message: "cannot be nil"}
		}
		cfg.resolver = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(cfg *orchestratorConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithDocumentTimeout bounds the processing of one document. Zero means no bound.
func WithDocumentTimeout(d time.Duration) Option {
	return func(cfg *orchestratorConfig) error {
		if d < 0 {
			return &oaserrors.ConfigError{Option: "document timeout", Value: d, Message: "cannot be negative"}
		}
		cfg.timeout = d
		return nil
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	cfg := &orchestratorConfig{
		level:  validator.DefaultLevel,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	vopts := []validator.Option{validator.WithLevel(cfg.level), validator.WithLogger(cfg.logger)}
	if cfg.resolver != nil {
		vopts = append(vopts, validator.WithResolver(cfg.resolver))
	}
	v, err := validator.New(vopts...)
	if err != nil {
		return nil, err
	}

	documents, err := telemetry.Meter().Int64Counter("oasguard.documents",
		metric.WithDescription("Documents processed, by verdict"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		validator: v,
		logger:    cfg.logger,
		timeout:   cfg.timeout,
		tracer:    telemetry.Tracer(),
		documents: documents,
	}, nil
}

// Level returns the validation level.
func (o *Orchestrator) Level() validator.Level {
	return o.validator.Level()
}

// Process reads src and runs it through the state machine. It always returns
// a report; read failures become an IO_FAILURE report.
func (o *Orchestrator) Process(ctx context.Context, src Source) *validator.Report {
	ctx, span := o.tracer.Start(ctx, "oasguard.document",
		trace.WithAttributes(attribute.String("oasguard.source", src.Name)))
	defer span.End()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	var report *validator.Report
	raw, err := src.Read()
	if err != nil {
		report = o.IOFailure(src, err)
	} else {
		report = o.ProcessText(ctx, src, raw)
	}

	span.SetAttributes(
		attribute.String("oasguard.family", report.Family.String()),
		attribute.String("oasguard.verdict", string(report.Verdict)),
	)
	if report.Blocking() {
		span.SetStatus(codes.Error, string(report.Verdict))
	}
	o.documents.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", string(report.Verdict))))
	return report
}

// IOFailure returns the report for a source that could not be read.
func (o *Orchestrator) IOFailure(src Source, err error) *validator.Report {
	o.logger.Error("error occurred while reading the document, it will not be validated",
		"source", src.Name, "error", err)
	d := diagnostic.New(diagnostic.CodeIOFailure, diagnostic.SourceParser, "%s", err.Error())
	d.Path = src.Path
	return validator.Invalid(src.Name, o.Level(), d)
}

// ProcessText classifies and validates document text.
func (o *Orchestrator) ProcessText(ctx context.Context, src Source, raw []byte) *validator.Report {
	level := o.Level()

	// CLASSIFY
	opts := []document.Option{document.WithName(src.Name)}
	if src.Path != "" {
		opts = append(opts, document.WithLocation(src.Path))
	}
	doc, err := document.Classify(raw, opts...)
	if err != nil {
		return o.classificationFailure(src, level, err)
	}

	// TITLE
	if err := document.CheckTitle(doc); err != nil {
		o.logger.Warn("document rejected", "source", src.Name, "code", diagnostic.CodeTitleMissing)
		report := validator.Invalid(src.Name, level,
			diagnostic.New(diagnostic.CodeTitleMissing, diagnostic.SourceParser, "%s", err.Error()))
		report.Family = doc.Family()
		return report
	}

	// VALIDATE_PRIMARY
	primary, err := o.validator.Validate(ctx, doc, doc.Family())
	if err == nil {
		return primary
	}
	if !errors.Is(err, oaserrors.ErrWrongFamily) {
		return validator.Invalid(src.Name, level,
			diagnostic.New(diagnostic.CodeFamilyUnrecognized, diagnostic.SourceParser, "%s", err.Error()))
	}

	// VALIDATE_FALLBACK
	fallbackFamily := doc.Family().Other()
	o.logger.Info("retrying with the other family", "source", src.Name, "family", fallbackFamily)
	fallback, ferr := o.validator.Validate(ctx, doc, fallbackFamily)
	if ferr == nil && fallback.Resolved != nil {
		fallback.FallbackFrom = doc.Family()
		notes := make([]diagnostic.Diagnostic, 0, len(primary.Diagnostics)+len(fallback.Diagnostics))
		for _, d := range primary.Diagnostics {
			notes = append(notes, d.WithSeverity(severity.SeverityInfo))
		}
		fallback.Diagnostics = append(notes, fallback.Diagnostics...)
		return fallback
	}

	report := primary
	if fallback != nil {
		report.Diagnostics = append(report.Diagnostics, fallback.Diagnostics...)
	}
	report.Verdict = validator.VerdictInvalid
	return report
}

func (o *Orchestrator) classificationFailure(src Source, level validator.Level, err error) *validator.Report {
	code := diagnostic.CodeFamilyUnrecognized
	if errors.Is(err, oaserrors.ErrUnparsable) {
		code = diagnostic.CodeDocumentUnparsable
	}
	o.logger.Warn("document not classified", "source", src.Name, "code", code, "error", err)
	return validator.Invalid(src.Name, level, diagnostic.New(code, diagnostic.SourceParser, "%s", err.Error()))
}
