package validator

import (
	"context"
	"fmt"
	"sync"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/logging"
	"github.com/erraggy/oasguard/internal/severity"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/resolver"
	"github.com/erraggy/oasguard/walker"
)

// Validator runs the family validators at one level. It holds no per-document
// state and is safe for concurrent use when its resolver is.
type Validator struct {
	level    Level
	resolver resolver.Resolver
	logger   logging.Logger
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Validator{
		level:    cfg.level,
		resolver: cfg.resolver,
		logger:   cfg.logger,
	}, nil
}

// Level returns the validation level.
func (v *Validator) Level() Level {
	return v.level
}

// Resolver returns the resolver the validator drives.
func (v *Validator) Resolver() resolver.Resolver {
	return v.resolver
}

// ValidateSwagger2 validates doc as a Swagger 2.0 document.
func (v *Validator) ValidateSwagger2(ctx context.Context, doc *document.SpecDocument) (*Report, error) {
	return v.Validate(ctx, doc, document.FamilySwagger2)
}

// ValidateOpenAPI3 validates doc as an OpenAPI 3.x document.
func (v *Validator) ValidateOpenAPI3(ctx context.Context, doc *document.SpecDocument) (*Report, error) {
	return v.Validate(ctx, doc, document.FamilyOpenAPI3)
}

// Validate validates doc as a document of family.
//
// When the resolver reports the family's own discriminator as missing, the
// returned error is an *oaserrors.WrongFamilyError and the report holds the
// single diagnostic that signalled it.
func (v *Validator) Validate(ctx context.Context, doc *document.SpecDocument, family document.Family) (*Report, error) {
	var res resolver.Result
	switch family {
	case document.FamilySwagger2:
		res = v.resolver.ResolveSwagger2(ctx, doc)
	case document.FamilyOpenAPI3:
		res = v.resolver.ResolveOpenAPI3(ctx, doc)
	default:
		return nil, fmt.Errorf("validator: %w", oaserrors.ErrFamilyUnrecognized)
	}

	report := &Report{
		Source: doc.Name(),
		Family: family,
		Level:  v.level,
	}
	report.Title, _ = doc.Title()

	if d, ok := wrongFamily(res.Messages, family); ok {
		report.Verdict = VerdictInvalid
		report.Diagnostics = []diagnostic.Diagnostic{d}
		v.logger.Debug("wrong family", "source", report.Source, "family", family, "code", d.Code)
		return report, &oaserrors.WrongFamilyError{Attempted: family.String(), Message: d.Message}
	}

	report.Resolved = res.Document
	policy := v.level.Policy()

	if policy.EmitDiagnostics {
		report.Diagnostics = v.resolverDiagnostics(ctx, doc, family, res, policy)
	}

	var semantic []diagnostic.Diagnostic
	if policy.SemanticChecks && res.Document != nil {
		semantic = checkSemantics(doc, ShapeOf(res.Document))
		report.Diagnostics = append(report.Diagnostics, semantic...)
	}

	report.Verdict = verdict(res, semantic, policy)
	v.logger.Debug("document validated",
		"source", report.Source,
		"family", family,
		"level", int(v.level),
		"verdict", report.Verdict,
	)
	return report, nil
}

// resolverDiagnostics classifies the resolver messages under policy.
func (v *Validator) resolverDiagnostics(ctx context.Context, doc *document.SpecDocument, family document.Family, res resolver.Result, policy Policy) []diagnostic.Diagnostic {
	dctx := diagnostic.Context{
		Swagger2:   family == document.FamilySwagger2,
		RemoteRefs: sync.OnceValue(func() []string { return walker.RemoteRefs(doc.Root()) }),
	}
	if policy.ExplainMalformed {
		dctx.Lenient = sync.OnceValue(func() error {
			return v.resolver.ParseLenient(ctx, doc, family)
		})
	}

	diags := diagnostic.ClassifyAll(res.Messages, dctx)
	for i := range diags {
		diags[i] = diags[i].WithSeverity(policy.ResolverSeverity)
	}
	if res.Document == nil && len(res.Messages) == 0 {
		diags = append(diags, diagnostic.New(diagnostic.CodeUnrenderable, diagnostic.SourceParser,
			"unable to render the %s definition", family.Label()))
	}
	return diags
}

// wrongFamily finds the message saying that the family's own discriminator
// is missing.
func wrongFamily(msgs []string, family document.Family) (diagnostic.Diagnostic, bool) {
	want := diagnostic.CodeOpenAPIMissing
	if family == document.FamilySwagger2 {
		want = diagnostic.CodeSwaggerMissing
	}
	for _, msg := range msgs {
		if d := diagnostic.Classify(msg, diagnostic.Context{}); d.Code == want {
			return d.WithSeverity(severity.SeverityError), true
		}
	}
	return diagnostic.Diagnostic{}, false
}

func verdict(res resolver.Result, semantic []diagnostic.Diagnostic, policy Policy) Verdict {
	switch {
	case res.Document == nil:
		return VerdictMalformed
	case len(semantic) > 0:
		return VerdictMalformed
	case policy.EmitDiagnostics && len(res.Messages) > 0:
		return VerdictValidWithWarnings
	default:
		return VerdictValid
	}
}
