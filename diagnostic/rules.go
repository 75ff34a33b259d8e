package diagnostic

import (
	"slices"
	"strings"

	"github.com/erraggy/oasguard/internal/pathutil"
	"github.com/erraggy/oasguard/internal/severity"
)

// Markers the resolvers are known to emit.
const (
	MarkerIsMissing        = "is missing"
	MarkerMalformed        = "Malformed"
	MarkerRemoteReference  = "Unable to load remote reference"
	MarkerSchemaRefPath    = pathutil.RefPrefixSchemas
	MarkerSchemaUnexpected = "schema is unexpected"

	// RemoteRefsHeading introduces the remote references an operator must verify.
	RemoteRefsHeading = "Validate the following remote references and make sure that they are valid and accessible"

	schemaUnexpectedHint = ". Please verify whether the schema object is adhering to the OpenAPI Specification. " +
		"Make sure that the reference object is of format $ref: '#/components/schemas/{schemaName}'"
)

// Context carries what the rules need beyond the message text.
type Context struct {
	// Swagger2 is true when the message came from the Swagger 2.0 resolver.
	Swagger2 bool
	// Lenient runs the secondary lenient parse. A nil hook skips cause lookup.
	Lenient func() error
	// RemoteRefs returns the non-local $ref values of the raw document.
	RemoteRefs func() []string
}

func (c Context) remoteRefs() []string {
	if c.RemoteRefs == nil {
		return nil
	}
	return c.RemoteRefs()
}

// Rule maps messages containing a marker to a code, with an optional rewrite.
type Rule struct {
	Code    Code
	Match   func(msg string, ctx Context) bool
	Rewrite func(d *Diagnostic, ctx Context)
}

// Rules is the ordered classification table. The first matching rule wins
// and its rewrite is applied once.
var Rules = []Rule{
	{
		Code: CodeSwaggerMissing,
		Match: func(msg string, _ Context) bool {
			return strings.Contains(msg, "swagger") && strings.Contains(msg, MarkerIsMissing)
		},
	},
	{
		Code: CodeOpenAPIMissing,
		Match: func(msg string, _ Context) bool {
			return strings.Contains(msg, "openapi") && strings.Contains(msg, MarkerIsMissing)
		},
	},
	{
		Code:    CodeMalformed,
		Match:   contains(MarkerMalformed),
		Rewrite: rewriteMalformed,
	},
	{
		Code:    CodeRemoteRef,
		Match:   contains(MarkerRemoteReference),
		Rewrite: rewriteRemoteRef,
	},
	{
		Code:  CodeSchemaRef,
		Match: contains(MarkerSchemaRefPath),
		Rewrite: func(d *Diagnostic, ctx Context) {
			if ctx.Swagger2 {
				d.Message = pathutil.ToDefinitions(d.Message)
			}
		},
	},
	{
		Code:  CodeSchemaUnexpected,
		Match: contains(MarkerSchemaUnexpected),
		Rewrite: func(d *Diagnostic, _ Context) {
			d.Message += schemaUnexpectedHint
		},
	},
	{
		Code:  CodeGeneric,
		Match: func(string, Context) bool { return true },
	},
}

func contains(marker string) func(string, Context) bool {
	return func(msg string, _ Context) bool {
		return strings.Contains(msg, marker)
	}
}

// Classify maps one raw resolver message to a diagnostic. The result has
// error severity; the validation level may lower it.
func Classify(raw string, ctx Context) Diagnostic {
	for _, rule := range Rules {
		if !rule.Match(raw, ctx) {
			continue
		}
		d := Diagnostic{
			Code:     rule.Code,
			Severity: severity.SeverityError,
			Message:  raw,
			Source:   SourceParser,
		}
		if rule.Rewrite != nil {
			rule.Rewrite(&d, ctx)
		}
		return d
	}
	// unreachable: the GENERIC rule matches everything
	return Diagnostic{Code: CodeGeneric, Severity: severity.SeverityError, Message: raw, Source: SourceParser}
}

// ClassifyAll classifies messages in order. A REMOTE_REF diagnostic listing
// the same references as an earlier one is dropped.
func ClassifyAll(raw []string, ctx Context) []Diagnostic {
	out := make([]Diagnostic, 0, len(raw))
	for _, msg := range raw {
		d := Classify(msg, ctx)
		if d.Code == CodeRemoteRef && slices.ContainsFunc(out, func(prev Diagnostic) bool {
			return prev.Code == CodeRemoteRef && slices.Equal(prev.Refs, d.Refs)
		}) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// rewriteMalformed runs the lenient parse to find the underlying cause. A
// cause the message already carries is not repeated.
// A lenient parse that fails on a remote reference turns the diagnostic into
// a REMOTE_REF one.
func rewriteMalformed(d *Diagnostic, ctx Context) {
	if ctx.Lenient == nil {
		return
	}
	err := ctx.Lenient()
	if err == nil {
		return
	}
	cause := err.Error()
	if strings.Contains(cause, MarkerRemoteReference) {
		d.Code = CodeRemoteRef
		rewriteRemoteRef(d, ctx)
		return
	}
	if strings.Contains(d.Message, cause) {
		return
	}
	d.Message += ", Cause by: " + cause
}

func rewriteRemoteRef(d *Diagnostic, ctx Context) {
	d.Source = SourceReferenceScan
	refs := ctx.remoteRefs()
	if len(refs) == 0 {
		return
	}
	d.Refs = refs
	d.Message += ". " + RemoteRefsHeading + ": " + strings.Join(refs, ", ")
}
