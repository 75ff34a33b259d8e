package report

import (
	"io"

	"github.com/fatih/color"

	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/cliutil"
	"github.com/erraggy/oasguard/internal/severity"
	"github.com/erraggy/oasguard/validator"
)

const markerRule = "----------------"

// Text writes the log an operator reads: a start marker with the title,
// numbered diagnostics, the conclusion and acceptance lines, and an end marker.
type Text struct {
	w       io.Writer
	palette cliutil.Palette
	quiet   bool
}

// NewText creates a text reporter writing to w.
func NewText(w io.Writer, cfg reporterConfig) *Text {
	return &Text{w: w, palette: cliutil.NewPalette(cfg.color), quiet: cfg.quiet}
}

// Report implements Reporter.
func (t *Text) Report(r *validator.Report) {
	if t.quiet {
		return
	}
	name := markerName(r)
	cliutil.Colorf(t.w, t.palette.Marker, "%s Parsing Started %s %q %s\n", markerRule, name, displayTitle(r), markerRule)

	label := r.Family.Label()
	for i, d := range r.Diagnostics {
		cliutil.Colorf(t.w, t.severityColor(d.Severity), "%d. %s\n", i+1, gatewayLine(d, label))
		if len(d.Refs) > 0 {
			cliutil.Colorf(t.w, t.palette.Warning, "   %s:\n", diagnostic.RemoteRefsHeading)
			for _, ref := range d.Refs {
				cliutil.Colorf(t.w, t.palette.Warning, "     %s\n", ref)
			}
		}
	}

	if line := conclusion(r); line != "" {
		c := t.palette.Error
		if !r.Verdict.Failed() {
			c = t.palette.Info
		}
		if r.Verdict == validator.VerdictValid {
			c = t.palette.Success
		}
		cliutil.Colorf(t.w, c, "%s\n", line)
	}
	if by := r.AcceptedBy(); by != "" {
		cliutil.Colorf(t.w, t.palette.Success, "%s\n", by)
	}

	cliutil.Colorf(t.w, t.palette.Marker, "%s Parsing Complete %s %q %s\n\n", markerRule, name, displayTitle(r), markerRule)
}

// Finish implements Reporter.
func (t *Text) Finish(c batch.Counters) error {
	cliutil.Colorf(t.w, t.palette.Marker, "%s\n", c.Summary())
	return nil
}

func (t *Text) severityColor(s severity.Severity) *color.Color {
	switch s {
	case severity.SeverityError:
		return t.palette.Error
	case severity.SeverityWarning:
		return t.palette.Warning
	default:
		return t.palette.Info
	}
}

func markerName(r *validator.Report) string {
	if r.Family == document.FamilyOpenAPI3 {
		return "openApiName"
	}
	return "SwaggerName"
}

func displayTitle(r *validator.Report) string {
	if r.Title != "" {
		return r.Title
	}
	return r.Source
}

// gatewayLine drops the remote reference list from the message; the text
// reporter prints it as its own block.
func gatewayLine(d diagnostic.Diagnostic, label string) string {
	d.Message = d.Headline()
	return d.GatewayLine(label)
}

// conclusion returns the line that closes a document's log.
func conclusion(r *validator.Report) string {
	label := r.Family.Label()
	switch r.Verdict {
	case validator.VerdictValid:
		if r.Family == document.FamilyOpenAPI3 {
			return "Swagger file is valid OpenAPI 3 definition"
		}
		return "Swagger file is valid"
	case validator.VerdictValidWithWarnings:
		return label + " passed with errors, using may lead to functionality issues."
	case validator.VerdictMalformed:
		return "Malformed " + label + ", Please fix the listed issues before proceeding"
	case validator.VerdictInvalid:
		return "Invalid OAS definition provided."
	default:
		return ""
	}
}
