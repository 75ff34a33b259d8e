package diagnostic

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasguard/internal/severity"
)

// Diagnostic is one finding about a document. It is immutable once added to a report.
type Diagnostic struct {
	// Code is the stable identifier from the closed taxonomy
	Code Code `json:"code" yaml:"code"`
	// Severity is decided by the validation level
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Message is operator-facing text, after any rewrite
	Message string `json:"message" yaml:"message"`
	// Source is the stage that produced the diagnostic
	Source Source `json:"source" yaml:"source"`
	// Path is the resource path or JSON pointer the diagnostic is about (optional)
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Refs lists the remote $ref values that need independent verification (REMOTE_REF only)
	Refs []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// New returns an error-severity diagnostic.
func New(code Code, source Source, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Source:   source,
	}
}

// Kind returns the failure category.
func (d Diagnostic) Kind() Kind {
	return d.Code.Kind()
}

// Blocking reports whether the diagnostic prevents acceptance.
func (d Diagnostic) Blocking() bool {
	return d.Severity.Blocking()
}

// Gateway returns the gateway error for the diagnostic's code.
func (d Diagnostic) Gateway() GatewayError {
	return Gateway(d.Code)
}

// WithSeverity returns a copy with the given severity.
func (d Diagnostic) WithSeverity(s severity.Severity) Diagnostic {
	d.Severity = s
	return d
}

// String returns a formatted string representation of the diagnostic.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity.Symbol(), d.Code, d.Path, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity.Symbol(), d.Code, d.Message)
}

// GatewayLine renders the diagnostic the way the API manager logs a rejected
// definition: "Invalid Swagger, Error Code: 900785, Error: ..., Swagger Error: ...".
// label is "Swagger" or "OpenAPI".
func (d Diagnostic) GatewayLine(label string) string {
	g := d.Gateway()
	if g.Code == 0 {
		return d.Message
	}
	return fmt.Sprintf("Invalid %s, Error Code: %d, Error: %s, Swagger Error: %s", label, g.Code, g.Message, d.Message)
}

// Headline returns the message without the appended remote reference list.
func (d Diagnostic) Headline() string {
	if len(d.Refs) == 0 {
		return d.Message
	}
	msg, _, _ := strings.Cut(d.Message, ". "+RemoteRefsHeading+": ")
	return msg
}
