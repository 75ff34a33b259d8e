package validator

import (
	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/resolver"
)

// Verdict is the outcome of validating one document.
type Verdict string

const (
	// VerdictValid means the document resolved with no findings.
	VerdictValid Verdict = "VALID"
	// VerdictValidWithWarnings means the document resolved but the resolver
	// reported findings. Whether they block depends on the level.
	VerdictValidWithWarnings Verdict = "VALID_WITH_WARNINGS"
	// VerdictMalformed means the document could not be rendered into its
	// family model, or failed a path or operation check.
	VerdictMalformed Verdict = "MALFORMED"
	// VerdictInvalid means the document was rejected outright: unreadable,
	// unclassifiable, missing its title, or rejected by both family validators.
	VerdictInvalid Verdict = "INVALID"
)

// Failed reports whether the verdict alone rejects the document.
func (v Verdict) Failed() bool {
	return v == VerdictMalformed || v == VerdictInvalid
}

// Report is the result of validating one document.
type Report struct {
	// Source names the input (file path or "inline")
	Source string `json:"source" yaml:"source"`
	// Title is info.title, when declared
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Family is the family the verdict was reached for
	Family document.Family `json:"family" yaml:"family"`
	// Level is the validation level used
	Level Level `json:"level" yaml:"level"`
	// Verdict is the outcome
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	// Diagnostics are the findings in the order they were produced
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	// Resolved is the resolved document, when there is one
	Resolved *resolver.Document `json:"-" yaml:"-"`
	// FallbackFrom is the family tried first when the verdict came from the fallback family
	FallbackFrom document.Family `json:"fallbackFrom,omitempty" yaml:"fallbackFrom,omitempty"`
}

// Blocking reports whether the document must not be imported.
func (r *Report) Blocking() bool {
	if r.Verdict.Failed() {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Blocking() {
			return true
		}
	}
	return false
}

// Accepted reports whether the gateway would import the document.
func (r *Report) Accepted() bool {
	return !r.Blocking()
}

// AcceptedBy returns the acceptance line for an accepted document, or ""
// when the document is rejected or the level makes no acceptance claim.
func (r *Report) AcceptedBy() string {
	by := r.Level.Policy().AcceptedBy
	if by == "" || !r.Accepted() {
		return ""
	}
	return "Swagger file will be accepted by " + by
}

// BlockingCodes returns the codes of blocking diagnostics in order.
func (r *Report) BlockingCodes() []diagnostic.Code {
	var codes []diagnostic.Code
	for _, d := range r.Diagnostics {
		if d.Blocking() {
			codes = append(codes, d.Code)
		}
	}
	return codes
}

// Invalid returns an INVALID report holding a single diagnostic. It is used
// for documents that never reach a family validator.
func Invalid(source string, level Level, d diagnostic.Diagnostic) *Report {
	return &Report{
		Source:      source,
		Family:      document.FamilyUnknown,
		Level:       level,
		Verdict:     VerdictInvalid,
		Diagnostics: []diagnostic.Diagnostic{d},
	}
}
