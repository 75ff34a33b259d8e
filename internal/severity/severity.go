// Package severity provides severity level constants for diagnostics
// reported by the validator and batch packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error
//
// A diagnostic with SeverityError is blocking: the gateway would reject the
// document. Warnings and infos are advisory.
package severity

import "strings"

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityInfo indicates informational messages, such as a fallback to the other spec family.
	SeverityInfo Severity = iota

	// SeverityWarning indicates resolver findings tolerated in compatibility mode.
	SeverityWarning

	// SeverityError indicates a violation that blocks import into the gateway.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the single-rune marker used in text output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// Blocking reports whether the severity prevents a document from being accepted.
func (s Severity) Blocking() bool {
	return s >= SeverityError
}

// MarshalText implements encoding.TextMarshaler so severities render by name
// in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Parse converts a name back into a Severity. Unknown names map to SeverityInfo
// and ok is false.
func Parse(name string) (sev Severity, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	default:
		return SeverityInfo, false
	}
}
