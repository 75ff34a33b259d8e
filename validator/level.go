package validator

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasguard/internal/severity"
	"github.com/erraggy/oasguard/oaserrors"
)

// Level selects how strictly a document is checked.
type Level int

const (
	// LevelParseOnly only checks that a resolved document comes back.
	LevelParseOnly Level = iota
	// LevelCompat validates the way the 4.0.0 gateway does; resolver findings are warnings.
	LevelCompat
	// LevelFull treats resolver findings as errors and runs the semantic checks.
	LevelFull
)

// DefaultLevel is used when no level is given.
const DefaultLevel = LevelFull

// Policy is the row of the strictness table for one level.
type Policy struct {
	// EmitDiagnostics turns resolver messages into diagnostics
	EmitDiagnostics bool
	// ResolverSeverity is the severity given to resolver diagnostics
	ResolverSeverity severity.Severity
	// ExplainMalformed runs the lenient parse to find the cause of malformed messages
	ExplainMalformed bool
	// SemanticChecks enables the path and operation checks
	SemanticChecks bool
	// AcceptedBy names the gateway release that accepts a passing document
	AcceptedBy string
}

var policies = [...]Policy{
	LevelParseOnly: {
		ResolverSeverity: severity.SeverityInfo,
	},
	LevelCompat: {
		EmitDiagnostics:  true,
		ResolverSeverity: severity.SeverityWarning,
		AcceptedBy:       "the level 1 validation of APIM 4.0.0",
	},
	LevelFull: {
		EmitDiagnostics:  true,
		ResolverSeverity: severity.SeverityError,
		ExplainMalformed: true,
		SemanticChecks:   true,
		AcceptedBy:       "the APIM 4.2.0",
	},
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l >= LevelParseOnly && l <= LevelFull
}

// Policy returns the policy row for l. Unknown levels get the full policy.
func (l Level) Policy() Policy {
	if !l.Valid() {
		return policies[LevelFull]
	}
	return policies[l]
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelParseOnly:
		return "parse-only"
	case LevelCompat:
		return "compatibility"
	case LevelFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseLevel accepts a level number ("0", "1", "2") or name.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if l := Level(n); l.Valid() {
			return l, nil
		}
	}
	for l := LevelParseOnly; l <= LevelFull; l++ {
		if s == l.String() {
			return l, nil
		}
	}
	return DefaultLevel, &oaserrors.ConfigError{
		Option:  "level",
		Value:   s,
		Message: "must be 0 (parse-only), 1 (compatibility) or 2 (full)",
	}
}
