package batch

import (
	"fmt"

	"github.com/erraggy/oasguard/validator"
)

// Counters summarizes a run.
type Counters struct {
	TotalFiles      int `json:"totalFiles" yaml:"totalFiles"`
	Succeeded       int `json:"succeeded" yaml:"succeeded"`
	Failed          int `json:"failed" yaml:"failed"`
	Malformed       int `json:"malformed" yaml:"malformed"`
	PartiallyPassed int `json:"partiallyPassed" yaml:"partiallyPassed"`
}

// Add counts one report.
//
// VALID documents succeed. VALID_WITH_WARNINGS documents pass partially and
// also fail when a diagnostic blocks them. MALFORMED documents fail and are
// counted as malformed. INVALID documents fail.
func (c *Counters) Add(r *validator.Report) {
	c.TotalFiles++
	switch r.Verdict {
	case validator.VerdictValid:
		c.Succeeded++
	case validator.VerdictValidWithWarnings:
		c.PartiallyPassed++
		if r.Blocking() {
			c.Failed++
		}
	case validator.VerdictMalformed:
		c.Failed++
		c.Malformed++
	default:
		c.Failed++
	}
}

// Summary returns the end-of-run summary line.
func (c Counters) Summary() string {
	return fmt.Sprintf("Summary --- Total Files Processed: %d. Total Successful Files Count %d. "+
		"Total Failed Files Count: %d. Total Malformed Swagger File Count: %d. "+
		"Total Partially Passed Files Count: %d",
		c.TotalFiles, c.Succeeded, c.Failed, c.Malformed, c.PartiallyPassed)
}
