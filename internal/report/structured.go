package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/batch"
	"github.com/erraggy/oasguard/internal/cliutil"
	"github.com/erraggy/oasguard/internal/config"
	"github.com/erraggy/oasguard/validator"
)

// Output is the structured document written at the end of a run.
type Output struct {
	Reports []*validator.Report `json:"reports" yaml:"reports"`
	Summary batch.Counters      `json:"summary" yaml:"summary"`
}

// Structured collects reports and writes them as one JSON or YAML document
// when the run finishes.
type Structured struct {
	w       io.Writer
	format  string
	reports []*validator.Report
}

// Report implements Reporter.
func (s *Structured) Report(r *validator.Report) {
	s.reports = append(s.reports, r)
}

// Finish implements Reporter.
func (s *Structured) Finish(c batch.Counters) error {
	out := Output{Reports: s.reports, Summary: c}
	if out.Reports == nil {
		out.Reports = []*validator.Report{}
	}
	data, err := Marshal(out, s.format)
	if err != nil {
		return err
	}
	cliutil.Writef(s.w, "%s\n", data)
	return nil
}

// Marshal renders v as indented JSON or as YAML.
func Marshal(v any, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case config.FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("report: invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("report: marshaling to %s: %w", format, err)
	}
	return data, nil
}
