package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/validator"
)

type validateInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to validate"`
	Level  *int      `json:"level,omitempty"  jsonschema:"Validation level: 0 parse-only, 1 compatibility, 2 full (default from OASGUARD_MCP_LEVEL)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N diagnostics (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of diagnostics to return (default 100)"`
}

type diagnosticOutput struct {
	Code        string   `json:"code"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	Source      string   `json:"source"`
	Path        string   `json:"path,omitempty"`
	GatewayCode int      `json:"gateway_code,omitempty"`
	Refs        []string `json:"refs,omitempty"`
}

type validateOutput struct {
	Source        string             `json:"source"`
	Title         string             `json:"title,omitempty"`
	Family        string             `json:"family"`
	FallbackFrom  string             `json:"fallback_from,omitempty"`
	Level         int                `json:"level"`
	Verdict       string             `json:"verdict"`
	Accepted      bool               `json:"accepted"`
	AcceptedBy    string             `json:"accepted_by,omitempty"`
	ErrorCount    int                `json:"error_count"`
	WarningCount  int                `json:"warning_count"`
	Returned      int                `json:"returned"`
	Diagnostics   []diagnosticOutput `json:"diagnostics,omitempty"`
	BlockingCodes []string           `json:"blocking_codes,omitempty"`
}

func (ts *toolset) handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	orch, err := ts.orchestrator(input.Level)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	spec, err := input.Spec.load(ctx, ts.cfg, ts.client)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	key := reportKey(orch.Level(), spec.key)
	var report *validator.Report
	if ts.cfg.CacheEnabled {
		report = ts.cache.get(key)
	}
	if report == nil {
		report = orch.Process(ctx, spec.source)
		if ts.cfg.CacheEnabled && ctx.Err() == nil {
			ts.cache.put(key, report, spec.ttl)
		}
	}

	output := summarize(report)
	output.Diagnostics = paginate(ts.cfg, output.Diagnostics, input.Offset, input.Limit)
	output.Returned = len(output.Diagnostics)
	return nil, output, nil
}

// summarize converts a report into tool output with every diagnostic.
func summarize(r *validator.Report) validateOutput {
	out := validateOutput{
		Source:     r.Source,
		Title:      r.Title,
		Family:     r.Family.String(),
		Level:      int(r.Level),
		Verdict:    string(r.Verdict),
		Accepted:   r.Accepted(),
		AcceptedBy: r.AcceptedBy(),
	}
	if r.FallbackFrom != document.FamilyUnknown {
		out.FallbackFrom = r.FallbackFrom.String()
	}
	out.Diagnostics = makeSlice[diagnosticOutput](len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		if d.Blocking() {
			out.ErrorCount++
		} else {
			out.WarningCount++
		}
		out.Diagnostics = append(out.Diagnostics, diagnosticOutput{
			Code:        string(d.Code),
			Severity:    d.Severity.String(),
			Message:     d.Message,
			Source:      string(d.Source),
			Path:        d.Path,
			GatewayCode: d.Gateway().Code,
			Refs:        d.Refs,
		})
	}
	for _, c := range r.BlockingCodes() {
		out.BlockingCodes = append(out.BlockingCodes, string(c))
	}
	return out
}
