package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/oaserrors"
)

type classifyInput struct {
	Spec specInput `json:"spec" jsonschema:"The document to classify"`
}

type classifyOutput struct {
	Source    string `json:"source"`
	Encoding  string `json:"encoding"`
	Family    string `json:"family"`
	Version   string `json:"version,omitempty"`
	Title     string `json:"title,omitempty"`
	HasTitle  bool   `json:"has_title"`
	PathCount int    `json:"path_count"`
	Code      string `json:"code,omitempty"`
	Problem   string `json:"problem,omitempty"`
}

func (ts *toolset) handleClassify(ctx context.Context, _ *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	doc, err := ts.classify(ctx, input.Spec)
	if doc == nil {
		return errResult(err), classifyOutput{}, nil
	}

	out := classifyOutput{
		Source:    doc.Name(),
		Encoding:  doc.Encoding().String(),
		Family:    doc.Family().String(),
		Version:   doc.Version(),
		PathCount: len(doc.PathKeys()),
	}
	out.Title, out.HasTitle = doc.Title()

	switch {
	case errors.Is(err, oaserrors.ErrUnparsable):
		out.Code, out.Problem = string(diagnostic.CodeDocumentUnparsable), err.Error()
	case err != nil:
		out.Code, out.Problem = string(diagnostic.CodeFamilyUnrecognized), err.Error()
	default:
		if terr := document.CheckTitle(doc); terr != nil {
			out.Code, out.Problem = string(diagnostic.CodeTitleMissing), terr.Error()
		}
	}
	return nil, out, nil
}

// classify loads and classifies a document. The document is nil only when
// the input could not be read; otherwise err is the classification error.
func (ts *toolset) classify(ctx context.Context, in specInput) (*document.SpecDocument, error) {
	spec, err := in.load(ctx, ts.cfg, ts.client)
	if err != nil {
		return nil, err
	}
	raw, err := spec.source.Read()
	if err != nil {
		return nil, err
	}
	opts := []document.Option{document.WithName(spec.source.Name)}
	if spec.source.Path != "" {
		opts = append(opts, document.WithLocation(spec.source.Path))
	}
	return document.Classify(raw, opts...)
}
