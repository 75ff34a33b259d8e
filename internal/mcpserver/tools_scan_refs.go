package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/walker"
)

type scanRefsInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The document to scan"`
	RemoteOnly bool      `json:"remote_only,omitempty" jsonschema:"Return only remote references"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip the first N references (for pagination)"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum number of references to return (default 100)"`
}

type refOutput struct {
	Ref   string `json:"ref"`
	Path  string `json:"path"`
	Local bool   `json:"local"`
	Line  int    `json:"line,omitempty"`
}

type scanRefsOutput struct {
	Total           int         `json:"total"`
	Local           int         `json:"local"`
	Remote          int         `json:"remote"`
	RemoteDocuments []string    `json:"remote_documents,omitempty"`
	Heading         string      `json:"heading,omitempty"`
	Returned        int         `json:"returned"`
	Refs            []refOutput `json:"refs,omitempty"`
}

func (ts *toolset) handleScanRefs(ctx context.Context, _ *mcp.CallToolRequest, input scanRefsInput) (*mcp.CallToolResult, scanRefsOutput, error) {
	doc, err := ts.classify(ctx, input.Spec)
	if doc == nil {
		return errResult(err), scanRefsOutput{}, nil
	}
	if doc.Root() == nil {
		return errResult(errors.Join(errors.New("document could not be parsed"), err)), scanRefsOutput{}, nil
	}

	refs, err := walker.CollectRefs(doc.Root(), walker.WithUserContext(ctx))
	if err != nil {
		return errResult(err), scanRefsOutput{}, nil
	}

	out := scanRefsOutput{
		Total:           len(refs.All),
		Local:           len(refs.Local),
		Remote:          len(refs.Remote),
		RemoteDocuments: refs.RemoteDocuments(),
	}
	if out.Remote > 0 {
		out.Heading = diagnostic.RemoteRefsHeading
	}

	selected := refs.All
	if input.RemoteOnly {
		selected = refs.Remote
	}
	selected = paginate(ts.cfg, selected, input.Offset, input.Limit)
	out.Refs = makeSlice[refOutput](len(selected))
	for _, r := range selected {
		out.Refs = append(out.Refs, refOutput{Ref: r.Ref, Path: r.JSONPath, Local: r.Local, Line: r.Line})
	}
	out.Returned = len(out.Refs)
	return nil, out, nil
}
