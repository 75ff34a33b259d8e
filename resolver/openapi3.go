package resolver

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasguard/document"
)

// newLoader returns a kin-openapi loader for one document. Loaders remember
// visited documents, so they are never shared between documents.
func (d *Default) newLoader(ctx context.Context) *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx
	loader.ReadFromURIFunc = d.readURI
	return loader
}

// ResolveOpenAPI3 implements Resolver.
//
// The text is loaded by kin-openapi as read, with references resolved against
// the document location. When loading fails the text is decoded on its own to
// tell a document that does not fit the model from one whose references
// cannot be followed.
func (d *Default) ResolveOpenAPI3(ctx context.Context, doc *document.SpecDocument) Result {
	if document.IsNull(doc.Lookup("openapi")) {
		return Result{Messages: []string{MsgOpenAPIMissing}}
	}

	t, err := loadOpenAPI3(d.newLoader(ctx), doc)
	if err != nil {
		decoded, decodeErr := decodeOpenAPI3(doc)
		if decodeErr != nil {
			return Result{Messages: []string{malformed(document.FamilyOpenAPI3, decodeErr)}}
		}
		d.logger.Debug("reference resolution failed", "source", doc.Name(), "error", err)
		return Result{
			Document: &Document{Family: document.FamilyOpenAPI3, OpenAPI: decoded},
			Messages: []string{resolutionMessage(err, doc)},
		}
	}

	var msgs []string
	if err := t.Validate(ctx); err != nil {
		msgs = splitLines(err)
	}
	return Result{
		Document: &Document{Family: document.FamilyOpenAPI3, OpenAPI: t},
		Messages: dedupe(msgs),
	}
}

func loadOpenAPI3(loader *openapi3.Loader, doc *document.SpecDocument) (*openapi3.T, error) {
	if loc := locationURL(doc.Location()); loc != nil {
		return loader.LoadFromDataWithPath(doc.Raw(), loc)
	}
	return loader.LoadFromData(doc.Raw())
}

// decodeOpenAPI3 decodes the model without following references.
func decodeOpenAPI3(doc *document.SpecDocument) (*openapi3.T, error) {
	data, err := jsonText(doc.Raw())
	if err != nil {
		return nil, err
	}
	t := &openapi3.T{}
	if err := t.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return t, nil
}

// parseOpenAPI3Lenient decodes the document model without resolving or validating.
func (d *Default) parseOpenAPI3Lenient(doc *document.SpecDocument) error {
	_, err := decodeOpenAPI3(doc)
	return err
}
