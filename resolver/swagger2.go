package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/analysis"
	"github.com/go-openapi/loads"
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"

	"github.com/erraggy/oasguard/document"
)

// ResolveSwagger2 implements Resolver.
//
// The document is loaded and validated with go-openapi, then flattened with
// full expansion. Documents that flatten are also converted to OpenAPI 3 with
// kin-openapi; conversion findings use the OpenAPI 3 component paths. A failed
// flatten skips the conversion, which would follow the same references again.
func (d *Default) ResolveSwagger2(ctx context.Context, doc *document.SpecDocument) Result {
	if document.IsNull(doc.Lookup("swagger")) {
		return Result{Messages: []string{MsgSwaggerMissing}}
	}

	data, err := jsonText(doc.Raw())
	if err != nil {
		return Result{Messages: []string{malformed(document.FamilySwagger2, err)}}
	}
	analyzed, err := loads.Analyzed(data, "")
	if err != nil {
		return Result{Messages: []string{malformed(document.FamilySwagger2, err)}}
	}

	var msgs []string
	errs, _ := validate.NewSpecValidator(analyzed.Schema(), strfmt.Default).Validate(analyzed)
	if errs != nil {
		msgs = append(msgs, flattenErrors(errs.Errors)...)
	}
	valid := len(msgs) == 0

	if err := ctx.Err(); err != nil {
		msgs = append(msgs, fmt.Sprintf("resolution aborted: %v", err))
		return Result{
			Document: &Document{Family: document.FamilySwagger2, Swagger: analyzed.Spec()},
			Messages: dedupe(msgs),
		}
	}

	if err := analysis.Flatten(analysis.FlattenOpts{
		Spec:     analyzed.Analyzer,
		BasePath: doc.Location(),
		Expand:   true,
	}); err != nil {
		d.logger.Debug("flatten failed", "source", doc.Name(), "error", err)
		if isRemoteFailure(err, doc) {
			msgs = dropRemoteRefFindings(msgs, doc)
		}
		msgs = append(msgs, resolutionMessage(err, doc))
		return Result{
			Document: &Document{Family: document.FamilySwagger2, Swagger: analyzed.Spec()},
			Messages: dedupe(msgs),
		}
	}

	resolved := &Document{Family: document.FamilySwagger2, Swagger: analyzed.Spec()}
	v3, convMsgs := d.convertSwagger2(ctx, doc, data, valid)
	resolved.OpenAPI = v3
	msgs = append(msgs, convMsgs...)

	return Result{Document: resolved, Messages: dedupe(msgs)}
}

// convertSwagger2 builds the OpenAPI 3 view of a Swagger 2.0 document. The
// converted model is only validated when go-openapi found nothing, so one
// problem is not reported twice in two wordings.
func (d *Default) convertSwagger2(ctx context.Context, doc *document.SpecDocument, data []byte, validateV3 bool) (*openapi3.T, []string) {
	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, []string{err.Error()}
	}
	v3, err := openapi2conv.ToV3WithLoader(&doc2, d.newLoader(ctx), locationURL(doc.Location()))
	if err != nil {
		return nil, []string{resolutionMessage(err, doc)}
	}
	if !validateV3 {
		return v3, nil
	}
	if err := v3.Validate(ctx); err != nil {
		return v3, splitLines(err)
	}
	return v3, nil
}

// parseSwagger2Lenient loads the document and expands it without validation.
// Failures to fetch a remote document are reported with the remote-reference
// wording.
func (d *Default) parseSwagger2Lenient(ctx context.Context, doc *document.SpecDocument) error {
	data, err := jsonText(doc.Raw())
	if err != nil {
		return err
	}
	analyzed, err := loads.Analyzed(data, "")
	if err != nil {
		return err
	}
	_, err = analyzed.Expanded(&spec.ExpandOptions{
		RelativeBase: doc.Location(),
		PathLoader:   d.pathLoader(ctx),
	})
	if err == nil {
		return nil
	}
	if isRemoteFailure(err, doc) {
		return fmt.Errorf("%s%w", MsgRemotePrefix, err)
	}
	return err
}
