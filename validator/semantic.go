package validator

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/diagnostic"
	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/httputil"
)

// checkSemantics runs every semantic check and returns one diagnostic per
// violation. Path order follows the raw document.
func checkSemantics(doc *document.SpecDocument, shape PathShape) []diagnostic.Diagnostic {
	keys := orderedKeys(doc.PathKeys(), shape)
	if len(keys) == 0 {
		return []diagnostic.Diagnostic{
			diagnostic.New(diagnostic.CodeEmptyPaths, diagnostic.SourceSemanticCheck,
				"resource paths cannot be empty"),
		}
	}

	var diags []diagnostic.Diagnostic
	for _, path := range keys {
		if methods, _ := shape.Methods(path); len(methods) == 0 {
			d := diagnostic.New(diagnostic.CodeEmptyOperations, diagnostic.SourceSemanticCheck,
				"operations cannot be empty for resource path `%s`", path)
			d.Path = path
			diags = append(diags, d)
		}
		for _, method := range nullOperations(doc, path) {
			d := diagnostic.New(diagnostic.CodeNullOperation, diagnostic.SourceSemanticCheck,
				"operation object cannot be empty for method `%s` in path `%s`", method, path)
			d.Path = path
			diags = append(diags, d)
		}
	}

	if c, ok := FindDuplicatePath(keys, shape); ok {
		d := diagnostic.New(diagnostic.CodeDuplicatePath, diagnostic.SourceSemanticCheck,
			"resource paths `%s` and `%s` are deployed as one resource and both declare %s",
			c.Sibling, c.Path, c.Method)
		d.Path = c.Path
		diags = append(diags, d)
	}
	return diags
}

// nullOperations returns the upper-case methods of path whose value in the
// raw document is null.
func nullOperations(doc *document.SpecDocument, path string) []string {
	item := doc.Lookup("paths", path)
	if item == nil || item.Kind != yaml.MappingNode {
		return nil
	}
	var methods []string
	for key, val := range document.Pairs(item) {
		if httputil.IsDeclaredMethod(key) && document.IsNull(val) {
			methods = append(methods, strings.ToUpper(key))
		}
	}
	return methods
}
