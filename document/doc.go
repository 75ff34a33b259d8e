// Package document classifies raw text into a SpecDocument.
//
// Classification decides three things once per input: the encoding (JSON when
// the trimmed text starts with '{', YAML otherwise), the specification family
// (OpenAPI 3.x when an "openapi" field starts with "3.", Swagger 2.0 when a
// "swagger" field exists) and the declared info.title.
//
// The parsed tree is kept as an order-preserving *yaml.Node so that later
// stages (the $ref walker, the path-duplication check) see keys in the order
// the author wrote them.
//
//	doc, err := document.Classify(data, document.WithName("petstore.yaml"))
//	if err != nil {
//	    // doc.Family() == document.FamilyUnknown
//	}
//	if err := document.CheckTitle(doc); err != nil {
//	    // gateway cannot register an API without a title
//	}
package document
