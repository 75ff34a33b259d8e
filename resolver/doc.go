// Package resolver wraps the OpenAPI libraries that parse, dereference and
// schema-check documents, and normalizes their errors into plain messages.
//
// The rest of oasguard only sees a [Result]: an optional resolved [Document]
// plus free-text messages. The message wording is a contract with the
// diagnostic rule table:
//
//   - "attribute swagger is missing" / "attribute openapi is missing" when the
//     document lacks the discriminator of the requested family
//   - "Malformed Swagger definition: <cause>" when the text cannot be rendered
//     into the family model
//   - "Unable to load remote reference: <cause>" when a $ref outside the
//     document could not be fetched
//
// Both families start from the document text as read. Swagger 2.0 documents
// are loaded and schema-validated with go-openapi (loads, validate, analysis),
// with YAML converted by go-openapi's own helpers, and additionally converted
// to OpenAPI 3 with kin-openapi, whose messages use "#/components/schemas/"
// paths. OpenAPI 3.x documents go through the kin-openapi loader with
// external references enabled.
package resolver
