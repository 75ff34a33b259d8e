// Package diagnostic defines the closed diagnostic taxonomy and the rule
// table that turns free-text resolver messages into stable codes.
//
// Resolvers only emit prose, so classification is textual: each [Rule]
// matches a marker substring and may rewrite the message once. Rules are
// evaluated in order and the first match wins:
//
//	d := diagnostic.Classify("attribute swagger is missing", diagnostic.Context{})
//	d.Code // CodeSwaggerMissing
//
// Every code belongs to one [Kind] and maps to the gateway error that the
// API manager reports for it (see [Gateway]).
package diagnostic
