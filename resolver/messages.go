package resolver

import (
	"errors"
	"slices"
	"strings"

	openapierrors "github.com/go-openapi/errors"

	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/walker"
)

// Message wording shared with the diagnostic rule table.
const (
	MsgSwaggerMissing = "attribute swagger is missing"
	MsgOpenAPIMissing = "attribute openapi is missing"
	MsgRemotePrefix   = "Unable to load remote reference: "
)

// malformed formats the message for text that does not fit the family model.
func malformed(family document.Family, err error) string {
	return "Malformed " + family.Label() + " definition: " + err.Error()
}

// remoteFailureMarkers appear in errors raised while fetching a document.
var remoteFailureMarkers = []string{
	"no such file",
	"dial tcp",
	"no such host",
	"connection refused",
	"could not",
	"request returned status code",
	"Client.Timeout",
	"context deadline exceeded",
}

// isRemoteFailure reports whether err came from fetching one of the remote
// documents of doc.
func isRemoteFailure(err error, doc *document.SpecDocument) bool {
	if err == nil {
		return false
	}
	text := err.Error()
	for _, marker := range remoteFailureMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	for _, ref := range remoteDocuments(doc) {
		if strings.Contains(text, ref) {
			return true
		}
	}
	return false
}

// resolutionMessage classifies an error raised while following references.
func resolutionMessage(err error, doc *document.SpecDocument) string {
	if isRemoteFailure(err, doc) {
		return MsgRemotePrefix + err.Error()
	}
	return err.Error()
}

// invalidRefPrefix starts go-openapi's finding for a $ref it cannot follow.
const invalidRefPrefix = "invalid ref "

// dropRemoteRefFindings removes validator findings about $refs into remote
// documents. The fetch failure that follows reports the same references.
func dropRemoteRefFindings(msgs []string, doc *document.SpecDocument) []string {
	docs := remoteDocuments(doc)
	return slices.DeleteFunc(msgs, func(msg string) bool {
		if !strings.HasPrefix(msg, invalidRefPrefix) {
			return false
		}
		return slices.ContainsFunc(docs, func(d string) bool { return strings.Contains(msg, d) })
	})
}

func remoteDocuments(doc *document.SpecDocument) []string {
	refs, err := walker.CollectRefs(doc.Root())
	if err != nil {
		return nil
	}
	docs := refs.RemoteDocuments()
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if d = strings.TrimPrefix(d, "./"); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// flattenErrors expands go-openapi composite errors into their leaf messages.
func flattenErrors(errs []error) []string {
	var out []string
	for _, err := range errs {
		var composite *openapierrors.CompositeError
		if errors.As(err, &composite) && len(composite.Errors) > 0 {
			out = append(out, flattenErrors(composite.Errors)...)
			continue
		}
		if err != nil {
			out = append(out, err.Error())
		}
	}
	return out
}

// splitLines breaks kin-openapi's multi-line validation errors into one message per line.
func splitLines(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// dedupe drops repeated messages, keeping first occurrences in order.
func dedupe(msgs []string) []string {
	out := msgs[:0:0]
	for _, m := range msgs {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}
