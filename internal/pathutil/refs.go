// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// Reference prefixes that appear in resolver messages.
const (
	// RefPrefixLocal starts every in-document reference.
	RefPrefixLocal = "#/"
	// RefPrefixDefinitions is the OAS 2.0 schema location.
	RefPrefixDefinitions = "#/definitions/"
	// RefPrefixSchemas is the OAS 3.x schema location.
	RefPrefixSchemas = "#/components/schemas/"
)

// IsLocalRef reports whether ref points inside the current document.
// Anything else (URLs, relative files, bare fragments without a slash)
// needs a fetch and is treated as remote.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, RefPrefixLocal)
}

// RefDocument returns the document part of a remote reference, dropping any
// fragment: "https://example.com/pet.json#/Pet" becomes "https://example.com/pet.json".
// Local references return "".
func RefDocument(ref string) string {
	if IsLocalRef(ref) {
		return ""
	}
	doc, _, _ := strings.Cut(ref, "#")
	return doc
}

// ToDefinitions rewrites every OAS 3.x schema path in s into its OAS 2.0 form.
func ToDefinitions(s string) string {
	return strings.ReplaceAll(s, RefPrefixSchemas, RefPrefixDefinitions)
}
