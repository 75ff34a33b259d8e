// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer building and $ref helpers for
// OpenAPI document traversal.
//
// The primary type is [Pointer], which uses push/pop semantics to build
// RFC 6901 pointers incrementally without allocating intermediate strings.
// The walker keeps one pointer per traversal and only materializes it when
// a $ref is found.
//
// # Pointer Usage
//
// Use [Get] to obtain a pooled Pointer, and [Put] to return it:
//
//	ptr := pathutil.Get()
//	defer pathutil.Put(ptr)
//
//	ptr.Push("paths")
//	ptr.Push("/pets")     // escaped to "~1pets"
//	ptr.PushIndex(0)
//	ptr.String()          // "#/paths/~1pets/0"
//
// # Reference Helpers
//
// [IsLocalRef] decides whether a $ref stays inside the current document.
// [RefDocument] returns the part of a remote $ref that names the fetched
// document, and [ToDefinitions] rewrites OAS 3.x schema paths into their
// OAS 2.0 form for messages shown to Swagger 2.0 authors:
//
//	pathutil.IsLocalRef("#/components/schemas/Pet")      // true
//	pathutil.RefDocument("./external.yaml#/Pet")         // "./external.yaml"
//	pathutil.ToDefinitions("#/components/schemas/Pet")   // "#/definitions/Pet"
package pathutil
