// Package httputil provides the HTTP method sets shared by the walker and
// the path checks.
package httputil

import (
	"net/http"
	"slices"
	"strings"
)

// Path item keys naming an operation, as written in a document.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// operationKeys are the path item keys that hold an operation in either family.
var operationKeys = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// GatewayMethods are the upper-case methods the gateway dispatches on, in
// check order. A Swagger 2.0 path item can declare exactly these.
var GatewayMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// DeclaredMethods is GatewayMethods plus the methods only OpenAPI 3 can declare.
var DeclaredMethods = append(slices.Clone(GatewayMethods), http.MethodTrace, http.MethodConnect)

// IsOperationKey reports whether key, a path item key as written in a
// document, names an operation.
func IsOperationKey(key string) bool {
	return slices.Contains(operationKeys, key)
}

// IsDeclaredMethod reports whether a path item key names a method in
// DeclaredMethods, ignoring case.
func IsDeclaredMethod(key string) bool {
	return slices.Contains(DeclaredMethods, strings.ToUpper(key))
}
