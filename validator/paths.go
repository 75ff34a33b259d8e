package validator

import (
	"net/http"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/spec"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/resolver"
)

// PathShape is a read-only view of a resolved document's paths.
type PathShape interface {
	// Keys returns the declared paths in sorted order.
	Keys() []string
	// Methods returns the HTTP methods declared with an operation on path.
	// ok is false when path is not declared.
	Methods(path string) (methods []string, ok bool)
}

// ShapeOf returns the path view of a resolved document, or nil when there is
// no model to read. The Swagger 2.0 model wins over its OpenAPI 3 conversion.
func ShapeOf(d *resolver.Document) PathShape {
	switch {
	case d == nil:
		return nil
	case d.Swagger != nil:
		return NewSwagger2Shape(d.Swagger.Paths)
	case d.OpenAPI != nil:
		return NewOpenAPI3Shape(d.OpenAPI.Paths)
	default:
		return nil
	}
}

type oas3Shape struct {
	paths *openapi3.Paths
}

// NewOpenAPI3Shape returns the view of kin-openapi paths.
func NewOpenAPI3Shape(paths *openapi3.Paths) PathShape {
	return oas3Shape{paths: paths}
}

func (s oas3Shape) Keys() []string {
	if s.paths == nil {
		return nil
	}
	keys := make([]string, 0, s.paths.Len())
	for k := range s.paths.Map() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s oas3Shape) Methods(path string) ([]string, bool) {
	if s.paths == nil {
		return nil, false
	}
	item := s.paths.Value(path)
	if item == nil {
		return nil, false
	}
	ops := item.Operations()
	var methods []string
	for _, m := range httputil.DeclaredMethods {
		if ops[m] != nil {
			methods = append(methods, m)
		}
	}
	return methods, true
}

type swagger2Shape struct {
	paths *spec.Paths
}

// NewSwagger2Shape returns the view of go-openapi Swagger 2.0 paths.
func NewSwagger2Shape(paths *spec.Paths) PathShape {
	return swagger2Shape{paths: paths}
}

func (s swagger2Shape) Keys() []string {
	if s.paths == nil {
		return nil
	}
	keys := make([]string, 0, len(s.paths.Paths))
	for k := range s.paths.Paths {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s swagger2Shape) Methods(path string) ([]string, bool) {
	if s.paths == nil {
		return nil, false
	}
	item, ok := s.paths.Paths[path]
	if !ok {
		return nil, false
	}
	ops := map[string]*spec.Operation{
		http.MethodGet:     item.Get,
		http.MethodPost:    item.Post,
		http.MethodPut:     item.Put,
		http.MethodPatch:   item.Patch,
		http.MethodDelete:  item.Delete,
		http.MethodHead:    item.Head,
		http.MethodOptions: item.Options,
	}
	var methods []string
	for _, m := range httputil.GatewayMethods {
		if ops[m] != nil {
			methods = append(methods, m)
		}
	}
	return methods, true
}

// Conflict is a pair of paths that the gateway deploys as one resource and
// that both declare Method.
type Conflict struct {
	Path    string
	Sibling string
	Method  string
}

// FindDuplicatePath scans keys in order and returns the first path ending in
// "/" whose slash-less sibling is declared with an overlapping gateway method.
func FindDuplicatePath(keys []string, shape PathShape) (Conflict, bool) {
	if shape == nil {
		return Conflict{}, false
	}
	for _, path := range keys {
		if !strings.HasSuffix(path, "/") {
			continue
		}
		sibling := path[:len(path)-1]
		siblingMethods, ok := shape.Methods(sibling)
		if !ok {
			continue
		}
		methods, _ := shape.Methods(path)
		for _, m := range httputil.GatewayMethods {
			if slices.Contains(methods, m) && slices.Contains(siblingMethods, m) {
				return Conflict{Path: path, Sibling: sibling, Method: m}, true
			}
		}
	}
	return Conflict{}, false
}

// orderedKeys returns the raw document's path order restricted to paths the
// shape declares, followed by any remaining shape paths in sorted order.
func orderedKeys(raw []string, shape PathShape) []string {
	if shape == nil {
		return nil
	}
	declared := shape.Keys()
	out := make([]string, 0, len(declared))
	for _, k := range raw {
		if _, ok := shape.Methods(k); ok && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, k := range declared {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
