package walker

import (
	"context"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/internal/pathutil"
)

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// Key is the mapping key of the current node. Empty for array items and the root.
	Key string

	// PathTemplate is the URL path template when walking within the paths object.
	// Example: "/pets/{petId}"
	PathTemplate string

	// Method is the HTTP method when walking within an operation.
	// Example: "get", "post"
	Method string

	ptr  *pathutil.Pointer
	keys []string
	ctx  context.Context
}

// Context returns the context.Context for cancellation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// JSONPath returns the JSON Pointer of the current node, e.g. "#/paths/~1pets/get".
func (wc *WalkContext) JSONPath() string {
	return wc.ptr.String()
}

// Depth returns the nesting depth of the current node; the root is 0.
func (wc *WalkContext) Depth() int {
	return wc.ptr.Depth()
}

func (wc *WalkContext) enter(key string) {
	wc.ptr.Push(key)
	wc.keys = append(wc.keys, key)
	wc.Key = key
	wc.scope()
}

func (wc *WalkContext) enterIndex(i int) {
	wc.ptr.PushIndex(i)
	wc.keys = append(wc.keys, "")
	wc.Key = ""
	wc.scope()
}

func (wc *WalkContext) leave() {
	wc.ptr.Pop()
	wc.keys = wc.keys[:len(wc.keys)-1]
	wc.Key = ""
	if n := len(wc.keys); n > 0 {
		wc.Key = wc.keys[n-1]
	}
	wc.scope()
}

// scope derives PathTemplate and Method from the key stack.
func (wc *WalkContext) scope() {
	wc.PathTemplate, wc.Method = "", ""
	if len(wc.keys) < 2 || wc.keys[0] != "paths" {
		return
	}
	wc.PathTemplate = wc.keys[1]
	if len(wc.keys) >= 3 && httputil.IsOperationKey(wc.keys[2]) {
		wc.Method = wc.keys[2]
	}
}
