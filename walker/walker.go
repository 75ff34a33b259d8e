package walker

import (
	"context"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/document"
	"github.com/erraggy/oasguard/internal/pathutil"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// NodeHandler is called for every mapping, sequence and scalar node.
type NodeHandler func(wc *WalkContext, n *yaml.Node) Action

const defaultMaxDepth = 1000

// Walker holds the traversal configuration.
type Walker struct {
	userCtx  context.Context
	maxDepth int

	onNode NodeHandler
	onRef  RefHandler

	seenAliases map[*yaml.Node]struct{}
	stopped     bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithNodeHandler sets the handler called for every node.
func WithNodeHandler(fn NodeHandler) Option {
	return func(w *Walker) {
		w.onNode = fn
	}
}

// WithRefHandler sets the handler called for every string-valued $ref field.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) {
		w.onRef = fn
	}
}

// WithMaxDepth sets the maximum nesting depth. Deeper nodes are not visited.
// If depth is not positive, the default (1000) is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context for cancellation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// Walk traverses root depth-first. A nil root is not an error.
// The returned error is non-nil only when the context is cancelled.
func Walk(root *yaml.Node, opts ...Option) error {
	w := &Walker{
		maxDepth:    defaultMaxDepth,
		seenAliases: make(map[*yaml.Node]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	ptr := pathutil.Get()
	defer pathutil.Put(ptr)

	wc := &WalkContext{ptr: ptr, ctx: w.userCtx}
	w.visit(wc, root)
	return wc.Context().Err()
}

func (w *Walker) visit(wc *WalkContext, n *yaml.Node) {
	if n == nil || w.stopped {
		return
	}
	if err := wc.Context().Err(); err != nil {
		w.stopped = true
		return
	}

	switch n.Kind {
	case yaml.DocumentNode:
		for _, child := range n.Content {
			w.visit(wc, child)
		}
		return
	case yaml.AliasNode:
		if _, seen := w.seenAliases[n.Alias]; seen {
			return
		}
		w.seenAliases[n.Alias] = struct{}{}
		w.visit(wc, n.Alias)
		return
	}

	if wc.ptr.Depth() > w.maxDepth {
		return
	}
	if w.onNode != nil && w.handle(w.onNode(wc, n)) {
		return
	}

	switch n.Kind {
	case yaml.MappingNode:
		for key, val := range document.Pairs(n) {
			if key == "$ref" && w.onRef != nil {
				if target := document.Resolve(val); target != nil && target.Kind == yaml.ScalarNode {
					ref := &RefInfo{
						Ref:      target.Value,
						JSONPath: wc.JSONPath(),
						Local:    pathutil.IsLocalRef(target.Value),
						Line:     target.Line,
					}
					if w.onRef(wc, ref) == Stop {
						w.stopped = true
						return
					}
				}
			}
			wc.enter(key)
			w.visit(wc, val)
			wc.leave()
			if w.stopped {
				return
			}
		}
	case yaml.SequenceNode:
		for i, child := range n.Content {
			wc.enterIndex(i)
			w.visit(wc, child)
			wc.leave()
			if w.stopped {
				return
			}
		}
	}
}

// handle applies a handler's Action and reports whether children must be skipped.
func (w *Walker) handle(a Action) bool {
	switch a {
	case Stop:
		w.stopped = true
		return true
	case SkipChildren:
		return true
	default:
		return false
	}
}
