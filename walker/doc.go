// Package walker provides depth-first traversal of raw OpenAPI document trees.
//
// The walker operates on the order-preserving *yaml.Node tree produced by the
// document package, before any resolver has dereferenced it, so every $ref
// string is still visible. Traversal is independent of the specification
// family: objects are visited in the order their fields were written, arrays
// in index order.
//
// # Quick Start
//
// Collect every $ref and split local from remote:
//
//	refs, _ := walker.CollectRefs(doc.Root())
//	for _, r := range refs.Remote {
//	    fmt.Println(r.Value, "at", r.JSONPath)
//	}
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example skipping vendor extensions:
//
//	walker.Walk(root,
//	    walker.WithNodeHandler(func(wc *walker.WalkContext, n *yaml.Node) walker.Action {
//	        if strings.HasPrefix(wc.Key, "x-") {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Anchors
//
// YAML aliases are followed the first time their anchor is reached through an
// alias and skipped afterwards, so a shared fragment contributes its $ref
// values once and cyclic anchors cannot loop.
package walker
