package walker

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/internal/pathutil"
)

// RefCollector holds the $ref values found in a document, in traversal order.
type RefCollector struct {
	// All contains every reference, duplicates included.
	All []*RefInfo

	// Local contains references starting with "#/".
	Local []*RefInfo

	// Remote contains every other reference.
	Remote []*RefInfo
}

// CollectRefs walks root and collects every string-valued $ref field.
func CollectRefs(root *yaml.Node, opts ...Option) (*RefCollector, error) {
	c := &RefCollector{}
	opts = append(opts, WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
		c.All = append(c.All, ref)
		if ref.Local {
			c.Local = append(c.Local, ref)
		} else {
			c.Remote = append(c.Remote, ref)
		}
		return Continue
	}))
	if err := Walk(root, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoteValues returns the distinct remote reference values in first-seen order.
func (c *RefCollector) RemoteValues() []string {
	seen := make(map[string]struct{}, len(c.Remote))
	values := make([]string, 0, len(c.Remote))
	for _, ref := range c.Remote {
		if _, dup := seen[ref.Ref]; dup {
			continue
		}
		seen[ref.Ref] = struct{}{}
		values = append(values, ref.Ref)
	}
	return values
}

// RemoteDocuments returns the distinct documents the remote references fetch,
// fragments dropped, in first-seen order.
func (c *RefCollector) RemoteDocuments() []string {
	seen := make(map[string]struct{}, len(c.Remote))
	var docs []string
	for _, ref := range c.Remote {
		d := pathutil.RefDocument(ref.Ref)
		if _, dup := seen[d]; dup || d == "" {
			continue
		}
		seen[d] = struct{}{}
		docs = append(docs, d)
	}
	return docs
}

// RemoteRefs is shorthand for the distinct remote $ref values of root.
func RemoteRefs(root *yaml.Node) []string {
	c, err := CollectRefs(root)
	if err != nil {
		return nil
	}
	return c.RemoteValues()
}
