package document

import (
	"strings"

	"go.yaml.in/yaml/v4"
)

// SpecDocument is the classified form of one input. It is immutable after
// Classify returns.
type SpecDocument struct {
	raw      []byte
	name     string
	location string
	encoding Encoding
	family   Family
	version  string
	root     *yaml.Node
}

// Raw returns the text as read, minus any byte order mark. The resolvers load
// this text, not the tree.
func (d *SpecDocument) Raw() []byte { return d.raw }

// Name returns the display name given via WithName, or "inline".
func (d *SpecDocument) Name() string { return d.name }

// Location returns the base location for relative references ("" for inline text).
func (d *SpecDocument) Location() string { return d.location }

// Encoding returns the detected surface syntax.
func (d *SpecDocument) Encoding() Encoding { return d.encoding }

// Family returns the detected specification family.
func (d *SpecDocument) Family() Family { return d.family }

// Version returns the value of the discriminator field ("2.0", "3.0.3", ...).
func (d *SpecDocument) Version() string { return d.version }

// Root returns the top-level mapping node, or nil when the text did not parse.
func (d *SpecDocument) Root() *yaml.Node { return d.root }

// Lookup returns the node at the given mapping keys below the root.
func (d *SpecDocument) Lookup(keys ...string) *yaml.Node {
	if d.root == nil {
		return nil
	}
	return Lookup(d.root, keys...)
}

// Title returns info.title. ok is false when the title is absent, null, blank
// or the literal string "null".
func (d *SpecDocument) Title() (title string, ok bool) {
	n := d.Lookup("info", "title")
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return "", false
	}
	title = n.Value
	if strings.TrimSpace(title) == "" || title == "null" {
		return title, false
	}
	return title, true
}

// PathKeys returns the keys of the top-level paths object in document order.
// Vendor extensions are skipped.
func (d *SpecDocument) PathKeys() []string {
	var keys []string
	for key := range Pairs(d.Lookup("paths")) {
		if strings.HasPrefix(key, "x-") {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
