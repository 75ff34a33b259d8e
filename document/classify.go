package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/oaserrors"
)

const inlineName = "inline"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Classify parses raw text and decides its encoding, family and title.
//
// The returned document is never nil. When the text cannot be parsed, or
// carries neither discriminator, its family is FamilyUnknown and the error is
// an *oaserrors.ClassificationError matching ErrUnparsable or
// ErrFamilyUnrecognized. Option errors are returned with a nil document.
func Classify(raw []byte, opts ...Option) (*SpecDocument, error) {
	cfg := classifyConfig{name: inlineName}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	doc := &SpecDocument{
		raw:      raw,
		name:     cfg.name,
		location: cfg.location,
		encoding: DetectEncoding(raw),
	}

	root, err := parseTree(raw, doc.encoding)
	if err != nil {
		return doc, &oaserrors.ClassificationError{Source: cfg.name, Unparsable: true, Cause: err}
	}
	doc.root = root
	doc.family, doc.version = detectFamily(root)
	if doc.family == FamilyUnknown {
		return doc, &oaserrors.ClassificationError{Source: cfg.name}
	}
	return doc, nil
}

// DetectEncoding reports JSON when the first non-space byte is '{'.
func DetectEncoding(raw []byte) Encoding {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(raw, utf8BOM), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return EncodingJSON
	}
	return EncodingYAML
}

// CheckTitle returns an *oaserrors.TitleError when doc has no usable title.
func CheckTitle(doc *SpecDocument) error {
	if title, ok := doc.Title(); !ok {
		return &oaserrors.TitleError{Source: doc.Name(), Value: title}
	}
	return nil
}

func parseTree(raw []byte, enc Encoding) (*yaml.Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("document is empty")
	}

	var root *yaml.Node
	if enc == EncodingJSON {
		if !json.Valid(raw) {
			// Surface the decoder's position-bearing message.
			var v any
			err := json.Unmarshal(raw, &v)
			return nil, err
		}
		node, err := decodeJSONTree(raw)
		if err != nil {
			return nil, err
		}
		root = node
	} else {
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, err
		}
		root = Resolve(&node)
	}

	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.New("top-level value is not an object")
	}
	return root, nil
}

// detectFamily applies the discriminator rules in order: an "openapi" value
// starting with "3." wins, then any "swagger" field.
func detectFamily(root *yaml.Node) (Family, string) {
	if n := Lookup(root, "openapi"); n != nil && n.Kind == yaml.ScalarNode && strings.HasPrefix(n.Value, "3.") {
		return FamilyOpenAPI3, n.Value
	}
	if n := Lookup(root, "swagger"); n != nil {
		version := ""
		if n.Kind == yaml.ScalarNode {
			version = n.Value
		}
		return FamilySwagger2, version
	}
	return FamilyUnknown, ""
}
