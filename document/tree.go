package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"go.yaml.in/yaml/v4"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
	tagMerge = "!!merge"

	// maxDepth bounds alias expansion so self-referencing anchors cannot recurse forever.
	maxDepth = 512
)

var errTooDeep = errors.New("document nesting exceeds maximum depth")

// Resolve follows alias nodes and unwraps a document node to its content.
func Resolve(n *yaml.Node) *yaml.Node {
	for i := 0; n != nil && i < maxDepth; i++ {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return n
}

// Pairs yields the key/value pairs of a mapping node in document order.
// Merge keys ("<<") are expanded in place. Non-mapping nodes yield nothing.
func Pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		pairs(Resolve(n), 0, yield)
	}
}

func pairs(n *yaml.Node, depth int, yield func(string, *yaml.Node) bool) bool {
	if n == nil || n.Kind != yaml.MappingNode || depth > maxDepth {
		return true
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := Resolve(n.Content[i]), n.Content[i+1]
		if key == nil {
			continue
		}
		if key.ShortTag() == tagMerge {
			if !pairs(Resolve(val), depth+1, yield) {
				return false
			}
			continue
		}
		if !yield(key.Value, val) {
			return false
		}
	}
	return true
}

// Lookup descends through mapping keys and returns the resolved node, or nil
// when any key along the way is absent.
func Lookup(n *yaml.Node, keys ...string) *yaml.Node {
	cur := Resolve(n)
	for _, key := range keys {
		var next *yaml.Node
		for k, v := range Pairs(cur) {
			if k == key {
				next = v
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = Resolve(next)
	}
	return cur
}

// IsNull reports whether n is absent or an explicit YAML/JSON null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull)
}

// decodeJSONTree builds an order-preserving node tree from strict JSON.
// The JSON token stream is used instead of the YAML decoder because JSON
// allows tab indentation that YAML rejects.
func decodeJSONTree(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := readJSONValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return root, nil
}

func readJSONValue(dec *json.Decoder, depth int) (*yaml.Node, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not a string", keyTok)
				}
				val, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, scalar(tagStr, key), val)
			}
			_, err = dec.Token() // closing '}'
			return node, err
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				val, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, val)
			}
			_, err = dec.Token() // closing ']'
			return node, err
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return scalar(tagStr, t), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return scalar(tagFloat, t.String()), nil
		}
		return scalar(tagInt, t.String()), nil
	case bool:
		if t {
			return scalar(tagBool, "true"), nil
		}
		return scalar(tagBool, "false"), nil
	case nil:
		return scalar(tagNull, "null"), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
