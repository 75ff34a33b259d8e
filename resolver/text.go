package resolver

import (
	"bytes"
	"encoding/json"

	"github.com/go-openapi/loads/fmts"
)

// jsonText returns data as JSON for go-openapi, which only decodes JSON.
// JSON input is returned unchanged; YAML goes through go-openapi's own
// order-preserving converter.
func jsonText(data []byte) (json.RawMessage, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return json.RawMessage(data), nil
	}
	yamlDoc, err := fmts.BytesToYAMLDoc(data)
	if err != nil {
		return nil, err
	}
	return fmts.YAMLToJSON(yamlDoc)
}
