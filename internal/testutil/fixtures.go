// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// Document text fixtures.
const (
	// OpenAPIPets is a small valid OpenAPI 3.0 document.
	OpenAPIPets = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: A list of pets
`
	// SwaggerPets is a small valid Swagger 2.0 document.
	SwaggerPets = `{
  "swagger": "2.0",
  "info": {"title": "Pets", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "responses": {"200": {"description": "A list of pets"}}
      }
    }
  }
}`
	// OpenAPIMissingTitle parses as OpenAPI 3.0 but declares no info.title.
	OpenAPIMissingTitle = `openapi: 3.0.3
info:
  version: "1.0.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
`
	// SwaggerEmptyPaths is Swagger 2.0 with an empty paths object.
	SwaggerEmptyPaths = `swagger: "2.0"
info:
  title: Empty
  version: "1.0.0"
paths: {}
`
	// NoDiscriminator is valid YAML with neither swagger nor openapi.
	NoDiscriminator = `info:
  title: Mystery
  version: "1.0.0"
paths: {}
`
	// MalformedJSON starts like JSON but does not close.
	MalformedJSON = `{"openapi": "3.0.3", "info": {"title": "Broken"`
	// MalformedYAML is not YAML.
	MalformedYAML = "openapi: 3.0.3\ninfo: [unclosed\n"
)

// OpenAPIDocument returns a minimal OpenAPI 3.0 document as a map, with a
// GET operation on each path.
func OpenAPIDocument(title string, paths ...string) map[string]any {
	items := make(map[string]any, len(paths))
	for _, p := range paths {
		items[p] = map[string]any{
			"get": map[string]any{
				"responses": map[string]any{"200": map[string]any{"description": "ok"}},
			},
		}
	}
	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": title, "version": "1.0.0"},
		"paths":   items,
	}
}

// SwaggerDocument returns a minimal Swagger 2.0 document as a map, with a
// GET operation on each path.
func SwaggerDocument(title string, paths ...string) map[string]any {
	doc := OpenAPIDocument(title, paths...)
	delete(doc, "openapi")
	doc["swagger"] = "2.0"
	return doc
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}

// WriteTree lays out files (slash-separated relative path to content) under a
// fresh temporary directory and returns the directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}
