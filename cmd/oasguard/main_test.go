package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasguard/cmd/oasguard/commands"
	"github.com/erraggy/oasguard/internal/testutil"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"valiate", "validate"},
		{"validat", "validate"},
		{"vlidate", "validate"},
		{"versio", "version"},
		{"vresion", "version"},
		{"hep", "help"},
		{"hlep", "help"},
		{"mpc", "mcp"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validatation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("mcp", "mcp"))
	assert.Equal(t, 3, editDistance("", "mcp"))
	assert.Equal(t, 1, editDistance("help", "hel"))
	assert.Equal(t, 2, editDistance("mpc", "mcp"))
}

func runCapture(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, commands.Streams{Stdout: &stdout, Stderr: &stderr})
	return code, stdout.String(), stderr.String()
}

func TestRun_Dispatch(t *testing.T) {
	t.Run("no args", func(t *testing.T) {
		code, stdout, _ := runCapture()
		assert.Equal(t, 1, code)
		assert.Contains(t, stdout, "Usage:")
	})

	t.Run("version", func(t *testing.T) {
		code, stdout, _ := runCapture("version")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "oasguard ")
		assert.Contains(t, stdout, "Go Version:")
	})

	t.Run("help", func(t *testing.T) {
		code, stdout, _ := runCapture("--help")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "Commands:")
	})

	t.Run("unknown command with suggestion", func(t *testing.T) {
		code, _, stderr := runCapture("valiate")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Unknown command: valiate")
		assert.Contains(t, stderr, "Did you mean: validate?")
	})

	t.Run("invalid arguments", func(t *testing.T) {
		code, _, stderr := runCapture("validate", "-format", "xml", testutil.OpenAPIPets)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error: ")
	})
}

func TestRun_LegacyForm(t *testing.T) {
	code, stdout, _ := runCapture(testutil.OpenAPIPets, "0")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `Parsing Started openApiName "Pets"`)
	assert.Contains(t, stdout, "Swagger file is valid OpenAPI 3 definition")
	assert.Contains(t, stdout, "Summary --- Total Files Processed: 1.")
}

func TestRun_LegacyBarePath(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"pets.yaml": testutil.OpenAPIPets})

	code, stdout, _ := runCapture(dir, "0")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Swagger file is valid OpenAPI 3 definition")
	assert.NotContains(t, stdout, "900758")
}

func TestRun_FailedDocumentExitsNonZero(t *testing.T) {
	code, stdout, stderr := runCapture("validate", "-no-color", testutil.OpenAPIMissingTitle)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Invalid OAS definition provided.")
	assert.NotContains(t, stderr, "Error: ")
}
