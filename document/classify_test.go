package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/oaserrors"
)

func TestClassifyFamily(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		family   Family
		encoding Encoding
		version  string
		wantErr  error
	}{
		{
			name:     "openapi 3.0 yaml",
			input:    "openapi: 3.0.3\ninfo:\n  title: Pets\n",
			family:   FamilyOpenAPI3,
			encoding: EncodingYAML,
			version:  "3.0.3",
		},
		{
			name:     "openapi 3.1 json",
			input:    `{"openapi": "3.1.0", "info": {"title": "Pets"}}`,
			family:   FamilyOpenAPI3,
			encoding: EncodingJSON,
			version:  "3.1.0",
		},
		{
			name:     "swagger 2.0 yaml",
			input:    "swagger: '2.0'\ninfo:\n  title: Pets\n",
			family:   FamilySwagger2,
			encoding: EncodingYAML,
			version:  "2.0",
		},
		{
			name:     "swagger json with leading whitespace",
			input:    "\n\t  {\"swagger\": \"2.0\"}",
			family:   FamilySwagger2,
			encoding: EncodingJSON,
			version:  "2.0",
		},
		{
			name:     "openapi 2.x with swagger key falls through to swagger",
			input:    "openapi: 2.0\nswagger: '2.0'\n",
			family:   FamilySwagger2,
			encoding: EncodingYAML,
			version:  "2.0",
		},
		{
			name:     "openapi wins over swagger",
			input:    "swagger: '2.0'\nopenapi: 3.0.0\n",
			family:   FamilyOpenAPI3,
			encoding: EncodingYAML,
			version:  "3.0.0",
		},
		{
			name:     "openapi float value",
			input:    "openapi: 3.0\n",
			family:   FamilyOpenAPI3,
			encoding: EncodingYAML,
			version:  "3.0",
		},
		{
			name:     "no discriminator",
			input:    "info:\n  title: Pets\n",
			family:   FamilyUnknown,
			encoding: EncodingYAML,
			wantErr:  oaserrors.ErrFamilyUnrecognized,
		},
		{
			name:     "openapi 4 is not recognized",
			input:    `{"openapi": "4.0.0"}`,
			family:   FamilyUnknown,
			encoding: EncodingJSON,
			wantErr:  oaserrors.ErrFamilyUnrecognized,
		},
		{
			name:     "malformed json",
			input:    `{"openapi": "3.0.0",`,
			family:   FamilyUnknown,
			encoding: EncodingJSON,
			wantErr:  oaserrors.ErrUnparsable,
		},
		{
			name:     "json with trailing garbage",
			input:    `{"openapi": "3.0.0"} trailing`,
			family:   FamilyUnknown,
			encoding: EncodingJSON,
			wantErr:  oaserrors.ErrUnparsable,
		},
		{
			name:     "malformed yaml",
			input:    "openapi: 3.0.0\ninfo: [unclosed\n",
			family:   FamilyUnknown,
			encoding: EncodingYAML,
			wantErr:  oaserrors.ErrUnparsable,
		},
		{
			name:     "scalar root",
			input:    "just some text",
			family:   FamilyUnknown,
			encoding: EncodingYAML,
			wantErr:  oaserrors.ErrUnparsable,
		},
		{
			name:     "empty input",
			input:    "   \n",
			family:   FamilyUnknown,
			encoding: EncodingYAML,
			wantErr:  oaserrors.ErrUnparsable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Classify([]byte(tt.input))
			require.NotNil(t, doc)
			assert.Equal(t, tt.family, doc.Family())
			assert.Equal(t, tt.encoding, doc.Encoding())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var classErr *oaserrors.ClassificationError
				assert.ErrorAs(t, err, &classErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, doc.Version())
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	input := []byte("swagger: '2.0'\ninfo:\n  title: Pets\npaths: {}\n")
	first, err := Classify(input)
	require.NoError(t, err)
	for range 5 {
		again, err := Classify(input)
		require.NoError(t, err)
		assert.Equal(t, first.Family(), again.Family())
		assert.Equal(t, first.Version(), again.Version())
	}
}

func TestClassifyStripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"openapi":"3.0.0","info":{"title":"T"}}`)...)
	doc, err := Classify(input)
	require.NoError(t, err)
	assert.Equal(t, EncodingJSON, doc.Encoding())
	assert.Equal(t, byte('{'), doc.Raw()[0])
}

func TestClassifyOptions(t *testing.T) {
	doc, err := Classify([]byte("openapi: 3.0.0\n"), WithName("api.yaml"), WithLocation("/specs/api.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "api.yaml", doc.Name())
	assert.Equal(t, "/specs/api.yaml", doc.Location())

	doc, err = Classify([]byte("openapi: 3.0.0\n"))
	require.NoError(t, err)
	assert.Equal(t, "inline", doc.Name())
	assert.Empty(t, doc.Location())

	doc, err = Classify([]byte("openapi: 3.0.0\n"), WithLocation(""))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		title string
		ok    bool
	}{
		{"present", "openapi: 3.0.0\ninfo:\n  title: Pet Store\n", "Pet Store", true},
		{"absent info", "openapi: 3.0.0\n", "", false},
		{"absent title", "openapi: 3.0.0\ninfo:\n  version: 1.0.0\n", "", false},
		{"yaml null", "openapi: 3.0.0\ninfo:\n  title: ~\n", "", false},
		{"json null", `{"openapi":"3.0.0","info":{"title":null}}`, "", false},
		{"literal null string", `{"openapi":"3.0.0","info":{"title":"null"}}`, "null", false},
		{"blank", "openapi: 3.0.0\ninfo:\n  title: '  '\n", "  ", false},
		{"non-scalar", "openapi: 3.0.0\ninfo:\n  title: [a]\n", "", false},
		{"numeric title is a string", "swagger: '2.0'\ninfo:\n  title: 42\n", "42", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Classify([]byte(tt.input))
			require.NoError(t, err)
			title, ok := doc.Title()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, title)

			if tt.ok {
				assert.NoError(t, CheckTitle(doc))
			} else {
				assert.ErrorIs(t, CheckTitle(doc), oaserrors.ErrTitleMissing)
			}
		})
	}
}

func TestPathKeysKeepDocumentOrder(t *testing.T) {
	input := "openapi: 3.0.0\npaths:\n  /zebra: {}\n  /apple/: {}\n  x-internal: true\n  /apple: {}\n"
	doc, err := Classify([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"/zebra", "/apple/", "/apple"}, doc.PathKeys())

	doc, err = Classify([]byte("openapi: 3.0.0\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.PathKeys())
}

func TestJSONTreeKeepsTypes(t *testing.T) {
	doc, err := Classify([]byte("{\n\t\"openapi\": \"3.0.0\",\n\t\"n\": 1, \"f\": 2.5, \"b\": false, \"z\": null, \"a\": [1, \"x\"]\n}"))
	require.NoError(t, err)
	assert.Equal(t, "!!int", doc.Lookup("n").ShortTag())
	assert.Equal(t, "!!float", doc.Lookup("f").ShortTag())
	assert.Equal(t, "!!bool", doc.Lookup("b").ShortTag())
	assert.True(t, IsNull(doc.Lookup("z")))
	assert.Len(t, doc.Lookup("a").Content, 2)
	assert.Nil(t, doc.Lookup("missing"))
}

func TestFamilyHelpers(t *testing.T) {
	assert.Equal(t, FamilyOpenAPI3, FamilySwagger2.Other())
	assert.Equal(t, FamilySwagger2, FamilyOpenAPI3.Other())
	assert.Equal(t, FamilyUnknown, FamilyUnknown.Other())
	assert.Equal(t, "swagger", FamilySwagger2.Discriminator())
	assert.Equal(t, "openapi", FamilyOpenAPI3.Discriminator())
	assert.Equal(t, "swagger2", FamilySwagger2.String())
	assert.Equal(t, "unknown", FamilyUnknown.String())
	assert.Equal(t, "json", EncodingJSON.String())
	assert.Equal(t, "yaml", EncodingYAML.String())
}
