package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalRef(t *testing.T) {
	tests := []struct {
		ref   string
		local bool
	}{
		{"#/components/schemas/Pet", true},
		{"#/definitions/Pet", true},
		{"https://example.com/schemas/pet.json", false},
		{"./external.yaml#/Pet", false},
		{"external.yaml", false},
		{"#Pet", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.local, IsLocalRef(tt.ref))
		})
	}
}

func TestRefDocument(t *testing.T) {
	assert.Equal(t, "https://example.com/pet.json", RefDocument("https://example.com/pet.json#/Pet"))
	assert.Equal(t, "./external.yaml", RefDocument("./external.yaml#/Pet"))
	assert.Equal(t, "common.yaml", RefDocument("common.yaml"))
	assert.Equal(t, "", RefDocument("#/definitions/Pet"))
}

func TestToDefinitions(t *testing.T) {
	in := "bad data in #/components/schemas/Pet (see #/components/schemas/Tag)"
	assert.Equal(t, "bad data in #/definitions/Pet (see #/definitions/Tag)", ToDefinitions(in))
	assert.Equal(t, "no refs here", ToDefinitions("no refs here"))
}

func TestToDefinitionsPrefixOnly(t *testing.T) {
	assert.Equal(t, RefPrefixDefinitions+"Pet", ToDefinitions(RefPrefixSchemas+"Pet"))
}
