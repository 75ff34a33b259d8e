package oaserrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationError(t *testing.T) {
	t.Run("unparsable message", func(t *testing.T) {
		cause := errors.New("yaml: line 3: mapping values are not allowed")
		err := &ClassificationError{Source: "api.yaml", Unparsable: true, Cause: cause}
		assert.Equal(t, "unparsable document in api.yaml: yaml: line 3: mapping values are not allowed", err.Error())
		assert.ErrorIs(t, err, ErrUnparsable)
		assert.NotErrorIs(t, err, ErrFamilyUnrecognized)
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("unrecognized family", func(t *testing.T) {
		err := &ClassificationError{}
		assert.Equal(t, "neither swagger nor openapi discriminator field present", err.Error())
		assert.ErrorIs(t, err, ErrFamilyUnrecognized)
		assert.NotErrorIs(t, err, ErrUnparsable)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("document: %w", &ClassificationError{Source: "inline", Unparsable: true})
		var target *ClassificationError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "inline", target.Source)
	})
}

func TestTitleError(t *testing.T) {
	tests := []struct {
		name     string
		err      *TitleError
		expected string
	}{
		{"minimal", &TitleError{}, "API title is missing. Please provide a title for the API."},
		{"with source", &TitleError{Source: "petstore.json"}, "API title is missing in petstore.json. Please provide a title for the API."},
		{"literal null", &TitleError{Value: "null"}, `API title is missing (value: "null"). Please provide a title for the API.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrTitleMissing)
			assert.Nil(t, tt.err.Unwrap())
		})
	}
}

func TestWrongFamilyError(t *testing.T) {
	err := &WrongFamilyError{Attempted: "openapi3", Message: "attribute openapi is missing"}
	assert.Equal(t, "wrong specification family: not a openapi3 document: attribute openapi is missing", err.Error())
	assert.ErrorIs(t, err, ErrWrongFamily)
	assert.NotErrorIs(t, err, ErrTitleMissing)
	assert.Equal(t, "wrong specification family", (&WrongFamilyError{}).Error())
}

func TestIOError(t *testing.T) {
	err := &IOError{Path: "/tmp/missing", Op: "read", Cause: fs.ErrNotExist}
	assert.Equal(t, "io failure: read /tmp/missing: file does not exist", err.Error())
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestConfigError(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		cause := errors.New("strconv failure")
		err := &ConfigError{Option: "level", Value: 7, Message: "must be 0, 1 or 2", Cause: cause}
		assert.Equal(t, "configuration error for level (value: 7): must be 0, 1 or 2: strconv failure", err.Error())
		assert.ErrorIs(t, err, ErrConfig)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("minimal", func(t *testing.T) {
		assert.Equal(t, "configuration error", (&ConfigError{}).Error())
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrUnparsable, ErrFamilyUnrecognized, ErrTitleMissing, ErrWrongFamily, ErrIO, ErrConfig}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
