package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnparsable indicates text that is neither valid JSON nor valid YAML.
	ErrUnparsable = errors.New("unparsable document")

	// ErrFamilyUnrecognized indicates a document without a swagger or openapi discriminator.
	ErrFamilyUnrecognized = errors.New("neither swagger nor openapi discriminator field present")

	// ErrTitleMissing indicates a document whose info.title is absent or null.
	ErrTitleMissing = errors.New("title missing")

	// ErrWrongFamily indicates the resolver rejected the document as belonging to the other family.
	ErrWrongFamily = errors.New("wrong specification family")

	// ErrIO indicates a file or directory could not be read.
	ErrIO = errors.New("io failure")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ClassificationError is returned when raw text cannot be classified into a
// specification family.
type ClassificationError struct {
	// Source is the file path or "inline"
	Source string
	// Unparsable is true when the text is not JSON or YAML at all.
	// When false, the text parsed but carried no discriminator.
	Unparsable bool
	// Message provides additional context
	Message string
	// Cause is the underlying decoder error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ClassificationError) Error() string {
	msg := ErrFamilyUnrecognized.Error()
	if e.Unparsable {
		msg = ErrUnparsable.Error()
	}
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ClassificationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ClassificationError) Is(target error) bool {
	if e.Unparsable {
		return target == ErrUnparsable
	}
	return target == ErrFamilyUnrecognized
}

// TitleError is returned when a document has no usable info.title.
type TitleError struct {
	// Source is the file path or "inline"
	Source string
	// Value is the raw title value ("" when absent)
	Value string
}

// Error returns a human-readable error message.
func (e *TitleError) Error() string {
	msg := "API title is missing"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value: %q)", e.Value)
	}
	return msg + ". Please provide a title for the API."
}

// Unwrap returns nil as TitleError has no underlying cause.
func (e *TitleError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *TitleError) Is(target error) bool {
	return target == ErrTitleMissing
}

// WrongFamilyError is returned by a family validator whose resolver reports
// the discriminator of its own family as missing.
type WrongFamilyError struct {
	// Attempted is the family the validator was asked to check ("swagger2", "openapi3")
	Attempted string
	// Message is the resolver message that signalled the mismatch
	Message string
}

// Error returns a human-readable error message.
func (e *WrongFamilyError) Error() string {
	msg := ErrWrongFamily.Error()
	if e.Attempted != "" {
		msg += ": not a " + e.Attempted + " document"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as WrongFamilyError has no underlying cause.
func (e *WrongFamilyError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *WrongFamilyError) Is(target error) bool {
	return target == ErrWrongFamily
}

// IOError represents an unreadable input.
type IOError struct {
	// Path is the file or directory that failed
	Path string
	// Op is the failed operation: "read", "stat" or "readdir"
	Op string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := ErrIO.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
