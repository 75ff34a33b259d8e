// Package oaserrors provides structured error types for the oasguard library.
//
// Import path: github.com/erraggy/oasguard/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish the failure categories of a document check and
// decide whether the batch can proceed.
//
// # Error Types
//
//   - [ClassificationError]: text that is not JSON/YAML, or carries no spec discriminator
//   - [TitleError]: a document without a usable info.title
//   - [WrongFamilyError]: a resolver reporting that the document belongs to the other family
//   - [IOError]: an unreadable file or directory
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrUnparsable]: matches [ClassificationError] for unparsable text
//   - [ErrFamilyUnrecognized]: matches [ClassificationError] without a discriminator
//   - [ErrTitleMissing]: matches any [TitleError]
//   - [ErrWrongFamily]: matches any [WrongFamilyError]
//   - [ErrIO]: matches any [IOError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Example
//
//	doc, err := document.Classify(data)
//	if errors.Is(err, oaserrors.ErrFamilyUnrecognized) {
//	    // neither swagger nor openapi key present
//	}
//	var ioErr *oaserrors.IOError
//	if errors.As(err, &ioErr) {
//	    log.Printf("skipping %s", ioErr.Path)
//	}
package oaserrors
