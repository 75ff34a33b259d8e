// Package fileutil reads API documents from disk and writes report files.
package fileutil

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// OwnerReadWrite is the file permission mode for report output files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// MaxDocumentSize is the largest document ReadDocument accepts.
const MaxDocumentSize = 64 << 20

// ReadDocument reads a document file as UTF-8 text. A UTF-8 byte order mark
// is dropped and UTF-16 text with a byte order mark is converted.
func ReadDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("%s: document is %d bytes, larger than the %d byte limit", path, info.Size(), MaxDocumentSize)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode converts raw document bytes to UTF-8 using the byte order mark, if any.
func Decode(raw []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteReport writes data to path with OwnerReadWrite permissions.
func WriteReport(path string, data []byte) error {
	return os.WriteFile(path, data, OwnerReadWrite)
}
