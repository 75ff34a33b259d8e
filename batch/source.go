package batch

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasguard/internal/fileutil"
	"github.com/erraggy/oasguard/oaserrors"
)

// LocationPrefix marks a target that names a file or directory.
const LocationPrefix = "location:"

// InlineName is the source name of a document passed as text.
const InlineName = "inline"

// Source is one document to process. File contents are read on demand.
type Source struct {
	// Name is the file path, or InlineName
	Name string
	// Path is the file path; empty for inline documents
	Path string

	data []byte
}

// InlineSource returns a source for document text.
func InlineSource(text string) Source {
	return Source{Name: InlineName, data: []byte(text)}
}

// FileSource returns a source for a document file.
func FileSource(path string) Source {
	return Source{Name: path, Path: path}
}

// Inline reports whether the source is document text rather than a file.
func (s Source) Inline() bool {
	return s.Path == ""
}

// Read returns the document text.
func (s Source) Read() ([]byte, error) {
	if s.Inline() {
		return s.data, nil
	}
	data, err := fileutil.ReadDocument(s.Path)
	if err != nil {
		return nil, &oaserrors.IOError{Path: s.Path, Op: "read", Cause: err}
	}
	return data, nil
}

// SourceOption configures Sources.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	include []string
}

// WithInclude limits files found inside directories to those whose base name
// matches one of the glob patterns. A file named directly by the target is
// always included.
func WithInclude(patterns ...string) SourceOption {
	return func(c *sourceConfig) {
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				c.include = append(c.include, p)
			}
		}
	}
}

func (c *sourceConfig) included(path string) bool {
	if len(c.include) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range c.include {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Sources yields the documents of target in processing order. Unreadable
// files and directories are yielded with an *oaserrors.IOError and the walk
// continues with the remaining entries.
func Sources(target string, opts ...SourceOption) iter.Seq2[Source, error] {
	cfg := &sourceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return func(yield func(Source, error) bool) {
		path, ok := strings.CutPrefix(target, LocationPrefix)
		if !ok {
			yield(InlineSource(target), nil)
			return
		}
		cfg.walk(path, true, yield)
	}
}

// walk visits path depth-first and reports whether iteration should go on.
func (c *sourceConfig) walk(path string, top bool, yield func(Source, error) bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		return yield(FileSource(path), &oaserrors.IOError{Path: path, Op: "stat", Cause: err})
	}

	switch {
	case info.IsDir():
		entries, err := os.ReadDir(path)
		if err != nil {
			return yield(FileSource(path), &oaserrors.IOError{Path: path, Op: "readdir", Cause: err})
		}
		for _, entry := range entries {
			if !c.walk(filepath.Join(path, entry.Name()), false, yield) {
				return false
			}
		}
		return true
	case info.Mode().IsRegular():
		if !top && !c.included(path) {
			return true
		}
		return yield(FileSource(path), nil)
	default:
		return yield(FileSource(path), &oaserrors.IOError{
			Path:  path,
			Op:    "stat",
			Cause: errors.New("not a regular file or directory"),
		})
	}
}
