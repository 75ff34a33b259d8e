// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strconv"
	"strings"
)

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer builds a JSON Pointer (RFC 6901) in fragment form, e.g. "#/paths/~1pets/get".
// Segments are escaped on Push so String only concatenates.
type Pointer struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds an object key to the pointer.
func (p *Pointer) Push(key string) {
	seg := tokenEscaper.Replace(key)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// PushIndex adds an array index.
func (p *Pointer) PushIndex(i int) {
	seg := strconv.Itoa(i)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// Pop removes the last segment.
func (p *Pointer) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Depth returns the number of segments.
func (p *Pointer) Depth() int {
	return len(p.segments)
}

// Reset clears the pointer for reuse.
func (p *Pointer) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the pointer. The root renders as "#".
func (p *Pointer) String() string {
	var b strings.Builder
	b.Grow(p.length + 1)
	b.WriteByte('#')
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
