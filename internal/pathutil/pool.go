// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "sync"

const (
	defaultDepth = 12  // request/response schemas nest deeper than paths
	maxDepth     = 128 // Don't pool pathological documents
)

var pointerPool = sync.Pool{
	New: func() any {
		return &Pointer{segments: make([]string, 0, defaultDepth)}
	},
}

// Get retrieves a Pointer from the pool, reset and ready to use.
func Get() *Pointer {
	p := pointerPool.Get().(*Pointer)
	p.Reset()
	return p
}

// Put returns a Pointer to the pool if not oversized.
func Put(p *Pointer) {
	if p == nil || cap(p.segments) > maxDepth {
		return
	}
	pointerPool.Put(p)
}
