package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	p := &Pointer{}
	assert.Equal(t, "#", p.String())

	p.Push("paths")
	p.Push("/pets/{id}")
	p.Push("get")
	assert.Equal(t, "#/paths/~1pets~1{id}/get", p.String())
	assert.Equal(t, 3, p.Depth())

	p.Pop()
	p.Push("parameters")
	p.PushIndex(2)
	assert.Equal(t, "#/paths/~1pets~1{id}/parameters/2", p.String())

	p.Reset()
	assert.Equal(t, "#", p.String())
	p.Pop() // no-op on empty
	assert.Equal(t, 0, p.Depth())
}

func TestPointerEscapesTilde(t *testing.T) {
	p := &Pointer{}
	p.Push("a~b/c")
	assert.Equal(t, "#/a~0b~1c", p.String())
}

func TestPool(t *testing.T) {
	p := Get()
	p.Push("x")
	Put(p)

	q := Get()
	defer Put(q)
	assert.Equal(t, 0, q.Depth())
	Put(nil)
}
