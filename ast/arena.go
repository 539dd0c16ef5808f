package ast

import "reflect"

// slabSize is the number of nodes of one type allocated per chunk.
const slabSize = 64

// Arena allocates syntax tree nodes in per-type slabs. Nodes are never freed
// individually: every node lives until Release drops the arena as a whole.
// An Arena is owned by a single parse and is not safe for concurrent use.
type Arena struct {
	slabs    map[reflect.Type]any
	count    int
	released bool
}

type slab[T any] struct {
	items []T
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{slabs: map[reflect.Type]any{}}
}

// New returns a pointer to a zeroed T allocated from the arena. It panics if
// the arena has been released.
func New[T any](a *Arena) *T {
	if a.released {
		panic("ast: allocation from a released arena")
	}
	key := reflect.TypeFor[T]()
	s, ok := a.slabs[key].(*slab[T])
	if !ok {
		s = &slab[T]{}
		a.slabs[key] = s
	}
	if len(s.items) == cap(s.items) {
		s.items = make([]T, 0, slabSize)
	}
	s.items = s.items[:len(s.items)+1]
	a.count++
	return &s.items[len(s.items)-1]
}

// Len returns the number of nodes allocated since the arena was created.
func (a *Arena) Len() int {
	return a.count
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

// Release drops every slab. Nodes allocated from the arena must not be used
// by the owner after this point.
func (a *Arena) Release() {
	a.slabs = nil
	a.count = 0
	a.released = true
}
