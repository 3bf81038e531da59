// Package pool provides a generational arena for values addressed by handles.
//
// A [Pool] owns its values exclusively. Callers hold [Handle] values, which
// are an index into the pool's slot table plus the generation the slot had
// when the value was spawned. Freeing a value bumps the slot generation, so
// every handle issued before the free stops resolving, even after the slot is
// reused for a new value.
//
// Values are stored behind individually allocated pointers, so a pointer
// returned by [Pool.Borrow] stays valid while the pool grows. It must not be
// retained past a [Pool.Free] of the same handle.
//
// Pool is not safe for concurrent use without external synchronization.
package pool

import (
	"fmt"
	"iter"
)

// Handle is a generation-checked reference to a value stored in a Pool.
//
// The zero Handle is [None]-equivalent: generation 0 is never issued, so a
// zero handle never resolves.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// None returns the sentinel handle that refers to nothing.
func None[T any]() Handle[T] {
	return Handle[T]{}
}

// NewHandle builds a handle from raw parts. It is intended for tests and
// serialization; a handle built this way only resolves if the parts match a
// live slot.
func NewHandle[T any](index, generation uint32) Handle[T] {
	return Handle[T]{index: index, generation: generation}
}

// Index returns the slot index of the handle.
func (h Handle[T]) Index() uint32 { return h.index }

// Generation returns the slot generation the handle was issued with.
func (h Handle[T]) Generation() uint32 { return h.generation }

// IsNone reports whether h is the sentinel handle.
func (h Handle[T]) IsNone() bool { return h.generation == 0 }

// IsSome reports whether h is not the sentinel handle. It does not check
// whether the handle is still live; use [Pool.IsValid] for that.
func (h Handle[T]) IsSome() bool { return h.generation != 0 }

func (h Handle[T]) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type slot[T any] struct {
	generation uint32
	value      *T
}

// Pool is a generational arena of T values.
type Pool[T any] struct {
	slots    []slot[T]
	freeList []uint32
	live     int
}

// New creates an empty pool with room for capacity values before growing.
func New[T any](capacity int) *Pool[T] {
	return &Pool[T]{slots: make([]slot[T], 0, capacity)}
}

// Spawn stores value in the pool and returns its handle.
// Freed slots are reused before the slot table grows.
func (p *Pool[T]) Spawn(value T) Handle[T] {
	v := new(T)
	*v = value
	p.live++
	if n := len(p.freeList); n > 0 {
		index := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		s := &p.slots[index]
		s.value = v
		return Handle[T]{index: index, generation: s.generation}
	}
	p.slots = append(p.slots, slot[T]{generation: 1, value: v})
	return Handle[T]{index: uint32(len(p.slots) - 1), generation: 1}
}

// IsValid reports whether h refers to a live value.
func (p *Pool[T]) IsValid(h Handle[T]) bool {
	if h.generation == 0 || int(h.index) >= len(p.slots) {
		return false
	}
	s := p.slots[h.index]
	return s.value != nil && s.generation == h.generation
}

// Borrow returns the value referenced by h. The second result is false for
// the sentinel handle, an out-of-range index, a freed slot, or a generation
// mismatch.
func (p *Pool[T]) Borrow(h Handle[T]) (*T, bool) {
	if !p.IsValid(h) {
		return nil, false
	}
	return p.slots[h.index].value, true
}

// Free removes the value referenced by h and returns it.
// The slot generation is bumped so h and every copy of it become stale.
func (p *Pool[T]) Free(h Handle[T]) (T, bool) {
	var zero T
	if !p.IsValid(h) {
		return zero, false
	}
	s := &p.slots[h.index]
	v := *s.value
	s.value = nil
	s.generation++
	if s.generation == 0 {
		// Wrapped; skip the sentinel generation.
		s.generation = 1
	}
	p.freeList = append(p.freeList, h.index)
	p.live--
	return v, true
}

// HandleAt returns the live handle stored at index, if any.
func (p *Pool[T]) HandleAt(index uint32) (Handle[T], bool) {
	if int(index) >= len(p.slots) || p.slots[index].value == nil {
		return Handle[T]{}, false
	}
	return Handle[T]{index: index, generation: p.slots[index].generation}, true
}

// Len returns the number of live values.
func (p *Pool[T]) Len() int { return p.live }

// Capacity returns the number of slots, live or free.
func (p *Pool[T]) Capacity() int { return len(p.slots) }

// All iterates over live values in slot order.
func (p *Pool[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for i := range p.slots {
			s := p.slots[i]
			if s.value == nil {
				continue
			}
			if !yield(Handle[T]{index: uint32(i), generation: s.generation}, s.value) {
				return
			}
		}
	}
}

// Clear frees every value. Generations are bumped, so no handle issued
// before Clear resolves afterwards.
func (p *Pool[T]) Clear() {
	p.freeList = p.freeList[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		s := &p.slots[i]
		if s.value != nil {
			s.value = nil
			s.generation++
			if s.generation == 0 {
				s.generation = 1
			}
		}
		p.freeList = append(p.freeList, uint32(i))
	}
	p.live = 0
}
