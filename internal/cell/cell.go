// Package cell implements the shared allocation behind every wrapper
// handle and guard: one exclusion primitive and one value, kept alive
// jointly by an explicit reference count.
//
// The value is boxed as a pointer to its concrete type (for example a
// *Circle stored in an any). The box is written exactly once, at
// construction, and never reassigned afterwards, so reading the box
// itself requires no lock; reading or mutating the pointed-to value does.
// That single invariant is what lets view-compatibility checks inspect
// the box's type without acquiring the primitive; only lock-holding
// accessors dereference it.
//
// Reference counting is explicit rather than left to the garbage
// collector so that ownership transitions stay auditable: every holder
// (handle or guard) owns exactly one reference, Retain and Release panic
// on misuse, and a guard must release the primitive strictly before it
// releases its cell reference.
package cell

import (
	"sync/atomic"

	"github.com/kolkov/objmutex/lockable"
)

// Cell co-locates an exclusion primitive of type M with one boxed value.
// It is created with one reference, owned by the creating handle.
type Cell[M lockable.Lockable] struct {
	mu   M
	box  any // pointer to the concrete value; immutable after New
	refs atomic.Int64
}

// New allocates a cell holding mu and the given value box. The box must
// be a non-nil pointer to the concrete value.
func New[M lockable.Lockable](mu M, box any) *Cell[M] {
	c := &Cell[M]{mu: mu, box: box}
	c.refs.Store(1)
	return c
}

// Mu returns the cell's exclusion primitive.
func (c *Cell[M]) Mu() M {
	return c.mu
}

// Box returns the boxed value pointer. The box is immutable, so Box may
// be called without holding the primitive; dereferencing the returned
// pointer may not.
func (c *Cell[M]) Box() any {
	return c.box
}

// Retain adds one reference and returns the cell for call chaining.
//
// It panics if the count had already dropped to zero: a released cell
// must never come back to life.
func (c *Cell[M]) Retain() *Cell[M] {
	if c.refs.Add(1) <= 1 {
		panic("cell: retain of a fully released cell")
	}
	return c
}

// Release drops one reference.
//
// The caller must not touch the cell afterwards, and if it held the
// primitive it must have unlocked it before releasing. Release panics on
// over-release.
func (c *Cell[M]) Release() {
	if c.refs.Add(-1) < 0 {
		panic("cell: release without matching retain")
	}
}

// Refs reports the current reference count. Diagnostic only: the value
// may be stale as soon as it is read.
func (c *Cell[M]) Refs() int64 {
	return c.refs.Load()
}
