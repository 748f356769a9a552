package obj

import (
	"sync"

	"github.com/kolkov/objmutex/internal/cell"
	"github.com/kolkov/objmutex/internal/handover"
	"github.com/kolkov/objmutex/lockable"
)

// Mutex is a handle to a cell holding one value of view type T and one
// exclusion primitive of type M. The value is reachable only through
// guards returned by the acquisition operations.
//
// A Mutex must not be copied by assignment; use Clone for an independent
// duplicate or SharedClone for an alias of the same cell. The zero Mutex
// is invalid.
type Mutex[T any, M lockable.Lockable] struct {
	c *cell.Cell[M]

	// mk mints a fresh primitive for Clone. Set at construction and
	// carried across moves, casts and clones.
	mk func() M
}

// New wraps v behind a *sync.Mutex.
//
// The cell stores v's dynamic value, so wrapping an interface-typed v
// keeps a later narrowing to the concrete type available. New panics if v
// is a nil interface value.
func New[T any](v T) *Mutex[T, *sync.Mutex] {
	return NewWith[T](func() *sync.Mutex { return new(sync.Mutex) }, v)
}

// NewZero wraps the zero value of T behind a *sync.Mutex. The zero value
// is boxed like any other, so a default-constructed wrapper widens and
// narrows exactly as one built by New. Like New it panics when the zero
// value is a nil interface, so T must be a concrete type.
func NewZero[T any]() *Mutex[T, *sync.Mutex] {
	var v T
	return New(v)
}

// NewRW wraps v behind a *sync.RWMutex, enabling the shared-reader
// operations.
func NewRW[T any](v T) *Mutex[T, *sync.RWMutex] {
	return NewWith[T](func() *sync.RWMutex { return new(sync.RWMutex) }, v)
}

// NewTimed wraps v behind a lockable.TimedMutex, enabling the timed and
// context-aware operations.
func NewTimed[T any](v T) *Mutex[T, *lockable.TimedMutex] {
	return NewWith[T](func() *lockable.TimedMutex { return new(lockable.TimedMutex) }, v)
}

// NewTimedRW wraps v behind a lockable.TimedRWMutex, enabling every
// optional operation.
func NewTimedRW[T any](v T) *Mutex[T, *lockable.TimedRWMutex] {
	return NewWith[T](func() *lockable.TimedRWMutex { return new(lockable.TimedRWMutex) }, v)
}

// NewWith wraps v behind a primitive minted by mk. The factory is also
// used by Clone to give duplicates their own primitive; it must return a
// fresh, unlocked instance on every call.
func NewWith[T any, M lockable.Lockable](mk func() M, v T) *Mutex[T, M] {
	if mk == nil {
		panic("objmutex: NewWith requires a primitive factory")
	}
	return &Mutex[T, M]{c: cell.New(mk(), boxValue(v)), mk: mk}
}

// snapshot retains and returns the handle's cell and factory under the
// handover lock, or nil if the handle is invalid. The caller owns the
// returned reference.
func (m *Mutex[T, M]) snapshot() (*cell.Cell[M], func() M) {
	handover.Lock()
	defer handover.Unlock()
	if m.c == nil {
		return nil, nil
	}
	return m.c.Retain(), m.mk
}

// Valid reports whether the handle references a cell. It synchronizes
// with concurrent moves through the same ordering lock they use.
func (m *Mutex[T, M]) Valid() bool {
	handover.Lock()
	defer handover.Unlock()
	return m.c != nil
}

// MoveFrom releases this handle's cell reference, adopts src's, and
// invalidates src. Moving a handle from itself is a no-op.
//
// The whole exchange runs inside the process-wide handover lock, so two
// goroutines cross-moving the same pair of handles cannot deadlock or
// race; the cost is that all moves serialize.
func (m *Mutex[T, M]) MoveFrom(src *Mutex[T, M]) {
	if m == src {
		return
	}
	handover.Lock()
	defer handover.Unlock()
	if m.c != nil {
		m.c.Release()
	}
	m.c, m.mk = src.c, src.mk
	src.c = nil
}

// Drop releases the handle's cell reference and invalidates the handle.
// Dropping an invalid handle is a no-op.
func (m *Mutex[T, M]) Drop() {
	handover.Lock()
	defer handover.Unlock()
	if m.c != nil {
		m.c.Release()
		m.c = nil
	}
}

// LockGet blocks until the primitive is acquired and returns the
// exclusive guard exposing the value as T.
func (m *Mutex[T, M]) LockGet() (*Guard[T, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().Lock()
	return lockedGuard[T](c)
}

// TryLockGet attempts a non-blocking acquisition. ok reports whether the
// lock was obtained; when it is false with a nil error the primitive was
// simply contended.
func (m *Mutex[T, M]) TryLockGet() (g *Guard[T, M], ok bool, err error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, false, ErrInvalidHandle
	}
	if !c.Mu().TryLock() {
		c.Release()
		return nil, false, nil
	}
	g, err = lockedGuard[T](c)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// IsLocked probes the primitive with a try-acquire that is immediately
// released on success.
//
// This is diagnostic support only: the answer may be stale the instant it
// is returned, and it must not be used to make locking decisions. With a
// reentrant primitive the probe re-enters, so a cell locked by the
// calling goroutine reports false.
func (m *Mutex[T, M]) IsLocked() (bool, error) {
	c, _ := m.snapshot()
	if c == nil {
		return false, ErrInvalidHandle
	}
	defer c.Release()
	if c.Mu().TryLock() {
		c.Mu().Unlock()
		return false, nil
	}
	return true, nil
}

// Clone deep-copies the value into a brand-new cell with a fresh
// primitive from the handle's factory. The result shares nothing with
// the source: locking one never blocks the other.
//
// The copy runs under the source's lock. The stored concrete type is
// preserved, so a clone narrows exactly like its source. Values may
// override the reflection-based copy by implementing [Cloner].
func (m *Mutex[T, M]) Clone() (*Mutex[T, M], error) {
	c, mk := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().Lock()
	dup := copyBox(c.Box())
	c.Mu().Unlock()
	c.Release()
	if !viewable[T](dup) {
		return nil, castError[T](dup)
	}
	return &Mutex[T, M]{c: cell.New(mk(), dup), mk: mk}, nil
}

// SharedClone returns a second handle to the same cell. The two handles
// contend for the same primitive, and a mutation through one is visible
// through the other.
func (m *Mutex[T, M]) SharedClone() (*Mutex[T, M], error) {
	c, mk := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	return &Mutex[T, M]{c: c, mk: mk}, nil
}

// NativeHandle exposes the cell's primitive, mirroring native_handle on
// the classic mutex wrappers. Its intended use is coupling a sync.Cond to
// the same primitive a guard holds:
//
//	h, _ := m.NativeHandle()
//	cond := sync.NewCond(h)
//
// Locking the returned primitive directly bypasses none of the value
// protection (the value is still only reachable through guards), but the
// caller must keep a handle or guard alive while using it.
func (m *Mutex[T, M]) NativeHandle() (M, error) {
	handover.Lock()
	defer handover.Unlock()
	if m.c == nil {
		var zero M
		return zero, ErrInvalidHandle
	}
	return m.c.Mu(), nil
}
