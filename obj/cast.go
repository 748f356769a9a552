package obj

import (
	"github.com/kolkov/objmutex/internal/cell"
	"github.com/kolkov/objmutex/internal/handover"
	"github.com/kolkov/objmutex/lockable"
)

// As consumes src and returns a handle to the same cell with its view
// re-typed to U. Widening (U is an interface the stored value satisfies)
// and narrowing (U is the stored concrete type) go through the same
// runtime check.
//
// On success src is invalidated and the cell's reference count is
// unchanged: ownership transfers. On failure As reports ErrCast and src
// remains fully valid and untouched.
func As[U any, T any, M lockable.Lockable](src *Mutex[T, M]) (*Mutex[U, M], error) {
	handover.Lock()
	defer handover.Unlock()
	if src.c == nil {
		return nil, ErrInvalidHandle
	}
	if !viewable[U](src.c.Box()) {
		return nil, castError[U](src.c.Box())
	}
	dst := &Mutex[U, M]{c: src.c, mk: src.mk}
	src.c = nil
	return dst, nil
}

// CloneAs deep-copies src's value into a brand-new cell, like
// [Mutex.Clone], but types the resulting handle's view as U. src is not
// consumed. A failed view check reports ErrCast after the copy has been
// discarded; src is unaffected either way.
func CloneAs[U any, T any, M lockable.Lockable](src *Mutex[T, M]) (*Mutex[U, M], error) {
	c, mk := src.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().Lock()
	dup := copyBox(c.Box())
	c.Mu().Unlock()
	c.Release()
	if !viewable[U](dup) {
		return nil, castError[U](dup)
	}
	return &Mutex[U, M]{c: cell.New(mk(), dup), mk: mk}, nil
}

// SharedCloneAs returns a second handle to src's cell with its view
// re-typed to U, like [Mutex.SharedClone] combined with [As] but without
// consuming src. A failed view check reports ErrCast and leaves src and
// the cell's reference count untouched.
func SharedCloneAs[U any, T any, M lockable.Lockable](src *Mutex[T, M]) (*Mutex[U, M], error) {
	c, mk := src.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	if !viewable[U](c.Box()) {
		err := castError[U](c.Box())
		c.Release()
		return nil, err
	}
	return &Mutex[U, M]{c: c, mk: mk}, nil
}

// LockGetAs blocks until the primitive is acquired and returns an
// exclusive guard viewing the value as U. If the stored value does not
// satisfy U the lock is released before ErrCast is reported, so the
// failure path never leaks a held lock.
func LockGetAs[U any, T any, M lockable.Lockable](m *Mutex[T, M]) (*Guard[U, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().Lock()
	return lockedGuard[U](c)
}
