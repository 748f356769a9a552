package obj

import (
	"github.com/kolkov/objmutex/internal/cell"
	"github.com/kolkov/objmutex/lockable"
)

// RGuard is the shared (reader) accessor. Any number of RGuards on the
// same cell may be held concurrently; an exclusive [Guard] excludes them
// all. An RGuard exposes the value read-only.
//
// RGuards follow the same move and release rules as Guard: released
// exactly once, moves transfer the hold, unlocking an empty guard is a
// no-op.
type RGuard[T any, M lockable.RWLockable] struct {
	c   *cell.Cell[M]
	ref *T
}

// lockedRGuard wraps an already read-locked, retained cell. On a cast
// failure the read lock is released before the cell reference.
func lockedRGuard[U any, M lockable.RWLockable](c *cell.Cell[M]) (*RGuard[U, M], error) {
	ref, ok := resolve[U](c.Box())
	if !ok {
		err := castError[U](c.Box())
		c.Mu().RUnlock()
		c.Release()
		return nil, err
	}
	return &RGuard[U, M]{c: c, ref: ref}, nil
}

// Value returns a copy of the guarded value as seen through this view.
// It fails with ErrInvalidGuard if the guard does not own its read lock.
func (g *RGuard[T, M]) Value() (T, error) {
	if g == nil || g.c == nil {
		var zero T
		return zero, ErrInvalidGuard
	}
	return *g.ref, nil
}

// OwnsLock reports whether this guard currently holds its read lock.
func (g *RGuard[T, M]) OwnsLock() bool {
	return g != nil && g.c != nil
}

// Unlock releases the read lock and then the guard's cell reference, in
// that order, and empties the guard. Unlocking an empty guard is a
// no-op.
func (g *RGuard[T, M]) Unlock() {
	if g == nil || g.c == nil {
		return
	}
	c := g.c
	g.c, g.ref = nil, nil
	c.Mu().RUnlock()
	c.Release()
}

// Move transfers the read hold and cell reference to a new guard and
// empties the receiver.
func (g *RGuard[T, M]) Move() *RGuard[T, M] {
	ng := &RGuard[T, M]{c: g.c, ref: g.ref}
	g.c, g.ref = nil, nil
	return ng
}

// Adopt releases whatever the receiver holds, then takes over src's read
// hold and cell reference, emptying src.
func (g *RGuard[T, M]) Adopt(src *RGuard[T, M]) {
	if g == src {
		return
	}
	g.Unlock()
	g.c, g.ref = src.c, src.ref
	src.c, src.ref = nil, nil
}

// RLockGet blocks until a shared (read) hold on the primitive is
// acquired and returns the reader guard. It requires a reader/writer
// primitive.
func RLockGet[T any, M lockable.RWLockable](m *Mutex[T, M]) (*RGuard[T, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().RLock()
	return lockedRGuard[T](c)
}

// TryRLockGet attempts a non-blocking shared acquisition. ok reports
// whether the read hold was obtained.
func TryRLockGet[T any, M lockable.RWLockable](m *Mutex[T, M]) (g *RGuard[T, M], ok bool, err error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, false, ErrInvalidHandle
	}
	if !c.Mu().TryRLock() {
		c.Release()
		return nil, false, nil
	}
	g, err = lockedRGuard[T](c)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// RLockGetAs blocks until a shared hold is acquired and returns a reader
// guard viewing the value as U. A failed view check releases the read
// hold before reporting ErrCast.
func RLockGetAs[U any, T any, M lockable.RWLockable](m *Mutex[T, M]) (*RGuard[U, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	c.Mu().RLock()
	return lockedRGuard[U](c)
}
