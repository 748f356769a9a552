package obj

import (
	"github.com/kolkov/objmutex/internal/cell"
	"github.com/kolkov/objmutex/lockable"
)

// Guard is the exclusive accessor. While a Guard owns its lock, the
// referenced value may be read and mutated only through it, and no other
// accessor can acquire the same cell exclusively.
//
// Guards are created only by the acquisition operations; the zero Guard
// owns nothing. A Guard is released exactly once, by Unlock or by being
// replaced through Adopt, and moving a Guard transfers the lock instead
// of duplicating it.
type Guard[T any, M lockable.Lockable] struct {
	c   *cell.Cell[M]
	ref *T
}

// lockedGuard wraps an already-locked, retained cell in a guard viewing
// the value as U. On a cast failure the lock is released first, then the
// cell reference, so a failed view never leaks a held lock.
func lockedGuard[U any, M lockable.Lockable](c *cell.Cell[M]) (*Guard[U, M], error) {
	ref, ok := resolve[U](c.Box())
	if !ok {
		err := castError[U](c.Box())
		c.Mu().Unlock()
		c.Release()
		return nil, err
	}
	return &Guard[U, M]{c: c, ref: ref}, nil
}

// Ref returns the pointer through which the guarded value is read and
// mutated. It fails with ErrInvalidGuard if the guard does not own its
// lock.
//
// For an identity view the pointer is the stored value itself. For a
// widened (interface) view it is this guard's view header: reads and
// method calls reach the shared value, but assigning a whole new
// interface value through the pointer only changes this guard's view.
func (g *Guard[T, M]) Ref() (*T, error) {
	if g == nil || g.c == nil {
		return nil, ErrInvalidGuard
	}
	return g.ref, nil
}

// Value returns a copy of the guarded value as seen through this view.
func (g *Guard[T, M]) Value() (T, error) {
	if g == nil || g.c == nil {
		var zero T
		return zero, ErrInvalidGuard
	}
	return *g.ref, nil
}

// OwnsLock reports whether this guard currently holds the lock. It is
// false only for zero, moved-from, or already-unlocked guards.
func (g *Guard[T, M]) OwnsLock() bool {
	return g != nil && g.c != nil
}

// Unlock releases the lock and then the guard's cell reference, in that
// order, and empties the guard. Unlocking an empty guard is a no-op, so
// a deferred Unlock stays correct after the guard has been moved from.
func (g *Guard[T, M]) Unlock() {
	if g == nil || g.c == nil {
		return
	}
	c := g.c
	g.c, g.ref = nil, nil
	// The primitive must be released strictly before the cell reference:
	// the cell may not outlive a hold on its own lock.
	c.Mu().Unlock()
	c.Release()
}

// Move transfers the lock and the cell reference to a new guard and
// empties the receiver. Moving an empty guard yields an empty guard. The
// cell's reference count is unchanged by the transfer.
func (g *Guard[T, M]) Move() *Guard[T, M] {
	ng := &Guard[T, M]{c: g.c, ref: g.ref}
	g.c, g.ref = nil, nil
	return ng
}

// Adopt releases whatever the receiver holds, then takes over src's lock
// and cell reference, emptying src. Adopting from itself is a no-op.
//
// The receiver's own lock is released before the adoption, preserving the
// release-before-reclaim ordering for the cell it leaves behind.
func (g *Guard[T, M]) Adopt(src *Guard[T, M]) {
	if g == src {
		return
	}
	g.Unlock()
	g.c, g.ref = src.c, src.ref
	src.c, src.ref = nil, nil
}
