package obj

import (
	"context"
	"time"

	"github.com/kolkov/objmutex/lockable"
)

// LockGetFor attempts exclusive acquisition, giving up after d. ok
// reports whether the lock was obtained within the timeout. It requires
// a timed primitive.
func LockGetFor[T any, M lockable.TimedLockable](m *Mutex[T, M], d time.Duration) (g *Guard[T, M], ok bool, err error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, false, ErrInvalidHandle
	}
	if !c.Mu().TryLockFor(d) {
		c.Release()
		return nil, false, nil
	}
	g, err = lockedGuard[T](c)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// LockGetUntil attempts exclusive acquisition, giving up at the deadline
// t.
func LockGetUntil[T any, M lockable.TimedLockable](m *Mutex[T, M], t time.Time) (g *Guard[T, M], ok bool, err error) {
	return LockGetFor(m, time.Until(t))
}

// LockGetContext blocks until the primitive is acquired or ctx is done,
// in which case it returns ctx's error.
func LockGetContext[T any, M lockable.TimedLockable](ctx context.Context, m *Mutex[T, M]) (*Guard[T, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	if err := c.Mu().LockContext(ctx); err != nil {
		c.Release()
		return nil, err
	}
	return lockedGuard[T](c)
}

// RLockGetFor attempts shared acquisition, giving up after d. It
// requires a timed reader/writer primitive.
func RLockGetFor[T any, M lockable.TimedRWLockable](m *Mutex[T, M], d time.Duration) (g *RGuard[T, M], ok bool, err error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, false, ErrInvalidHandle
	}
	if !c.Mu().TryRLockFor(d) {
		c.Release()
		return nil, false, nil
	}
	g, err = lockedRGuard[T](c)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// RLockGetUntil attempts shared acquisition, giving up at the deadline
// t.
func RLockGetUntil[T any, M lockable.TimedRWLockable](m *Mutex[T, M], t time.Time) (g *RGuard[T, M], ok bool, err error) {
	return RLockGetFor(m, time.Until(t))
}

// RLockGetContext blocks until a shared hold is acquired or ctx is done.
func RLockGetContext[T any, M lockable.TimedRWLockable](ctx context.Context, m *Mutex[T, M]) (*RGuard[T, M], error) {
	c, _ := m.snapshot()
	if c == nil {
		return nil, ErrInvalidHandle
	}
	if err := c.Mu().RLockContext(ctx); err != nil {
		c.Release()
		return nil, err
	}
	return lockedRGuard[T](c)
}
