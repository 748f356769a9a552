package lockable

import (
	"context"
	"sync"
	"time"
)

// The standard mutexes carry the base capabilities.
var (
	_ Lockable   = (*sync.Mutex)(nil)
	_ RWLockable = (*sync.RWMutex)(nil)

	_ TimedLockable   = (*TimedMutex)(nil)
	_ TimedRWLockable = (*TimedRWMutex)(nil)
)

// Lockable is the minimal capability set required from an exclusion
// primitive: blocking acquisition, non-blocking acquisition, and release.
//
// *sync.Mutex satisfies Lockable.
type Lockable interface {
	// Lock blocks the calling goroutine until the primitive is acquired.
	Lock()

	// TryLock attempts to acquire the primitive without blocking and
	// reports whether it succeeded.
	TryLock() bool

	// Unlock releases the primitive. Calling Unlock on an unlocked
	// primitive is a usage error; its effect is defined by the primitive.
	Unlock()
}

// RWLockable extends Lockable with a shared (reader) mode. Any number of
// shared holders may coexist; an exclusive holder excludes everyone.
//
// *sync.RWMutex satisfies RWLockable.
type RWLockable interface {
	Lockable

	// RLock blocks until the primitive is acquired in shared mode.
	RLock()

	// TryRLock attempts a non-blocking shared acquisition.
	TryRLock() bool

	// RUnlock releases one shared hold.
	RUnlock()
}

// TimedLockable extends Lockable with bounded acquisition. All three
// flavors report failure instead of blocking indefinitely.
//
// [TimedMutex] satisfies TimedLockable.
type TimedLockable interface {
	Lockable

	// TryLockFor attempts acquisition, giving up after the given duration.
	TryLockFor(d time.Duration) bool

	// TryLockUntil attempts acquisition, giving up at the given deadline.
	// A deadline in the past degrades to a single TryLock attempt.
	TryLockUntil(t time.Time) bool

	// LockContext blocks until the primitive is acquired or ctx is done,
	// returning ctx.Err() in the latter case.
	LockContext(ctx context.Context) error
}

// TimedRWLockable is the full capability set: exclusive, shared, and timed
// acquisition in both modes.
//
// [TimedRWMutex] satisfies TimedRWLockable.
type TimedRWLockable interface {
	TimedLockable
	RWLockable

	// TryRLockFor attempts shared acquisition, giving up after d.
	TryRLockFor(d time.Duration) bool

	// TryRLockUntil attempts shared acquisition, giving up at t.
	TryRLockUntil(t time.Time) bool

	// RLockContext blocks until shared acquisition succeeds or ctx is done.
	RLockContext(ctx context.Context) error
}
