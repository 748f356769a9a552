package lockable

import (
	"context"
	"sync"
	"time"
)

// TimedMutex is an exclusive mutex with timed and context-aware
// acquisition. The zero value is ready to use.
//
// The implementation is a buffered guard channel: a send is a lock, a
// receive is an unlock. Bounded acquisition is then a select between the
// send and a timer or context.
//
// TimedMutex is not reentrant.
type TimedMutex struct {
	once  sync.Once
	guard chan struct{} // buffered, capacity 1; full means locked
}

func (m *TimedMutex) init() {
	m.once.Do(func() {
		m.guard = make(chan struct{}, 1)
	})
}

// Lock blocks until the mutex is acquired.
func (m *TimedMutex) Lock() {
	m.init()
	m.guard <- struct{}{}
}

// TryLock acquires the mutex if doing so would not block.
func (m *TimedMutex) TryLock() bool {
	m.init()
	select {
	case m.guard <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases the mutex.
//
// It panics if the mutex is not currently locked.
func (m *TimedMutex) Unlock() {
	m.init()
	select {
	case <-m.guard:
	default:
		panic("lockable: unlock of unlocked TimedMutex")
	}
}

// TryLockFor attempts acquisition, giving up after d. A non-positive
// duration degrades to a single TryLock attempt.
func (m *TimedMutex) TryLockFor(d time.Duration) bool {
	m.init()
	if d <= 0 {
		return m.TryLock()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case m.guard <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

// TryLockUntil attempts acquisition, giving up at the deadline t.
func (m *TimedMutex) TryLockUntil(t time.Time) bool {
	return m.TryLockFor(time.Until(t))
}

// LockContext blocks until the mutex is acquired or ctx is done.
func (m *TimedMutex) LockContext(ctx context.Context) error {
	m.init()
	select {
	case m.guard <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
