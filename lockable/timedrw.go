package lockable

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// maxReaders bounds the number of concurrent shared holders of a
// TimedRWMutex. A writer acquires the full weight, so any outstanding
// reader blocks it and vice versa.
const maxReaders = 1 << 30

// TimedRWMutex is a reader/writer lock with timed and context-aware
// acquisition in both modes. The zero value is ready to use.
//
// It is built on a weighted semaphore: readers hold weight 1, a writer
// holds the full weight. The semaphore admits waiters in FIFO order, so a
// waiting writer blocks later readers and cannot be starved indefinitely.
//
// TimedRWMutex is not reentrant, and a reader must not upgrade to a
// writer while still holding its read lock.
type TimedRWMutex struct {
	once sync.Once
	sem  *semaphore.Weighted
}

func (m *TimedRWMutex) init() {
	m.once.Do(func() {
		m.sem = semaphore.NewWeighted(maxReaders)
	})
}

// Lock blocks until the write lock is acquired.
func (m *TimedRWMutex) Lock() {
	m.init()
	// Acquire with a background context cannot fail.
	_ = m.sem.Acquire(context.Background(), maxReaders)
}

// TryLock acquires the write lock if no other goroutine holds the lock in
// either mode.
func (m *TimedRWMutex) TryLock() bool {
	m.init()
	return m.sem.TryAcquire(maxReaders)
}

// Unlock releases the write lock.
func (m *TimedRWMutex) Unlock() {
	m.init()
	m.sem.Release(maxReaders)
}

// RLock blocks until a read lock is acquired.
func (m *TimedRWMutex) RLock() {
	m.init()
	_ = m.sem.Acquire(context.Background(), 1)
}

// TryRLock acquires a read lock if no writer holds or is waiting for the
// lock.
func (m *TimedRWMutex) TryRLock() bool {
	m.init()
	return m.sem.TryAcquire(1)
}

// RUnlock releases one read lock.
func (m *TimedRWMutex) RUnlock() {
	m.init()
	m.sem.Release(1)
}

// TryLockFor attempts write acquisition, giving up after d.
func (m *TimedRWMutex) TryLockFor(d time.Duration) bool {
	return m.acquireFor(d, maxReaders)
}

// TryLockUntil attempts write acquisition, giving up at the deadline t.
func (m *TimedRWMutex) TryLockUntil(t time.Time) bool {
	return m.acquireFor(time.Until(t), maxReaders)
}

// LockContext blocks until the write lock is acquired or ctx is done.
func (m *TimedRWMutex) LockContext(ctx context.Context) error {
	m.init()
	return m.sem.Acquire(ctx, maxReaders)
}

// TryRLockFor attempts read acquisition, giving up after d.
func (m *TimedRWMutex) TryRLockFor(d time.Duration) bool {
	return m.acquireFor(d, 1)
}

// TryRLockUntil attempts read acquisition, giving up at the deadline t.
func (m *TimedRWMutex) TryRLockUntil(t time.Time) bool {
	return m.acquireFor(time.Until(t), 1)
}

// RLockContext blocks until a read lock is acquired or ctx is done.
func (m *TimedRWMutex) RLockContext(ctx context.Context) error {
	m.init()
	return m.sem.Acquire(ctx, 1)
}

func (m *TimedRWMutex) acquireFor(d time.Duration, weight int64) bool {
	m.init()
	if d <= 0 {
		return m.sem.TryAcquire(weight)
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return m.sem.Acquire(ctx, weight) == nil
}
