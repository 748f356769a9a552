package lockable

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// TestTimedMutex_LockUnlock verifies basic exclusive semantics.
func TestTimedMutex_LockUnlock(t *testing.T) {
	var m TimedMutex

	m.Lock()
	if m.TryLock() {
		t.Error("Expected TryLock to fail while locked")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Error("Expected TryLock to succeed after unlock")
	}
	m.Unlock()
}

// TestTimedMutex_MutualExclusion hammers a counter through the mutex.
func TestTimedMutex_MutualExclusion(t *testing.T) {
	const goroutines = 8
	const increments = 1000

	var m TimedMutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != goroutines*increments {
		t.Errorf("Expected %d, got %d", goroutines*increments, counter)
	}
}

// TestTimedMutex_TryLockFor verifies the timeout flavors.
func TestTimedMutex_TryLockFor(t *testing.T) {
	var m TimedMutex

	if !m.TryLockFor(10 * time.Millisecond) {
		t.Fatal("Expected TryLockFor to succeed on a free mutex")
	}
	if m.TryLockFor(10 * time.Millisecond) {
		t.Error("Expected TryLockFor to time out while locked")
	}
	if m.TryLockUntil(time.Now().Add(-time.Second)) {
		t.Error("Expected past-deadline TryLockUntil to fail while locked")
	}
	if m.TryLockFor(0) {
		t.Error("Expected non-positive duration to degrade to TryLock")
	}
	m.Unlock()

	if !m.TryLockUntil(time.Now().Add(10 * time.Millisecond)) {
		t.Error("Expected TryLockUntil to succeed on a free mutex")
	}
	m.Unlock()
}

// TestTimedMutex_LockContext verifies context-aware acquisition.
func TestTimedMutex_LockContext(t *testing.T) {
	var m TimedMutex

	if err := m.LockContext(context.Background()); err != nil {
		t.Fatalf("LockContext on free mutex failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := m.LockContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	m.Unlock()
}

// TestTimedMutex_UnlockOfUnlockedPanics documents the misuse contract.
func TestTimedMutex_UnlockOfUnlockedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected Unlock of an unlocked TimedMutex to panic")
		}
	}()
	var m TimedMutex
	m.Unlock()
}
