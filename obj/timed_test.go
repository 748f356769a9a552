package obj

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// TestLockGetFor_TimesOutWhileHeld verifies bounded acquisition gives up
// while another guard holds the lock and succeeds once it is free.
func TestLockGetFor_TimesOutWhileHeld(t *testing.T) {
	m := NewTimed(1)

	g, err := m.LockGet()
	if err != nil {
		t.Fatalf("LockGet failed: %v", err)
	}

	if _, ok, err := LockGetFor(m, 20*time.Millisecond); ok || err != nil {
		t.Errorf("Expected timeout while held (ok=%v, err=%v)", ok, err)
	}
	g.Unlock()

	g2, ok, err := LockGetFor(m, 20*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("Expected acquisition after release (ok=%v, err=%v)", ok, err)
	}
	g2.Unlock()
}

// TestLockGetUntil_PastDeadline verifies a deadline in the past degrades
// to a single non-blocking attempt.
func TestLockGetUntil_PastDeadline(t *testing.T) {
	m := NewTimed("x")

	g, ok, err := LockGetUntil(m, time.Now().Add(-time.Second))
	if err != nil || !ok {
		t.Fatalf("Expected immediate success on a free lock (ok=%v, err=%v)", ok, err)
	}
	g.Unlock()

	held, _ := m.LockGet()
	if _, ok, _ := LockGetUntil(m, time.Now().Add(-time.Second)); ok {
		t.Error("Expected past-deadline attempt to fail while held")
	}
	held.Unlock()
}

// TestLockGetContext_Cancel verifies context cancellation unblocks a
// waiting acquisition with the context's error.
func TestLockGetContext_Cancel(t *testing.T) {
	m := NewTimed(1)

	g, err := m.LockGet()
	if err != nil {
		t.Fatalf("LockGet failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := LockGetContext(ctx, m)
		done <- err
	}()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	g.Unlock()

	// The cell must be acquirable after the canceled attempt.
	g2, err := LockGetContext(context.Background(), m)
	if err != nil {
		t.Fatalf("Expected acquisition after cancel cleanup, got %v", err)
	}
	g2.Unlock()
}

// TestRLockGetFor_TimedReaders verifies timed shared acquisition against
// a writer.
func TestRLockGetFor_TimedReaders(t *testing.T) {
	m := NewTimedRW(4)

	r, ok, err := RLockGetFor(m, 20*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("Expected reader admission on a free lock (ok=%v, err=%v)", ok, err)
	}
	if got, _ := r.Value(); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}
	r.Unlock()

	w, err := m.LockGet()
	if err != nil {
		t.Fatalf("LockGet failed: %v", err)
	}
	if _, ok, _ := RLockGetFor(m, 20*time.Millisecond); ok {
		t.Error("Expected timed reader to give up while writer holds the lock")
	}
	if _, ok, _ := RLockGetUntil(m, time.Now().Add(10*time.Millisecond)); ok {
		t.Error("Expected deadline reader to give up while writer holds the lock")
	}
	w.Unlock()
}

// TestRLockGetContext_CancelWhileWriterHeld verifies reader cancellation
// behind a writer.
func TestRLockGetContext_CancelWhileWriterHeld(t *testing.T) {
	m := NewTimedRW(0)

	w, err := m.LockGet()
	if err != nil {
		t.Fatalf("LockGet failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := RLockGetContext(ctx, m); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	w.Unlock()
}

// TestTimed_InvalidHandle verifies the timed flavors honor the
// invalid-handle contract.
func TestTimed_InvalidHandle(t *testing.T) {
	m := NewTimed(1)
	m.Drop()

	if _, _, err := LockGetFor(m, time.Millisecond); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("LockGetFor: expected ErrInvalidHandle, got %v", err)
	}
	if _, err := LockGetContext(context.Background(), m); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("LockGetContext: expected ErrInvalidHandle, got %v", err)
	}
}

// TestCondHandshake couples a sync.Cond to the cell's own primitive via
// NativeHandle: one goroutine holds a guard and waits for the value to
// reach zero, another zeroes it through its own guard and signals.
func TestCondHandshake(t *testing.T) {
	m := New(3)
	h, err := m.NativeHandle()
	if err != nil {
		t.Fatalf("NativeHandle failed: %v", err)
	}
	cond := sync.NewCond(h)

	observed := make(chan int, 1)
	ready := make(chan struct{})

	go func() {
		g, err := m.LockGet()
		if err != nil {
			t.Errorf("Waiter LockGet failed: %v", err)
			observed <- -1
			return
		}
		p, _ := g.Ref()
		close(ready)
		for *p != 0 {
			cond.Wait() // releases and re-acquires the cell's primitive
		}
		observed <- *p
		g.Unlock()
	}()

	<-ready
	// The waiter sleeps inside cond.Wait with the primitive released;
	// grab our own guard, zero the value, signal.
	g, err := m.LockGet()
	if err != nil {
		t.Fatalf("Signaler LockGet failed: %v", err)
	}
	p, _ := g.Ref()
	*p = 0
	g.Unlock()
	cond.Signal()

	select {
	case got := <-observed:
		if got != 0 {
			t.Errorf("Expected waiter to observe 0, got %d", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Waiter never observed the zeroed value")
	}
}
