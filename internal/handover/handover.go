// Package handover provides the process-wide ordering lock that
// serializes wrapper-handle moves.
//
// A handle's cell pointer is the one piece of state the per-cell
// primitive does not protect: two goroutines cross-moving a pair of
// handles (a adopts b while b adopts a) would otherwise manipulate both
// handles' state concurrently with no common lock, and taking the two
// cells' own primitives in handle order can deadlock. Every move, and
// every validity read, therefore passes through this single critical
// section.
//
// This is a deliberate trade-off: moves and validity checks are rare
// control-plane operations, and one global lock makes them trivially
// deadlock-free. It is a known serialization point, not a bug.
package handover

import "sync"

var mu sync.Mutex

// Lock enters the global handover critical section.
func Lock() {
	mu.Lock()
}

// Unlock leaves the global handover critical section.
func Unlock() {
	mu.Unlock()
}
