// Package obj binds a single value to an exclusion primitive so the value
// can only be read or mutated while that primitive is held.
//
// # Quick Start
//
// Wrap a value, take a guard, work through the guard, release it:
//
//	counter := obj.New(42)
//
//	g, err := counter.LockGet()
//	if err != nil {
//		// handle a moved-from wrapper
//	}
//	defer g.Unlock()
//
//	p, _ := g.Ref()
//	*p = 0
//
// The wrapper never hands out a reference to the value except through a
// guard, and a guard holds the primitive for its entire lifetime. There
// is no backdoor.
//
// # Model
//
// Three pieces cooperate:
//
//   - A shared cell (internal) holds one exclusion primitive and one
//     value, kept alive by an explicit reference count.
//   - [Mutex] is the user-facing handle. Handles are created by
//     construction, by a consuming cast ([As]), by deep duplication
//     ([Mutex.Clone]), or by aliasing ([Mutex.SharedClone]).
//   - [Guard] (exclusive) and [RGuard] (shared reader) are the scoped
//     accessors returned by the acquisition operations.
//
// Plain copying of a handle is deliberately not part of the API: "copy"
// is ambiguous between duplicating the value and aliasing the cell, so
// callers must pick Clone or SharedClone explicitly.
//
// # Views and Casting
//
// The cell stores the value's concrete type, and a handle is a typed view
// of it. [As] consumes a handle and re-types the view, widening to an
// interface the value satisfies or narrowing back to its concrete type:
//
//	c := obj.New(Circle{R: 21})
//	s, _ := obj.As[Shape](c)          // widen; c is now invalid
//	back, _ := obj.As[Circle](s)      // narrow; checked at runtime
//
// A failed narrowing reports [ErrCast] and leaves the source handle fully
// valid; a cast failure during [LockGetAs] releases the lock before
// reporting. View checks run against the stored concrete type, which
// Clone preserves, so duplicated values narrow the same way the original
// does.
//
// # Capabilities
//
// Mutex is generic over its primitive. Operations that need more than
// Lock/TryLock/Unlock are package-level functions constrained on the
// richer capability interfaces of
// [github.com/kolkov/objmutex/lockable]: [RLockGet] needs a reader/writer
// primitive, [LockGetFor] and [LockGetContext] need a timed one. Using
// them with a primitive that lacks the capability is a compile error.
//
// # Moves
//
// Handles and guards transfer ownership instead of sharing it implicitly.
// A moved-from handle reports Valid() == false and every operation on it
// returns [ErrInvalidHandle]; a moved-from guard reports OwnsLock() ==
// false and Ref returns [ErrInvalidGuard]. Handle moves are serialized
// through one process-wide ordering lock, which makes concurrent
// cross-moves of the same pair of handles safe at the cost of
// serializing all moves; see the internal handover package.
package obj
