// Package lockable declares the capability contract an exclusion primitive
// must satisfy to drive an obj.Mutex, and provides timed primitives the
// standard library does not have.
//
// # Capability Model
//
// The wrapper layer is polymorphic over its exclusion primitive. Instead of
// probing for optional methods at runtime, capabilities are expressed as a
// small interface hierarchy and checked at compile time:
//
//   - [Lockable] is the minimal contract (Lock/TryLock/Unlock). It is
//     satisfied by *sync.Mutex.
//   - [RWLockable] adds the shared-reader flavor (RLock/TryRLock/RUnlock).
//     It is satisfied by *sync.RWMutex.
//   - [TimedLockable] adds bounded acquisition: relative timeout, absolute
//     deadline, and context cancellation.
//   - [TimedRWLockable] combines all of the above.
//
// Operations in the obj package that need a richer capability are generic
// functions constrained on the richer interface, so requesting a shared
// read guard from a plain mutex is a compile error, not a runtime one.
//
// # Provided Primitives
//
// Two implementations cover the capabilities the standard library lacks:
//
//   - [TimedMutex]: an exclusive mutex built on a buffered guard channel.
//     Locking sends into the channel, unlocking receives from it, which
//     makes timeout and context variants natural select statements.
//   - [TimedRWMutex]: a reader/writer lock built on a weighted semaphore.
//     Readers acquire weight 1, a writer acquires the full weight, and the
//     semaphore's context-aware acquisition provides the timed flavors for
//     both modes.
//
// Neither primitive is reentrant. Reentrancy, if needed, must come from the
// supplied primitive; the wrapper layer adds no tracking of its own.
package lockable
