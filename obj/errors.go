package obj

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidHandle is reported by operations on a wrapper handle that
	// no longer references a cell, typically after it was consumed by a
	// move or cast.
	ErrInvalidHandle = errors.New("objmutex: handle does not reference a cell")

	// ErrInvalidGuard is reported by accessor operations on a guard that
	// does not own its lock, typically after it was moved from or
	// unlocked.
	ErrInvalidGuard = errors.New("objmutex: guard does not own its lock")

	// ErrCast is reported when a stored value does not satisfy a
	// requested view type. The failing operation leaves its source handle
	// valid and, if it had already acquired the lock, releases it before
	// reporting.
	ErrCast = errors.New("objmutex: view cast failed")
)

// castError builds an ErrCast naming the stored concrete type and the
// requested view type.
func castError[U any](box any) error {
	return fmt.Errorf("%w: stored %s is not viewable as %s",
		ErrCast, reflect.TypeOf(box).Elem(), reflect.TypeOf((*U)(nil)).Elem())
}
