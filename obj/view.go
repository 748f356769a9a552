package obj

import (
	"reflect"

	"github.com/mohae/deepcopy"
)

// A cell boxes its value as a pointer to the value's concrete type, held
// in an any (for example a *Circle). A view type U is compatible with a
// box when either:
//
//   - identity: the box is literally a *U, or
//   - widening: U is an interface satisfied by the boxed pointer or, for
//     pointer-stored values, by the pointed-to pointer type.
//
// Narrowing is the identity case reached from a wider declared type, so
// both directions reduce to the same checks. Compatibility is a property
// of the box's type alone, never of the current value, which is what lets
// viewable run without the cell's primitive held.

// boxValue allocates a box for the dynamic value of v. Boxing the dynamic
// rather than the static type keeps narrowing available when the caller's
// static type is an interface.
func boxValue(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		panic("objmutex: cannot wrap a nil interface value")
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}

// resolve returns a *U through which the boxed value is viewed as U.
//
// The caller must hold the cell's primitive: the widening fallback for a
// pointer-stored value dereferences the box, and that slot is mutable
// through an identity guard's Ref. Lock-free call sites use viewable.
//
// For the identity view this is the box itself, so writes through the
// pointer mutate the shared value. For a widened (interface) view it is a
// pointer to a fresh interface header wrapping the shared value: reads
// and method calls reach the shared value, but assigning a new interface
// value through the pointer only changes this view. The widening check
// tries the box pointer first and the pointed-to value second, so both
// value-stored (box *rect) and pointer-stored (box **rect) hierarchies
// widen.
func resolve[U any](box any) (*U, bool) {
	if p, ok := box.(*U); ok {
		return p, true
	}
	if i, ok := box.(U); ok {
		return &i, true
	}
	if rv := reflect.ValueOf(box); rv.Kind() == reflect.Pointer {
		if i, ok := rv.Elem().Interface().(U); ok {
			return &i, true
		}
	}
	return nil, false
}

// viewable reports whether the box can be viewed as U. It inspects the
// box's type only, never the pointed-to value, so it is safe to call
// without the cell's primitive; it accepts exactly the boxes resolve
// accepts.
func viewable[U any](box any) bool {
	if _, ok := box.(*U); ok {
		return true
	}
	ut := reflect.TypeOf((*U)(nil)).Elem()
	if ut.Kind() != reflect.Interface {
		return false
	}
	bt := reflect.TypeOf(box)
	if bt.Implements(ut) {
		return true
	}
	return bt.Kind() == reflect.Pointer && bt.Elem().Implements(ut)
}

// Cloner lets a value override the reflection-based deep copy used by
// Clone. DeepCopy must return a pointer to a fresh value of the same
// concrete type as its receiver's box.
type Cloner interface {
	DeepCopy() any
}

// copyBox duplicates a box. The caller must hold the cell's primitive
// while the copy runs.
func copyBox(box any) any {
	if c, ok := box.(Cloner); ok {
		return c.DeepCopy()
	}
	return deepcopy.Copy(box)
}
