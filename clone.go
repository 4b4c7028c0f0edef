package borrown

import (
	"github.com/davidroman0O/borrown/deepcopy"
)

// Cloner is implemented by types that know how to duplicate themselves.
//
// Clone must return a copy that shares no mutable state with the receiver:
// writes to the result must not be visible through the original. The method
// may be declared on T or on *T.
type Cloner[T any] interface {
	Clone() T
}

// duplicate copies the value behind v using its Cloner implementation when
// there is one, and a reflection deep copy otherwise. The deep copy reaches
// unexported fields, so the result shares no maps, slices or pointees with v.
func duplicate[T any](v *T) T {
	if c, ok := any(*v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return deepcopy.Copy(*v)
}
