package store

import (
	"reflect"

	"github.com/davidroman0O/borrown"
)

// cell erases the type parameter of a MaybeOwned so entries of different
// types can share one map.
type cell interface {
	typ() reflect.Type
	borrowed() bool
	// value returns a copy of the held value.
	value() any
	// promote detaches a lent cell and reports whether it was lent.
	promote() bool
	clone() cell
	// owns reports whether the cell duplicates its value on clone.
	owns() bool
}

type typedCell[T any] struct {
	m borrown.MaybeOwned[T]
}

func ownedCell[T any](v T) *typedCell[T] {
	return &typedCell[T]{m: borrown.Owned(v)}
}

func lentCell[T any](ref *T) *typedCell[T] {
	return &typedCell[T]{m: borrown.Borrowed(ref)}
}

func (c *typedCell[T]) typ() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *typedCell[T]) borrowed() bool {
	return c.m.IsBorrowed()
}

func (c *typedCell[T]) owns() bool {
	return c.m.IsOwned()
}

func (c *typedCell[T]) value() any {
	return c.m.Get()
}

func (c *typedCell[T]) promote() bool {
	if !c.m.IsBorrowed() {
		return false
	}
	c.m.AsMut()
	return true
}

func (c *typedCell[T]) clone() cell {
	return &typedCell[T]{m: c.m.Clone()}
}
