// Package deepcopy duplicates Go values by walking them with reflection.
//
// Copies share no mutable state with their source for the kinds Go lets us
// rebuild: pointers, structs, maps, slices, arrays and interfaces are copied
// recursively, unexported struct fields included. The rest are shared:
//   - channels, funcs and unsafe pointers;
//   - time.Location pointers, so a copied time.Time stays == to its source.
//
// A pointer, map or slice reachable more than once from the source is copied
// once, so shared structure and cycles are preserved in the copy. Slices are
// shared only when they agree on backing array, length and capacity.
//
// Types that need different behaviour implement DeepCopier.
package deepcopy

import (
	"reflect"
	"time"
	"unsafe"
)

// DeepCopier is implemented by values that provide their own deep copy.
// DeepCopy must return a value assignable to the receiver's type; otherwise
// the reflection copy is used.
type DeepCopier interface {
	DeepCopy() interface{}
}

// Copy returns a deep copy of v.
func Copy[T any](v T) T {
	out := newCopier().copy(reflect.ValueOf(&v).Elem())
	if r, ok := out.Interface().(T); ok {
		return r
	}
	// Only reachable for a nil interface T.
	var zero T
	return zero
}

// Value returns a deep copy of v with the same dynamic type.
func Value(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return newCopier().copy(reflect.ValueOf(v)).Interface()
}

type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
	cap int
}

// shared lists types copied as-is.
var shared = map[reflect.Type]struct{}{
	reflect.TypeFor[*time.Location](): {},
}

type copier struct {
	seen map[visit]reflect.Value
}

func newCopier() *copier {
	return &copier{seen: make(map[visit]reflect.Value)}
}

func (c *copier) copy(src reflect.Value) reflect.Value {
	if out, ok := c.custom(src); ok {
		return out
	}

	t := src.Type()
	if _, ok := shared[t]; ok {
		return src
	}

	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return src
		}
		key := visit{typ: t, ptr: src.Pointer()}
		if out, ok := c.seen[key]; ok {
			return out
		}
		out := reflect.New(t.Elem())
		c.seen[key] = out
		out.Elem().Set(c.copy(src.Elem()))
		return out

	case reflect.Interface:
		out := reflect.New(t).Elem()
		if src.IsNil() {
			return out
		}
		out.Set(c.copy(src.Elem()))
		return out

	case reflect.Struct:
		if !src.CanAddr() {
			addr := reflect.New(t).Elem()
			addr.Set(src)
			src = addr
		}
		out := reflect.New(t).Elem()
		for i := 0; i < t.NumField(); i++ {
			exposed(out.Field(i)).Set(c.copy(exposed(src.Field(i))))
		}
		return out

	case reflect.Map:
		if src.IsNil() {
			return src
		}
		key := visit{typ: t, ptr: src.Pointer()}
		if out, ok := c.seen[key]; ok {
			return out
		}
		out := reflect.MakeMapWithSize(t, src.Len())
		c.seen[key] = out
		iter := src.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), c.copy(iter.Value()))
		}
		return out

	case reflect.Slice:
		if src.IsNil() {
			return src
		}
		key := visit{typ: t, ptr: src.Pointer(), len: src.Len(), cap: src.Cap()}
		if out, ok := c.seen[key]; ok {
			return out
		}
		out := reflect.MakeSlice(t, src.Len(), src.Cap())
		c.seen[key] = out
		for i := 0; i < src.Len(); i++ {
			out.Index(i).Set(c.copy(src.Index(i)))
		}
		return out

	case reflect.Array:
		out := reflect.New(t).Elem()
		for i := 0; i < src.Len(); i++ {
			out.Index(i).Set(c.copy(src.Index(i)))
		}
		return out

	default:
		return src
	}
}

// custom hands src to its DeepCopier implementation, if it has a usable one.
func (c *copier) custom(src reflect.Value) (reflect.Value, bool) {
	if src.Kind() == reflect.Interface || !src.CanInterface() {
		return reflect.Value{}, false
	}
	if src.Kind() == reflect.Pointer && src.IsNil() {
		return reflect.Value{}, false
	}
	dc, ok := src.Interface().(DeepCopier)
	if !ok {
		return reflect.Value{}, false
	}
	out := reflect.ValueOf(dc.DeepCopy())
	if !out.IsValid() || !out.Type().AssignableTo(src.Type()) {
		return reflect.Value{}, false
	}
	if out.Type() != src.Type() {
		conv := reflect.New(src.Type()).Elem()
		conv.Set(out)
		out = conv
	}
	return out, true
}

// exposed returns an addressable field with the read-only flag of unexported
// fields cleared, so it can be read and written like an exported one.
func exposed(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}
