package borrown

// Viewer is satisfied by *T when T (or *T) presents a view of type D.
//
// It is the capability AsRef requires. A value-receiver View method on T is
// also in the method set of *T, so either receiver works.
type Viewer[T, D any] interface {
	*T
	View() D
}

// Derefer is satisfied by *T when T (or *T) dereferences to a D.
type Derefer[T, D any] interface {
	*T
	Deref() D
}

// AsRef returns the view of type D that the contained value presents.
//
// Both states behave identically. D is usually the only type argument the
// caller has to spell out:
//
//	name := borrown.AsRef[string](&m)
func AsRef[D any, T any, PT Viewer[T, D]](m *MaybeOwned[T]) D {
	return PT(m.view()).View()
}

// Deref forwards through the contained value's own Deref, so a container of a
// pointer-like T dereferences as far as T itself would.
func Deref[D any, T any, PT Derefer[T, D]](m *MaybeOwned[T]) D {
	return PT(m.view()).Deref()
}
