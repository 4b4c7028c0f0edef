package borrown

import (
	"fmt"
	"reflect"
)

// State identifies the active variant of a MaybeOwned.
type State uint8

const (
	// StateOwned means the container holds its value. It is the zero State.
	StateOwned State = iota
	// StateBorrowed means the container references a value owned elsewhere.
	StateBorrowed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateOwned:
		return "owned"
	case StateBorrowed:
		return "borrowed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// MaybeOwned holds either a reference to a T owned elsewhere or a T of its own.
//
// The zero value is Owned and holds the zero T.
//
// A Borrowed container never writes through its reference. It does observe
// writes made by the referent's owner until it is promoted by AsMut; see the
// package documentation.
//
// Assigning a MaybeOwned copies it the way Go copies any struct: an Owned
// value is copied shallowly. Use Clone for a duplicate that honours Cloner.
type MaybeOwned[T any] struct {
	state State
	ref   *T
	value T
}

// Owned returns a container that owns v.
func Owned[T any](v T) MaybeOwned[T] {
	return MaybeOwned[T]{state: StateOwned, value: v}
}

// Borrowed returns a container that references the value behind ref.
// It panics if ref is nil.
func Borrowed[T any](ref *T) MaybeOwned[T] {
	if ref == nil {
		panic("borrown: Borrowed called with a nil reference")
	}
	return MaybeOwned[T]{state: StateBorrowed, ref: ref}
}

// Default returns an Owned container holding the zero T.
func Default[T any]() MaybeOwned[T] {
	var zero T
	return Owned(zero)
}

// State reports the active variant.
func (m MaybeOwned[T]) State() State {
	return m.state
}

// IsBorrowed reports whether the container references a value owned elsewhere.
func (m MaybeOwned[T]) IsBorrowed() bool {
	return m.state == StateBorrowed
}

// IsOwned reports whether the container holds its value.
func (m MaybeOwned[T]) IsOwned() bool {
	return m.state == StateOwned
}

// view is the single read path shared by every accessor and delegation.
func (m *MaybeOwned[T]) view() *T {
	if m.state == StateBorrowed {
		return m.ref
	}
	return &m.value
}

// Borrow returns a pointer to the contained value, whichever state is active.
//
// The result is read-only: for a Borrowed container it points at the
// caller-owned referent. Use AsMut to obtain a writable pointer.
func (m *MaybeOwned[T]) Borrow() *T {
	return m.view()
}

// Get returns a copy of the contained value.
func (m MaybeOwned[T]) Get() T {
	return *m.view()
}

// IntoOwned returns the contained value as a T the caller owns.
//
// An Owned container hands back its value without duplicating it. A Borrowed
// container duplicates the referent, which is left untouched.
func (m MaybeOwned[T]) IntoOwned() T {
	if m.state == StateBorrowed {
		return duplicate(m.ref)
	}
	return m.value
}

// AsMut returns a writable pointer to the contained value.
//
// If the container is Borrowed, the referent is duplicated first and the
// container becomes Owned; writes through the result only ever reach that
// private copy. An Owned container returns a pointer to its value directly.
func (m *MaybeOwned[T]) AsMut() *T {
	if m.state == StateBorrowed {
		m.promote()
	}
	invariant(m.state == StateOwned, "container still borrowed after clone-on-write promotion")
	return &m.value
}

func (m *MaybeOwned[T]) promote() {
	*m = MaybeOwned[T]{state: StateOwned, value: duplicate(m.ref)}
	logger.Debug("borrown: promoted borrowed %v to owned", reflect.TypeFor[T]())
}

// Clone duplicates the container.
//
// A Borrowed container yields another Borrowed container pointing at the same
// referent, without copying the value. An Owned container yields an Owned
// container holding a duplicate of the value.
func (m MaybeOwned[T]) Clone() MaybeOwned[T] {
	if m.state == StateBorrowed {
		return MaybeOwned[T]{state: StateBorrowed, ref: m.ref}
	}
	return Owned(duplicate(&m.value))
}

// String formats the contained value with the %v verb.
func (m MaybeOwned[T]) String() string {
	return fmt.Sprint(*m.view())
}

// Format implements fmt.Formatter by forwarding the verb, flags, width and
// precision to the contained value.
func (m MaybeOwned[T]) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), *m.view())
}
