package borrown

import (
	"cmp"
	"hash/maphash"
)

// Equal reports whether a and b hold equal values. The active states play no
// part: Borrowed(&x) equals Owned(x).
func Equal[T comparable](a, b MaybeOwned[T]) bool {
	return *a.view() == *b.view()
}

// EqualFunc is like Equal but compares with eq.
func EqualFunc[T any](a, b MaybeOwned[T], eq func(T, T) bool) bool {
	return eq(*a.view(), *b.view())
}

// Compare returns -1, 0 or +1 as the value in a is less than, equal to or
// greater than the value in b, following cmp.Compare.
func Compare[T cmp.Ordered](a, b MaybeOwned[T]) int {
	return cmp.Compare(*a.view(), *b.view())
}

// CompareFunc is like Compare but orders with fn.
func CompareFunc[T any](a, b MaybeOwned[T], fn func(T, T) int) int {
	return fn(*a.view(), *b.view())
}

// Less reports whether the value in a sorts before the value in b.
func Less[T cmp.Ordered](a, b MaybeOwned[T]) bool {
	return cmp.Less(*a.view(), *b.view())
}

// Hash returns the hash of the contained value under seed. Containers holding
// equal values hash identically whatever their state.
func Hash[T comparable](seed maphash.Seed, m MaybeOwned[T]) uint64 {
	return maphash.Comparable(seed, *m.view())
}

// WriteHash adds the contained value to h.
func WriteHash[T comparable](h *maphash.Hash, m MaybeOwned[T]) {
	maphash.WriteComparable(h, *m.view())
}
