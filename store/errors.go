package store

import "errors"

var (
	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("key cannot be empty")

	// ErrNotFound is returned when no entry exists for a key.
	ErrNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when an entry does not hold the requested type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNilReference is returned by Lend when given a nil pointer.
	ErrNilReference = errors.New("nil reference")

	// ErrKeyCollision is returned by Merge under the Error strategy.
	ErrKeyCollision = errors.New("key collision")
)
