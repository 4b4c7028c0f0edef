package store

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/davidroman0O/borrown"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sasha-s/go-deadlock"
)

// Store is a threadsafe, type‑aware copy-on-write store.
type Store struct {
	mu   deadlock.RWMutex
	data map[string]cell

	logger     borrown.Logger
	registerer prometheus.Registerer
	namespace  string
	metrics    *metrics
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data:      make(map[string]cell),
		logger:    borrown.NewDefaultLogger(),
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.namespace, s.registerer, s.logger)
	return s
}

// Put stores v under key as an owned entry, replacing any previous entry.
func Put[T any](s *Store, key string, v T) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, ownedCell(v))
	return nil
}

// Lend stores ref under key as a lent entry, replacing any previous entry.
//
// The store never writes through ref. The caller keeps owning the value and
// its writes stay visible through the entry until the entry is promoted.
func Lend[T any](s *Store, key string, ref *T) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ref == nil {
		return fmt.Errorf("%w: lending %v under %q", ErrNilReference, reflect.TypeFor[T](), key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, lentCell(ref))
	return nil
}

// Get retrieves a value of type T for the given key.
//
// T must be the type the entry was stored with, or an interface it implements.
// Reading never promotes a lent entry.
func Get[T any](s *Store, key string) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[key]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if tc, ok := c.(*typedCell[T]); ok {
		return tc.m.Get(), nil
	}
	if v, ok := c.value().(T); ok {
		return v, nil
	}
	return zero, mismatch[T](key, c)
}

// GetOrDefault retrieves a value of type T for the given key, falling back
// to defaultValue when the key does not exist.
func GetOrDefault[T any](s *Store, key string, defaultValue T) (T, error) {
	value, err := Get[T](s, key)
	if errors.Is(err, ErrNotFound) {
		return defaultValue, nil
	}
	return value, err
}

// Update runs fn on the value stored under key.
//
// A lent entry is first promoted to an owned copy, so fn never sees the
// lender's value. T must be exactly the type the entry was stored with.
func Update[T any](s *Store, key string, fn func(*T)) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tc, err := lookup[T](s, key)
	if err != nil {
		return err
	}
	wasLent := tc.m.IsBorrowed()
	fn(tc.m.AsMut())
	if wasLent {
		s.promoted(key, tc)
	}
	return nil
}

// Take removes the entry stored under key and returns its value. A lent
// entry yields a copy; the lender's value is untouched.
func Take[T any](s *Store, key string) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tc, err := lookup[T](s, key)
	if err != nil {
		return zero, err
	}
	s.remove(key)
	return tc.m.IntoOwned(), nil
}

// IsBorrowed reports whether the entry under key is still lent.
func (s *Store) IsBorrowed(key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return c.borrowed(), nil
}

// Promote detaches the entry under key from its lender by taking an owned
// copy. Owned entries are left alone.
func (s *Store) Promote(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if c.promote() {
		s.promoted(key, c)
	}
	return nil
}

// PromoteAll detaches every lent entry and returns how many were promoted.
func (s *Store) PromoteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, c := range s.data {
		if c.promote() {
			s.promoted(key, c)
			n++
		}
	}
	return n
}

// Delete removes a key from the store.
func (s *Store) Delete(key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(key)
}

// Clear removes all keys from the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.data {
		s.metrics.removed(c)
	}
	s.data = make(map[string]cell)
}

// ListKeys returns all stored keys in sorted order.
func (s *Store) ListKeys() []string {
	return s.keys(func(cell) bool { return true })
}

// BorrowedKeys returns the keys of all lent entries in sorted order.
func (s *Store) BorrowedKeys() []string {
	return s.keys(func(c cell) bool { return c.borrowed() })
}

// Count returns the number of entries in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// ListTypes returns the set of all concrete types stored.
func (s *Store) ListTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[reflect.Type]struct{}{}
	out := []string{}
	for _, c := range s.data {
		t := c.typ()
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t.String())
	}
	slices.Sort(out)
	return out
}

// KeysByType returns all keys whose stored value has type T, in sorted order.
func KeysByType[T any](s *Store) []string {
	want := reflect.TypeFor[T]()
	return s.keys(func(c cell) bool { return c.typ() == want })
}

// Clone creates a new Store with the entries of this one.
//
// Lent entries stay lent and point at the same referents. Owned entries are
// duplicated, so the returned store shares no owned data with the original.
// The clone keeps the logger and metrics of s.
func (s *Store) Clone() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &Store{
		data:       make(map[string]cell, len(s.data)),
		logger:     s.logger,
		registerer: s.registerer,
		namespace:  s.namespace,
		metrics:    s.metrics,
	}
	for key, c := range s.data {
		out.set(key, s.duplicate(c))
	}
	return out
}

// MergeStrategy decides what Merge does with keys present in both stores.
type MergeStrategy int

const (
	// Overwrite replaces the destination entry.
	Overwrite MergeStrategy = iota
	// Skip keeps the destination entry.
	Skip
	// Error aborts the merge at the first collision.
	Error
)

// Merge copies the entries of other into s following strategy and returns
// the colliding keys. Entries are copied with the rules of Clone.
//
// Under the Error strategy nothing is merged when a collision exists.
func (s *Store) Merge(other *Store, strategy MergeStrategy) ([]string, error) {
	if other == nil || other == s {
		return nil, nil
	}

	incoming := other.snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	collisions := []string{}
	for _, e := range incoming {
		if _, exists := s.data[e.key]; exists {
			collisions = append(collisions, e.key)
		}
	}

	if strategy == Error && len(collisions) > 0 {
		return collisions, fmt.Errorf("%w on merge: %s", ErrKeyCollision, collisions[0])
	}

	for _, e := range incoming {
		if _, exists := s.data[e.key]; exists && strategy == Skip {
			continue
		}
		if e.owned {
			s.metrics.clones.Inc()
		}
		s.set(e.key, e.cell)
	}
	return collisions, nil
}

// FindKeyCollisions identifies keys that exist in both stores.
func (s *Store) FindKeyCollisions(other *Store) []string {
	if other == nil {
		return nil
	}
	if other == s {
		return s.ListKeys()
	}

	theirs := other.ListKeys()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var collisions []string
	for _, k := range theirs {
		if _, exists := s.data[k]; exists {
			collisions = append(collisions, k)
		}
	}
	return collisions
}

type snapshotEntry struct {
	key   string
	cell  cell
	owned bool
}

// snapshot clones every entry under the read lock, sorted by key. Only one
// store's lock is held at a time, so two stores never wait on each other.
func (s *Store) snapshot() []snapshotEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snapshotEntry, 0, len(s.data))
	for key, c := range s.data {
		out = append(out, snapshotEntry{key: key, cell: c.clone(), owned: c.owns()})
	}
	slices.SortFunc(out, func(a, b snapshotEntry) int { return strings.Compare(a.key, b.key) })
	return out
}

// set stores c under key. Callers hold the write lock.
func (s *Store) set(key string, c cell) {
	if old, ok := s.data[key]; ok {
		s.metrics.removed(old)
	}
	s.data[key] = c
	s.metrics.added(c)
}

// remove deletes key. Callers hold the write lock.
func (s *Store) remove(key string) bool {
	c, ok := s.data[key]
	if !ok {
		return false
	}
	delete(s.data, key)
	s.metrics.removed(c)
	return true
}

func (s *Store) promoted(key string, c cell) {
	s.metrics.promoted()
	s.logger.Debug("store: promoted lent entry %q (%v) to owned", key, c.typ())
}

// duplicate clones c for another store, counting owned copies.
func (s *Store) duplicate(c cell) cell {
	if c.owns() {
		s.metrics.clones.Inc()
	}
	return c.clone()
}

func (s *Store) keys(match func(cell) bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for k, c := range s.data {
		if match(c) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// lookup returns the cell under key when it holds exactly a T. Callers hold
// the lock.
func lookup[T any](s *Store, key string) (*typedCell[T], error) {
	c, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	tc, ok := c.(*typedCell[T])
	if !ok {
		return nil, mismatch[T](key, c)
	}
	return tc, nil
}

func mismatch[T any](key string, c cell) error {
	want := reflect.TypeFor[T]()
	return fmt.Errorf("%w: %q wanted %v (kind: %v), got %v (kind: %v)",
		ErrTypeMismatch, key, want, want.Kind(), c.typ(), c.typ().Kind())
}
