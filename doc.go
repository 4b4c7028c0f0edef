// Package borrown provides MaybeOwned, a container that holds either a reference
// to a value owned elsewhere or a value of its own.
//
// A MaybeOwned starts life in one of two states:
//   - Borrowed: built with [Borrowed] from a *T owned by the caller. Reads go
//     through the reference and nothing is copied.
//   - Owned: built with [Owned], [Default] or as the zero value. The container
//     holds the T itself.
//
// Reads are uniform: [MaybeOwned.Borrow], [MaybeOwned.Get], [AsRef], [Deref],
// the comparison helpers and fmt formatting never care which state is active.
//
// Writes go through [MaybeOwned.AsMut], which implements clone-on-write. The
// first call on a Borrowed container duplicates the referenced value, switches
// the container to Owned and returns a pointer into the private copy. The
// referenced value is never written. The transition is one-way: an Owned
// container never goes back to Borrowed.
//
// Duplication uses the value's own Clone method when T implements [Cloner],
// and a reflection deep copy (package deepcopy) otherwise.
//
// Borrowed containers and the garbage collector:
//
// Go keeps the referent alive for as long as a Borrowed container points at
// it, so a container can never dangle. What is not enforced is isolation.
// Until it is promoted, a Borrowed container observes every write the owner
// makes to the referent. Code that needs a stable snapshot must call
// [MaybeOwned.IntoOwned] or [MaybeOwned.AsMut] before handing the referent
// back to its owner.
//
// The sub-package store builds a thread-safe copy-on-write key/value store on
// top of MaybeOwned cells.
package borrown
