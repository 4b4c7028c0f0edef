// Package store provides a thread-safe copy-on-write key/value store.
//
// Every entry is a borrown.MaybeOwned cell. An entry is either:
//   - lent: inserted with Lend from a pointer the caller keeps owning. Reads go
//     through the pointer and nothing is copied.
//   - owned: inserted with Put, or a lent entry that has been written to.
//
// Writes never reach lent data. Update promotes a lent entry to an owned copy
// before running the caller's function on it, so the lender's value is left
// exactly as it was. Promote and PromoteAll detach entries without writing.
//
// Store Cloning and Merging:
//
//   - Clone(): Creates a new store. Lent entries stay lent against the same
//     referents; owned entries are duplicated.
//   - Merge(): Copies the entries of another store into this one following a
//     MergeStrategy, with the same duplication rules as Clone.
//
// Types are preserved: Get[T] only succeeds for the type an entry was stored
// with, or for an interface that type implements. GetTypeSchema describes a
// stored type as JSON Schema.
//
// Promotions, clones and the number of entries per state are exported as
// Prometheus metrics when a registerer is supplied with WithRegisterer.
package store
