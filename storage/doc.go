// Package storage provides the column storages that back graph labels.
//
// A storage maps an integer id to an optional value and keeps a roaring
// presence mask of every id it holds. The mask is what the traversal algebra
// intersects; the values are what projections read.
//
// # Variants
//
//	Null           presence only, no value slot
//	Dense[T]       growable slice indexed by id, O(1) access
//	Sparse[T]      map keyed by id, no waste for scattered ids
//	Partitioned    secondary index over another typed storage
//
// # Presence
//
// Get distinguishes three outcomes:
//
//	Absent   the id carries no bit
//	Marked   the id carries the bit but no data (Null storage, or Set(id, nil))
//	Stored   the id carries the bit and a value
//
// # Partitions
//
// Partitioned groups ids by a key derived from their value:
//
//	byLen := storage.NewPartitioned(storage.NewDense[Doc](), func(d Doc) int {
//	    return len(d.Text)
//	})
//	byLen.Set(0, Doc{Text: "ab"})
//	byLen.Partition(Doc{Text: "xy"}) // [0]
//
// Values are updated with Set (or Update); the storage diffs the old and the new
// key and moves the id between buckets.
package storage
