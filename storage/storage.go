package storage

import (
	"fmt"
	"reflect"

	"github.com/RoaringBitmap/roaring/v2"
)

// Presence describes what a storage holds for an id.
type Presence uint8

const (
	// Absent means the id carries no bit in the presence mask.
	Absent Presence = iota
	// Marked means the id carries the bit but no value.
	Marked
	// Stored means the id carries the bit and a value.
	Stored
)

// String returns the presence name.
func (p Presence) String() string {
	switch p {
	case Marked:
		return "marked"
	case Stored:
		return "stored"
	default:
		return "absent"
	}
}

// Present reports whether the id carries the presence bit.
func (p Presence) Present() bool { return p != Absent }

// Storage is the untyped contract every label column satisfies.
//
// The graph keeps storages in a name-keyed registry, so new kinds can be plugged
// in by implementing this interface.
type Storage interface {
	// Mask returns the live presence mask. Callers must not mutate it.
	Mask() *roaring.Bitmap

	// Check reports whether value could be stored, without storing it.
	Check(value any) error

	// Set marks id present and stores value. A nil value clears the data but
	// keeps the bit. It returns whether the presence mask changed.
	Set(id uint32, value any) (bool, error)

	// Get returns the value held for id together with its presence.
	Get(id uint32) (any, Presence)

	// Remove clears the value and the bit. It is idempotent and returns
	// whether the bit was set.
	Remove(id uint32) bool

	// Partition returns the ids sharing the partition of representative.
	// Storages without a secondary index return nil.
	Partition(representative any) []uint32
}

// Typed is a Storage with value-typed accessors.
type Typed[T any] interface {
	Storage

	// Value returns the typed value held for id.
	Value(id uint32) (T, Presence)

	// Put stores v for id and returns whether the presence mask changed.
	Put(id uint32, v T) bool
}

// ErrTypeMismatch is returned when a value does not fit a typed storage.
type ErrTypeMismatch struct {
	Expected string
	Actual   string
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// cast converts value to T. A nil value is accepted and reported as "no data".
func cast[T any](value any) (T, bool, error) {
	var zero T
	if value == nil {
		return zero, false, nil
	}
	v, ok := value.(T)
	if !ok {
		return zero, false, &ErrTypeMismatch{
			Expected: reflect.TypeFor[T]().String(),
			Actual:   fmt.Sprintf("%T", value),
		}
	}
	return v, true, nil
}

// Value reads a typed value out of any storage.
// It reports false when the id holds no value or the value is not a T.
func Value[T any](s Storage, id uint32) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	raw, p := s.Get(id)
	if p != Stored {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}
