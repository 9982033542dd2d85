package storage

import "github.com/RoaringBitmap/roaring/v2"

type slot[T any] struct {
	v  T
	ok bool
}

// Dense stores values in a slice indexed by id.
//
// Access is O(1); memory grows with the largest id ever set, not with the
// number of ids, so scattered ids waste space.
type Dense[T any] struct {
	mask *roaring.Bitmap
	data []slot[T]
}

var _ Typed[int] = (*Dense[int])(nil)

// NewDense creates an empty dense storage.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{mask: roaring.New()}
}

func (d *Dense[T]) grow(id uint32) {
	if need := int(id) + 1; need > len(d.data) {
		d.data = append(d.data, make([]slot[T], need-len(d.data))...)
	}
}

func (d *Dense[T]) store(id uint32, v T, ok bool) bool {
	d.grow(id)
	d.data[id] = slot[T]{v: v, ok: ok}
	return d.mask.CheckedAdd(id)
}

// Mask implements Storage.
func (d *Dense[T]) Mask() *roaring.Bitmap { return d.mask }

// Check implements Storage.
func (d *Dense[T]) Check(value any) error {
	_, _, err := cast[T](value)
	return err
}

// Set implements Storage.
func (d *Dense[T]) Set(id uint32, value any) (bool, error) {
	v, ok, err := cast[T](value)
	if err != nil {
		return false, err
	}
	return d.store(id, v, ok), nil
}

// Put implements Typed.
func (d *Dense[T]) Put(id uint32, v T) bool {
	return d.store(id, v, true)
}

// Get implements Storage.
func (d *Dense[T]) Get(id uint32) (any, Presence) {
	v, p := d.Value(id)
	if p != Stored {
		return nil, p
	}
	return v, p
}

// Value implements Typed.
func (d *Dense[T]) Value(id uint32) (T, Presence) {
	var zero T
	if !d.mask.Contains(id) {
		return zero, Absent
	}
	s := d.data[id]
	if !s.ok {
		return zero, Marked
	}
	return s.v, Stored
}

// Remove implements Storage.
func (d *Dense[T]) Remove(id uint32) bool {
	if int(id) < len(d.data) {
		d.data[id] = slot[T]{}
	}
	return d.mask.CheckedRemove(id)
}

// Partition implements Storage.
func (d *Dense[T]) Partition(any) []uint32 { return nil }
