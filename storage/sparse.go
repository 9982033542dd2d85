package storage

import "github.com/RoaringBitmap/roaring/v2"

// Sparse stores values in a map keyed by id.
type Sparse[T any] struct {
	mask *roaring.Bitmap
	data map[uint32]T
}

var _ Typed[int] = (*Sparse[int])(nil)

// NewSparse creates an empty sparse storage.
func NewSparse[T any]() *Sparse[T] {
	return &Sparse[T]{
		mask: roaring.New(),
		data: make(map[uint32]T),
	}
}

// Mask implements Storage.
func (s *Sparse[T]) Mask() *roaring.Bitmap { return s.mask }

// Check implements Storage.
func (s *Sparse[T]) Check(value any) error {
	_, _, err := cast[T](value)
	return err
}

// Set implements Storage.
func (s *Sparse[T]) Set(id uint32, value any) (bool, error) {
	v, ok, err := cast[T](value)
	if err != nil {
		return false, err
	}
	if ok {
		s.data[id] = v
	} else {
		delete(s.data, id)
	}
	return s.mask.CheckedAdd(id), nil
}

// Put implements Typed.
func (s *Sparse[T]) Put(id uint32, v T) bool {
	s.data[id] = v
	return s.mask.CheckedAdd(id)
}

// Get implements Storage.
func (s *Sparse[T]) Get(id uint32) (any, Presence) {
	v, p := s.Value(id)
	if p != Stored {
		return nil, p
	}
	return v, p
}

// Value implements Typed.
func (s *Sparse[T]) Value(id uint32) (T, Presence) {
	var zero T
	if !s.mask.Contains(id) {
		return zero, Absent
	}
	v, ok := s.data[id]
	if !ok {
		return zero, Marked
	}
	return v, Stored
}

// Remove implements Storage.
func (s *Sparse[T]) Remove(id uint32) bool {
	delete(s.data, id)
	return s.mask.CheckedRemove(id)
}

// Partition implements Storage.
func (s *Sparse[T]) Partition(any) []uint32 { return nil }

// Len returns the number of ids holding a value.
func (s *Sparse[T]) Len() int { return len(s.data) }
