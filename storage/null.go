package storage

import "github.com/RoaringBitmap/roaring/v2"

// Null records which ids carry a label and nothing else.
type Null struct {
	mask *roaring.Bitmap
}

// NewNull creates an empty presence-only storage.
func NewNull() *Null {
	return &Null{mask: roaring.New()}
}

// Mask implements Storage.
func (n *Null) Mask() *roaring.Bitmap { return n.mask }

// Check implements Storage. Any value is accepted and discarded.
func (n *Null) Check(any) error { return nil }

// Set implements Storage.
func (n *Null) Set(id uint32, _ any) (bool, error) {
	return n.mask.CheckedAdd(id), nil
}

// Get implements Storage.
func (n *Null) Get(id uint32) (any, Presence) {
	if n.mask.Contains(id) {
		return nil, Marked
	}
	return nil, Absent
}

// Remove implements Storage.
func (n *Null) Remove(id uint32) bool {
	return n.mask.CheckedRemove(id)
}

// Partition implements Storage.
func (n *Null) Partition(any) []uint32 { return nil }
