package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// New returns an empty bitmap.
func New() *roaring.Bitmap {
	return roaring.New()
}

// Of returns a bitmap holding exactly ids.
func Of(ids ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(ids...)
}

// Range returns a bitmap holding every id in [0, n).
func Range(n uint32) *roaring.Bitmap {
	rb := roaring.New()
	if n > 0 {
		rb.AddRange(0, uint64(n))
	}
	return rb
}

// Clone returns a deep copy of rb.
func Clone(rb *roaring.Bitmap) *roaring.Bitmap {
	if rb == nil {
		return roaring.New()
	}
	return rb.Clone()
}

// And intersects all masks. Zero masks yield an empty bitmap.
func And(masks ...*roaring.Bitmap) *roaring.Bitmap {
	if len(masks) == 0 {
		return roaring.New()
	}
	for _, m := range masks {
		if m == nil {
			return roaring.New()
		}
	}
	if len(masks) == 1 {
		return masks[0].Clone()
	}
	return roaring.FastAnd(masks...)
}

// Or unites all masks. nil masks are skipped.
func Or(masks ...*roaring.Bitmap) *roaring.Bitmap {
	present := make([]*roaring.Bitmap, 0, len(masks))
	for _, m := range masks {
		if m != nil {
			present = append(present, m)
		}
	}
	switch len(present) {
	case 0:
		return roaring.New()
	case 1:
		return present[0].Clone()
	default:
		return roaring.FastOr(present...)
	}
}

// AndNot returns a \ b.
func AndNot(a, b *roaring.Bitmap) *roaring.Bitmap {
	if a == nil {
		return roaring.New()
	}
	if b == nil {
		return a.Clone()
	}
	return roaring.AndNot(a, b)
}

// Complement returns [0, n) \ rb.
func Complement(rb *roaring.Bitmap, n uint32) *roaring.Bitmap {
	if rb == nil {
		return Range(n)
	}
	out := roaring.Flip(rb, 0, uint64(n))
	if n < ^uint32(0) {
		// ids at or above n were never part of the universe
		out.RemoveRange(uint64(n), uint64(^uint32(0))+1)
	}
	return out
}

// Contains reports whether id is in rb.
func Contains(rb *roaring.Bitmap, id uint32) bool {
	return rb != nil && rb.Contains(id)
}

// First returns the smallest id in rb.
func First(rb *roaring.Bitmap) (uint32, bool) {
	if rb == nil || rb.IsEmpty() {
		return 0, false
	}
	return rb.Minimum(), true
}

// Seq iterates rb in ascending order.
//
// The bitmap is walked lazily; callers that keep the sequence around while the
// source mask may change should iterate a Clone.
func Seq(rb *roaring.Bitmap) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if rb == nil {
			return
		}
		it := rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToSlice materializes rb in ascending order. It never returns nil.
func ToSlice(rb *roaring.Bitmap) []uint32 {
	if rb == nil || rb.IsEmpty() {
		return []uint32{}
	}
	return rb.ToArray()
}
