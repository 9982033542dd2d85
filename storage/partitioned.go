package storage

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Partitioned is a secondary index over a typed storage.
//
// Every stored value is assigned a key by the partition function; ids sharing
// a key form a bucket. Buckets keep insertion order, and removal swaps the last
// id into the freed position.
//
// Invariant: an id sits in exactly one bucket iff the inner storage holds a
// value for it, and that bucket is key(value).
type Partitioned[T any, K comparable] struct {
	inner   Typed[T]
	key     func(T) K
	buckets map[K][]uint32
	slots   map[uint32]bucketSlot[K]
}

// bucketSlot remembers where an id was indexed. Values may be mutated in place, so
// the key is never recomputed from the stored value.
type bucketSlot[K comparable] struct {
	key K
	idx int
}

var _ Typed[int] = (*Partitioned[int, int])(nil)

// NewPartitioned wraps inner with a secondary index computed by key.
func NewPartitioned[T any, K comparable](inner Typed[T], key func(T) K) *Partitioned[T, K] {
	return &Partitioned[T, K]{
		inner:   inner,
		key:     key,
		buckets: make(map[K][]uint32),
		slots:   make(map[uint32]bucketSlot[K]),
	}
}

func (p *Partitioned[T, K]) index(id uint32, v T) {
	k := p.key(v)
	p.slots[id] = bucketSlot[K]{key: k, idx: len(p.buckets[k])}
	p.buckets[k] = append(p.buckets[k], id)
}

func (p *Partitioned[T, K]) unindex(id uint32) {
	sl, ok := p.slots[id]
	if !ok {
		return
	}
	bucket := p.buckets[sl.key]
	last := len(bucket) - 1
	if sl.idx != last {
		moved := bucket[last]
		bucket[sl.idx] = moved
		ms := p.slots[moved]
		ms.idx = sl.idx
		p.slots[moved] = ms
	}
	bucket = bucket[:last]
	if len(bucket) == 0 {
		delete(p.buckets, sl.key)
	} else {
		p.buckets[sl.key] = bucket
	}
	delete(p.slots, id)
}

// Mask implements Storage.
func (p *Partitioned[T, K]) Mask() *roaring.Bitmap { return p.inner.Mask() }

// Check implements Storage.
func (p *Partitioned[T, K]) Check(value any) error {
	_, _, err := cast[T](value)
	return err
}

// Set implements Storage. The id moves from the bucket of its old value to
// the bucket of the new one.
func (p *Partitioned[T, K]) Set(id uint32, value any) (bool, error) {
	v, ok, err := cast[T](value)
	if err != nil {
		return false, err
	}
	if ok {
		return p.Put(id, v), nil
	}
	p.unindex(id)
	return p.inner.Set(id, nil)
}

// Put implements Typed.
func (p *Partitioned[T, K]) Put(id uint32, v T) bool {
	p.unindex(id)
	changed := p.inner.Put(id, v)
	p.index(id, v)
	return changed
}

// Update applies fn to the current value of id and stores the result.
// fn receives the zero value when id holds no value.
func (p *Partitioned[T, K]) Update(id uint32, fn func(T) T) bool {
	old, _ := p.inner.Value(id)
	return p.Put(id, fn(old))
}

// Get implements Storage.
func (p *Partitioned[T, K]) Get(id uint32) (any, Presence) {
	return p.inner.Get(id)
}

// Value implements Typed.
func (p *Partitioned[T, K]) Value(id uint32) (T, Presence) {
	return p.inner.Value(id)
}

// Remove implements Storage.
func (p *Partitioned[T, K]) Remove(id uint32) bool {
	p.unindex(id)
	return p.inner.Remove(id)
}

// Partition implements Storage. It returns a copy of the bucket that
// representative falls into, or nil when representative is not a T.
func (p *Partitioned[T, K]) Partition(representative any) []uint32 {
	r, ok := representative.(T)
	if !ok {
		return nil
	}
	return p.PartitionOf(r)
}

// PartitionOf is the typed form of Partition.
func (p *Partitioned[T, K]) PartitionOf(representative T) []uint32 {
	return slices.Clone(p.buckets[p.key(representative)])
}

// Keys returns the number of non-empty buckets.
func (p *Partitioned[T, K]) Keys() int { return len(p.buckets) }
