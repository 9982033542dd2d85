package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	D string
}

func TestDense_SetGetRemove(t *testing.T) {
	s := NewDense[doc]()

	changed, err := s.Set(1, doc{D: "hello"})
	require.NoError(t, err)
	assert.True(t, changed)
	_, err = s.Set(0, doc{D: "hello"})
	require.NoError(t, err)

	v, p := s.Get(0)
	assert.Equal(t, Stored, p)
	assert.Equal(t, doc{D: "hello"}, v)

	// overwriting keeps the presence mask unchanged
	changed, err = s.Set(0, doc{D: "world"})
	require.NoError(t, err)
	assert.False(t, changed)

	assert.True(t, s.Remove(0))
	assert.False(t, s.Remove(0))

	_, p = s.Get(0)
	assert.Equal(t, Absent, p)
	v, p = s.Get(1)
	assert.Equal(t, Stored, p)
	assert.Equal(t, doc{D: "hello"}, v)
	assert.Equal(t, []uint32{1}, s.Mask().ToArray())
}

func TestDense_NilValueMarks(t *testing.T) {
	s := NewDense[doc]()
	s.Put(3, doc{D: "x"})

	_, err := s.Set(3, nil)
	require.NoError(t, err)

	_, p := s.Get(3)
	assert.Equal(t, Marked, p)
	assert.True(t, s.Mask().Contains(3))

	// ids beyond the slice are absent rather than panicking
	_, p = s.Get(1000)
	assert.Equal(t, Absent, p)
}

func TestNull_SetGetRemove(t *testing.T) {
	s := NewNull()

	_, err := s.Set(1, nil)
	require.NoError(t, err)
	_, err = s.Set(0, nil)
	require.NoError(t, err)

	_, p := s.Get(0)
	assert.Equal(t, Marked, p)
	_, p = s.Get(1)
	assert.Equal(t, Marked, p)

	s.Remove(0)
	s.Remove(0)

	_, p = s.Get(0)
	assert.Equal(t, Absent, p)
	_, p = s.Get(1)
	assert.Equal(t, Marked, p)
	assert.Nil(t, s.Partition(doc{}))
}

func TestSparse_SetGetRemove(t *testing.T) {
	s := NewSparse[int]()

	changed, err := s.Set(1_000_000, 7)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, s.Len())

	v, p := s.Value(1_000_000)
	assert.Equal(t, Stored, p)
	assert.Equal(t, 7, v)

	_, err = s.Set(1_000_000, nil)
	require.NoError(t, err)
	_, p = s.Get(1_000_000)
	assert.Equal(t, Marked, p)
	assert.Equal(t, 0, s.Len())

	assert.True(t, s.Remove(1_000_000))
	_, p = s.Get(1_000_000)
	assert.Equal(t, Absent, p)
}

func TestTypeMismatch(t *testing.T) {
	for name, s := range map[string]Storage{
		"dense":       NewDense[int](),
		"sparse":      NewSparse[int](),
		"partitioned": NewPartitioned(NewDense[int](), func(v int) int { return v % 2 }),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Check(1))
			require.NoError(t, s.Check(nil))

			_, err := s.Set(0, "one")
			var mismatch *ErrTypeMismatch
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, "int", mismatch.Expected)
			assert.Equal(t, "string", mismatch.Actual)

			// rejected before any side effect
			assert.False(t, s.Mask().Contains(0))
		})
	}
}

func TestPartitioned(t *testing.T) {
	s := NewPartitioned(NewDense[doc](), func(d doc) int { return len(d.D) })

	s.Put(0, doc{D: "ab"})
	s.Put(1, doc{D: "cd"})
	s.Put(2, doc{D: "abc"})

	assert.Equal(t, []uint32{0, 1}, s.Partition(doc{D: "xx"}))
	assert.Equal(t, []uint32{2}, s.Partition(doc{D: "xxx"}))
	assert.Empty(t, s.Partition(doc{D: "x"}))
	assert.Nil(t, s.Partition("not a doc"))

	s.Remove(0)
	assert.Equal(t, []uint32{1}, s.Partition(doc{D: "xx"}))
	assert.Equal(t, 2, s.Keys())
}

func TestPartitioned_UpdateMovesBucket(t *testing.T) {
	s := NewPartitioned(NewSparse[doc](), func(d doc) int { return len(d.D) })
	s.Put(0, doc{D: "ab"})
	s.Put(1, doc{D: "cd"})
	s.Put(2, doc{D: "ef"})

	s.Update(0, func(d doc) doc {
		d.D += "c"
		return d
	})

	assert.ElementsMatch(t, []uint32{1, 2}, s.Partition(doc{D: "xx"}))
	assert.Equal(t, []uint32{0}, s.Partition(doc{D: "xxx"}))

	// clearing the value drops the id from every bucket but keeps the bit
	_, err := s.Set(1, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, s.Partition(doc{D: "xx"}))
	_, p := s.Get(1)
	assert.Equal(t, Marked, p)

	// the returned bucket is a copy
	bucket := s.Partition(doc{D: "xx"})
	bucket[0] = 99
	assert.Equal(t, []uint32{2}, s.Partition(doc{D: "xx"}))
}

func TestPartitioned_UpdateInPlace(t *testing.T) {
	s := NewPartitioned(NewDense[*doc](), func(d *doc) int { return len(d.D) })
	s.Put(0, &doc{D: "ab"})
	s.Put(1, &doc{D: "cd"})
	s.Put(2, &doc{D: "abc"})

	s.Update(0, func(d *doc) *doc {
		d.D += "c"
		return d
	})

	assert.Equal(t, []uint32{1}, s.PartitionOf(&doc{D: "xx"}))
	assert.Equal(t, []uint32{2, 0}, s.PartitionOf(&doc{D: "xxx"}))

	v, _ := s.Value(1)
	v.D = "cdef"
	require.True(t, s.Remove(1))
	assert.Empty(t, s.PartitionOf(&doc{D: "xx"}))
	assert.Empty(t, s.PartitionOf(&doc{D: "xxxx"}))

	s.Remove(2)
	assert.Equal(t, []uint32{0}, s.PartitionOf(&doc{D: "xxx"}))
	assert.Equal(t, 1, s.Keys())
}

func TestValueHelper(t *testing.T) {
	s := NewDense[doc]()
	s.Put(0, doc{D: "a"})

	v, ok := Value[doc](s, 0)
	require.True(t, ok)
	assert.Equal(t, "a", v.D)

	_, ok = Value[int](s, 0)
	assert.False(t, ok)
	_, ok = Value[doc](s, 5)
	assert.False(t, ok)
	_, ok = Value[doc](nil, 0)
	assert.False(t, ok)
}
