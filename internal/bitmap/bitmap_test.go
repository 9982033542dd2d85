package bitmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndOr(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2, 3, 4)

	assert.Equal(t, []uint32{2, 3}, ToSlice(And(a, b)))
	assert.Equal(t, []uint32{1, 2, 3, 4}, ToSlice(Or(a, b)))

	// inputs are left untouched
	assert.Equal(t, []uint32{1, 2, 3}, ToSlice(a))
	assert.Equal(t, []uint32{2, 3, 4}, ToSlice(b))
}

func TestNilMasks(t *testing.T) {
	a := Of(1, 2)

	assert.True(t, And(a, nil).IsEmpty())
	assert.True(t, And().IsEmpty())
	assert.Equal(t, []uint32{1, 2}, ToSlice(Or(a, nil)))
	assert.True(t, Or().IsEmpty())
	assert.Equal(t, []uint32{1, 2}, ToSlice(AndNot(a, nil)))
	assert.False(t, Contains(nil, 1))
	assert.Equal(t, []uint32{}, ToSlice(nil))
}

func TestComplement(t *testing.T) {
	rb := Of(0, 2)

	assert.Equal(t, []uint32{1, 3, 4}, ToSlice(Complement(rb, 5)))
	assert.Equal(t, []uint32{0, 1, 2}, ToSlice(Complement(nil, 3)))

	// members outside the universe are dropped
	assert.Equal(t, []uint32{0, 1}, ToSlice(Complement(Of(7), 2)))
}

func TestFirstAndSeq(t *testing.T) {
	_, ok := First(New())
	assert.False(t, ok)

	rb := Of(9, 3, 5)
	first, ok := First(rb)
	require.True(t, ok)
	assert.Equal(t, uint32(3), first)

	assert.Equal(t, []uint32{3, 5, 9}, slices.Collect(Seq(rb)))

	var seen []uint32
	for id := range Seq(rb) {
		seen = append(seen, id)
		if id == 5 {
			break
		}
	}
	assert.Equal(t, []uint32{3, 5}, seen)
}

func TestRange(t *testing.T) {
	assert.True(t, Range(0).IsEmpty())
	assert.Equal(t, []uint32{0, 1, 2}, ToSlice(Range(3)))
}
