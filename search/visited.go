package search

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// defaultVisitedBits is the initial capacity of pooled visited sets.
const defaultVisitedBits = 1 << 12

var visitedPool = sync.Pool{
	New: func() any {
		return bitset.New(defaultVisitedBits)
	},
}

func getVisited() *bitset.BitSet {
	v := visitedPool.Get().(*bitset.BitSet)
	v.ClearAll()
	return v
}

func putVisited(v *bitset.BitSet) {
	// drop sets a large graph has grown out of proportion
	if v.Len() > defaultVisitedBits*256 {
		return
	}
	visitedPool.Put(v)
}
