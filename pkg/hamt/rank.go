package hamt

import (
	"github.com/hideo55/go-popcount"
)

// bitmaskRank counts the set bits strictly below bit position
// byteIdx*8 + bitIdx in a little-endian bitmask. The target bit itself
// is excluded: the result is the ordinal of the corresponding child
// pointer or value within its layer.
func bitmaskRank(bitmask []byte, byteIdx int, bitIdx uint) int {
	rank := popcount.Count(uint64(bitmask[byteIdx]) & (1<<bitIdx - 1))
	for i := 0; i < byteIdx; i++ {
		rank += popcount.Count(uint64(bitmask[i]))
	}
	return int(rank)
}
