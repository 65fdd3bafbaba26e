package hamt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodedTrie is the result of an exhaustive test-side decode of a
// serialized buffer, independent of the Reader's lookup path.
type decodedTrie struct {
	header header
	pairs  map[uint64][]byte
	sizes  map[int]int // layer offset -> layer byte size
}

// walkTrie decodes every layer of a serialized trie depth-first and
// checks the structural invariants along the way: no empty nodes, child
// pointers strictly ahead of their parent, values matched to set bits in
// ascending slice order.
func walkTrie(t *testing.T, buf []byte) decodedTrie {
	t.Helper()

	require.GreaterOrEqual(t, len(buf), headerSize)
	h, err := decodeHeader(binary.LittleEndian.Uint16(buf))
	require.NoError(t, err)

	var (
		body   = buf[headerSize:]
		width  = int(h.bitmaskSize)
		shift  = h.bitmaskSize.shiftBits()
		fanout = h.bitmaskSize.Fanout()
		result = decodedTrie{
			header: h,
			pairs:  make(map[uint64][]byte),
			sizes:  make(map[int]int),
		}
	)

	var walk func(offset, level int, prefix uint64)
	walk = func(offset, level int, prefix uint64) {
		_, seen := result.sizes[offset]
		require.False(t, seen, "layer at offset %d visited twice", offset)

		bitmask := body[offset : offset+width]
		entries := 0
		for slot := 0; slot < fanout; slot++ {
			if bitmask[slot>>3]&(1<<(slot&7)) == 0 {
				continue
			}
			key := prefix<<shift | uint64(slot)
			if level == 0 {
				start := offset + width + entries*int(h.valueSize)
				result.pairs[key] = body[start : start+int(h.valueSize)]
			} else {
				start := offset + width + entries*h.ptrSize
				child := int(decodePointer(body[start:start+h.ptrSize], h.ptrSize))
				require.Greater(t, child, offset, "child pointer must point forward")
				walk(child, level-1, key)
			}
			entries++
		}
		require.GreaterOrEqual(t, entries, 1, "empty layer at offset %d", offset)

		entrySize := int(h.valueSize)
		if level > 0 {
			entrySize = h.ptrSize
		}
		result.sizes[offset] = width + entries*entrySize
	}
	walk(0, h.levels-1, 0)

	// The buffer holds exactly the header plus the visited layers.
	total := headerSize
	for _, size := range result.sizes {
		total += size
	}
	require.Equal(t, len(buf), total, "buffer size must equal header plus layers")

	return result
}
