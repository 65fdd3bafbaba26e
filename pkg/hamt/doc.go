// Package hamt implements a build-once, read-many mapping from uint64
// keys to fixed-width values, serialized as a single contiguous buffer.
//
// Buffer format:
//
//	[Header: 2 bytes, little-endian]
//	[Layer 0][Layer 1]...[Layer M-1]
//
// Header bit layout (LSB first):
//
//	|3b-|b|2b|2b|3b-|-5b--|
//	  |  |  |  |  |   |
//	  |  |  |  |  |   Number of levels
//	  |  |  |  |  Bitmask size code
//	  |  |  |  Pointer size minus one
//	  |  |  Value size code
//	  |  Variable value size flag (reserved)
//	  Reserved
//
// Each layer is a bitmask followed by either child pointers (inner
// layers) or values (leaves), packed in ascending order of set bits.
// Pointers are byte offsets relative to the first byte after the
// header; the root layer sits at offset 0 and layers are emitted level
// by level from the root down, so every pointer points forward.
//
// The Builder produces the buffer from a strictly ascending key
// sequence; the Reader resolves point lookups against the raw bytes
// using popcount rank, without materializing any nodes.
package hamt
