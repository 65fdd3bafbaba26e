package hamt

import (
	"encoding/binary"
	"fmt"
)

// Builder serializes sorted key/value pairs into a static trie buffer.
// A Builder carries only the bitmask and value widths shared by every
// build; it keeps no state between calls to Dump and may be reused.
type Builder struct {
	bitmaskSize BitmaskSize
	valueSize   ValueSize
}

// NewBuilder creates a builder for the given bitmask and value widths.
func NewBuilder(bitmaskSize BitmaskSize, valueSize ValueSize) (*Builder, error) {
	if !bitmaskSize.Valid() {
		return nil, &CodecError{Op: "configure", Index: -1, Cause: ErrBitmaskSize}
	}
	if !valueSize.Valid() {
		return nil, &CodecError{Op: "configure", Index: -1, Cause: ErrValueSize}
	}
	return &Builder{bitmaskSize: bitmaskSize, valueSize: valueSize}, nil
}

// BitmaskSize returns the configured bitmask width.
func (b *Builder) BitmaskSize() BitmaskSize {
	return b.bitmaskSize
}

// ValueSize returns the configured value width.
func (b *Builder) ValueSize() ValueSize {
	return b.valueSize
}

// levels returns the smallest level count whose slices cover maxKey.
func (b *Builder) levels(maxKey uint64) int {
	levels := 1
	for key := maxKey >> b.bitmaskSize.shiftBits(); key != 0; key >>= b.bitmaskSize.shiftBits() {
		levels++
	}
	return levels
}

// Dump serializes keys and their values into a single buffer.
//
// Keys must be strictly ascending and every value exactly the
// configured width; violations are rejected. An empty input produces an
// empty buffer, the canonical encoding of the empty map.
func (b *Builder) Dump(keys []uint64, values [][]byte) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, dumpError(-1, ErrKeyValueCount)
	}
	if len(keys) == 0 {
		return []byte{}, nil
	}
	for i, v := range values {
		if len(v) != int(b.valueSize) {
			return nil, dumpError(i, ErrValueWidth)
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return nil, dumpError(i, ErrKeyOrder)
		}
	}

	var (
		shift  = b.bitmaskSize.shiftBits()
		mask   = b.bitmaskSize.shiftMask()
		levels = b.levels(keys[len(keys)-1])
		root   = newLayer(b.bitmaskSize)
		layers = []*layer{root}
		at     = make([]*layer, len(keys)) // layer each key currently resides in
	)
	for i := range at {
		at[i] = root
	}

	// Walk levels from the most-significant slice down to the leaves.
	// Because keys are ascending, all keys sharing a node at some level
	// are contiguous, and a node's child for the current slice is always
	// the most recently created one; no searching is ever needed.
	for level := levels; level > 0; level-- {
		var prev *layer
		for i, key := range keys {
			slice := key >> (uint(level-1) * shift) & mask
			node := at[i]
			if level == 1 {
				node.values = append(node.values, values[i])
			} else {
				child := node.child(slice)
				if child != prev {
					layers = append(layers, child)
				}
				prev = child
				at[i] = child
			}
			node.setBit(slice)
		}
	}

	ptrSize, err := pointerSize(layers, b.valueSize)
	if err != nil {
		return nil, err
	}

	// Layers were appended level by level, each parent before its
	// children; assigning offsets in the same order keeps every child
	// pointer strictly ahead of its parent.
	var total uint64
	for _, l := range layers {
		l.offset = uint32(total)
		total += uint64(l.size(ptrSize, b.valueSize))
	}

	buf := make([]byte, 0, headerSize+total)
	h := header{levels: levels, bitmaskSize: b.bitmaskSize, ptrSize: ptrSize, valueSize: b.valueSize}
	buf = binary.LittleEndian.AppendUint16(buf, h.encode())
	for _, l := range layers {
		buf = l.appendTo(buf, ptrSize)
	}
	return buf, nil
}

// pointerSize picks the narrowest pointer width able to address every
// byte of the body those pointers produce.
func pointerSize(layers []*layer, valueSize ValueSize) (int, error) {
	for ps := 1; ps <= maxPointerSize; ps++ {
		limit := uint64(1) << (8 * ps)
		var total uint64
		fits := true
		for _, l := range layers {
			total += uint64(l.size(ps, valueSize))
			if total > limit {
				fits = false
				break
			}
		}
		if fits {
			return ps, nil
		}
	}
	return 0, dumpError(-1, ErrAddressSpace)
}

// layer is a trie node under construction. Exactly one of children or
// values is populated: leaves hold values, inner layers hold children.
// Layers exist only while Dump runs.
type layer struct {
	bitmask   []byte
	offset    uint32
	children  []*layer
	values    [][]byte
	lastSlice uint64 // slice of the most recently appended child
}

func newLayer(bitmaskSize BitmaskSize) *layer {
	return &layer{bitmask: make([]byte, bitmaskSize)}
}

func (l *layer) bit(slice uint64) bool {
	return l.bitmask[slice>>3]&(1<<(slice&7)) != 0
}

func (l *layer) setBit(slice uint64) {
	l.bitmask[slice>>3] |= 1 << (slice & 7)
}

// child returns the node the key with the given slice descends into,
// creating it on first use. A set bit must always belong to the last
// child appended; anything else means the keys were not ascending.
func (l *layer) child(slice uint64) *layer {
	if l.bit(slice) {
		if l.lastSlice != slice {
			panic(fmt.Sprintf("hamt: child slice %d does not match last appended slice %d", slice, l.lastSlice))
		}
		return l.children[len(l.children)-1]
	}
	c := &layer{bitmask: make([]byte, len(l.bitmask))}
	l.children = append(l.children, c)
	l.lastSlice = slice
	return c
}

func (l *layer) size(ptrSize int, valueSize ValueSize) int {
	return len(l.bitmask) + len(l.children)*ptrSize + len(l.values)*int(valueSize)
}

// appendTo emits the layer: the bitmask, then either all child pointers
// or all values, in ascending slice order.
func (l *layer) appendTo(dst []byte, ptrSize int) []byte {
	dst = append(dst, l.bitmask...)
	for _, c := range l.children {
		dst = appendPointer(dst, ptrSize, c.offset)
	}
	for _, v := range l.values {
		dst = append(dst, v...)
	}
	return dst
}
