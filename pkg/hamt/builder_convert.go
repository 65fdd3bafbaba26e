package hamt

import (
	"encoding/binary"
	"math"
)

// Typed Dump variants for value types with natural fixed widths. Each
// checks that the builder was configured with the matching width and
// encodes values little-endian.

// DumpUint8 serializes byte-wide values.
func (b *Builder) DumpUint8(keys []uint64, values []uint8) ([]byte, error) {
	if b.valueSize != Value1 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = []byte{v}
	}
	return b.Dump(keys, raw)
}

// DumpUint16 serializes 2-byte values.
func (b *Builder) DumpUint16(keys []uint64, values []uint16) ([]byte, error) {
	if b.valueSize != Value2 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = binary.LittleEndian.AppendUint16(nil, v)
	}
	return b.Dump(keys, raw)
}

// DumpUint32 serializes 4-byte values.
func (b *Builder) DumpUint32(keys []uint64, values []uint32) ([]byte, error) {
	if b.valueSize != Value4 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = binary.LittleEndian.AppendUint32(nil, v)
	}
	return b.Dump(keys, raw)
}

// DumpUint64 serializes 8-byte values.
func (b *Builder) DumpUint64(keys []uint64, values []uint64) ([]byte, error) {
	if b.valueSize != Value8 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = binary.LittleEndian.AppendUint64(nil, v)
	}
	return b.Dump(keys, raw)
}

// DumpFloat32 serializes float32 values via their IEEE-754 bit pattern.
func (b *Builder) DumpFloat32(keys []uint64, values []float32) ([]byte, error) {
	if b.valueSize != Value4 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
	}
	return b.Dump(keys, raw)
}

// DumpFloat64 serializes float64 values via their IEEE-754 bit pattern.
func (b *Builder) DumpFloat64(keys []uint64, values []float64) ([]byte, error) {
	if b.valueSize != Value8 {
		return nil, dumpError(-1, ErrValueWidth)
	}
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
	}
	return b.Dump(keys, raw)
}
