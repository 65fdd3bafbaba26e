package hamt

import (
	"encoding/binary"
	"math"
)

// Typed lookup variants mirroring the Builder's typed Dump methods.
// Each reports false when the key is absent or the reader's value width
// does not match the requested type.

// Uint8 returns the byte-wide value stored for key.
func (r *Reader) Uint8(key uint64) (uint8, bool) {
	if r.valueSize != Value1 {
		return 0, false
	}
	v, ok := r.Lookup(key)
	if !ok {
		return 0, false
	}
	return v[0], true
}

// Uint16 returns the 2-byte value stored for key.
func (r *Reader) Uint16(key uint64) (uint16, bool) {
	if r.valueSize != Value2 {
		return 0, false
	}
	v, ok := r.Lookup(key)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(v), true
}

// Uint32 returns the 4-byte value stored for key.
func (r *Reader) Uint32(key uint64) (uint32, bool) {
	if r.valueSize != Value4 {
		return 0, false
	}
	v, ok := r.Lookup(key)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v), true
}

// Uint64 returns the 8-byte value stored for key.
func (r *Reader) Uint64(key uint64) (uint64, bool) {
	if r.valueSize != Value8 {
		return 0, false
	}
	v, ok := r.Lookup(key)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(v), true
}

// Float32 returns the float32 value stored for key.
func (r *Reader) Float32(key uint64) (float32, bool) {
	v, ok := r.Uint32(key)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

// Float64 returns the float64 value stored for key.
func (r *Reader) Float64(key uint64) (float64, bool) {
	v, ok := r.Uint64(key)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(v), true
}
