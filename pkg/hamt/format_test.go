package hamt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeCodes(t *testing.T) {
	cases := []struct {
		width uint8
		code  uint16
	}{
		{1, 0},
		{2, 1},
		{4, 2},
		{8, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, BitmaskSize(c.width).encode(), "bitmask width %d", c.width)
		assert.Equal(t, c.code, ValueSize(c.width).encode(), "value width %d", c.width)
		assert.Equal(t, BitmaskSize(c.width), decodeBitmaskSize(c.code))
		assert.Equal(t, ValueSize(c.width), decodeValueSize(c.code))
	}
}

func TestBitmaskSizeShift(t *testing.T) {
	cases := []struct {
		size  BitmaskSize
		shift uint
		mask  uint64
	}{
		{Bitmask1, 3, 0x07},
		{Bitmask2, 4, 0x0F},
		{Bitmask4, 5, 0x1F},
		{Bitmask8, 6, 0x3F},
	}
	for _, c := range cases {
		assert.Equal(t, c.shift, c.size.shiftBits())
		assert.Equal(t, c.mask, c.size.shiftMask())
		assert.Equal(t, int(c.size)*8, c.size.Fanout())
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, bm := range []BitmaskSize{Bitmask1, Bitmask2, Bitmask4, Bitmask8} {
		for _, vs := range []ValueSize{Value1, Value2, Value4, Value8} {
			for ptr := 1; ptr <= 4; ptr++ {
				for _, levels := range []int{1, 2, 11, 22} {
					in := header{levels: levels, bitmaskSize: bm, ptrSize: ptr, valueSize: vs}
					out, err := decodeHeader(in.encode())
					require.NoError(t, err)
					assert.Equal(t, in, out)
				}
			}
		}
	}
}

func TestHeaderKnownEncoding(t *testing.T) {
	// Single level, 1-byte bitmask, 1-byte pointers, 1-byte values.
	h := header{levels: 1, bitmaskSize: Bitmask1, ptrSize: 1, valueSize: Value1}
	assert.Equal(t, uint16(0x0001), h.encode())

	// Two levels, 4-byte bitmask, 2-byte pointers, 8-byte values.
	h = header{levels: 2, bitmaskSize: Bitmask4, ptrSize: 2, valueSize: Value8}
	assert.Equal(t, uint16(2|2<<5|1<<8|3<<10), h.encode())
}

func TestDecodeHeaderRejectsVariableValueFlag(t *testing.T) {
	raw := uint16(1 | 1<<variableValueSizeOffset)
	_, err := decodeHeader(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVariableValueSize)
}

func TestDecodeHeaderRejectsReservedBits(t *testing.T) {
	for _, bit := range []uint{13, 14, 15} {
		raw := uint16(1 | 1<<bit)
		_, err := decodeHeader(raw)
		require.Error(t, err, "bit %d", bit)
		assert.ErrorIs(t, err, ErrReservedBits)
	}
}

func TestDecodeHeaderRejectsZeroLevels(t *testing.T) {
	_, err := decodeHeader(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLevels)
}

func TestDecodeHeaderRejectsBadBitmaskCode(t *testing.T) {
	for code := uint16(4); code <= 7; code++ {
		raw := uint16(1) | code<<bitmaskSizeOffset
		_, err := decodeHeader(raw)
		require.Error(t, err, "code %d", code)
		assert.ErrorIs(t, err, ErrBitmaskSize)
	}
}

func TestPointerCodec(t *testing.T) {
	cases := []struct {
		size    int
		offsets []uint32
	}{
		{1, []uint32{0, 1, 0x7F, 0xFF}},
		{2, []uint32{0, 0x100, 0xFFFF}},
		{3, []uint32{0, 0x10000, 0xFFFFFF}},
		{4, []uint32{0, 0x1000000, 0xFFFFFFFF}},
	}
	for _, c := range cases {
		for _, offset := range c.offsets {
			encoded := appendPointer(nil, c.size, offset)
			require.Len(t, encoded, c.size)
			assert.Equal(t, offset, decodePointer(encoded, c.size))
		}
	}
}

func TestPointerCodecLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{0x34, 0x12, 0x00}, appendPointer(nil, 3, 0x1234))
	assert.Equal(t, uint32(0x00A1B2C3), decodePointer([]byte{0xC3, 0xB2, 0xA1}, 3))
}
