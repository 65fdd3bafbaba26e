// Package index frames serialized tries into self-describing files:
// a fixed header carrying a build identity and integrity checksum,
// followed by the (optionally snappy-compressed) trie payload.
package index

import (
	"errors"
)

// Index file format:
//   [Header: magic(4) | version(4) | flags(4) | build_id(16) | payload_len(8) | crc32(4)]
//   [Payload: trie bytes, snappy-compressed when FlagSnappy is set]

const (
	Magic   = 0x48414D54 // "HAMT"
	Version = 1

	// FlagSnappy marks a snappy-compressed payload
	FlagSnappy = 1 << 0

	knownFlags = FlagSnappy
)

// FileHeader is the fixed-size preamble of an index file, written
// little-endian.
type FileHeader struct {
	Magic      uint32
	Version    uint32
	Flags      uint32
	BuildID    [16]byte
	PayloadLen uint64
	Checksum   uint32 // CRC-32 (IEEE) of the stored payload
}

// Common sentinel errors
var (
	ErrBadMagic     = errors.New("index: bad magic")
	ErrVersion      = errors.New("index: unsupported format version")
	ErrUnknownFlags = errors.New("index: unknown header flags")
	ErrChecksum     = errors.New("index: payload checksum mismatch")
)
