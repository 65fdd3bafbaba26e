package index

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-hamt/pkg/hamt"
	"github.com/dd0wney/cluso-hamt/pkg/logging"
	"github.com/dd0wney/cluso-hamt/pkg/metrics"
)

// Index is an opened index: the decoded trie plus the identity it was
// written with. Lookups are delegated to the embedded reader and, when
// a metrics registry is attached, recorded as hits and misses.
type Index struct {
	buildID uuid.UUID
	reader  *hamt.Reader
	metrics *metrics.Registry
}

// Read parses a framed index from r, verifying magic, version and
// checksum before handing the payload to the trie reader.
func Read(r io.Reader, opts ...Option) (*Index, error) {
	o := newOptions(opts)

	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("index: read header: %w", err)
	}
	if header.Magic != Magic {
		return nil, ErrBadMagic
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header.Version)
	}
	if header.Flags&^uint32(knownFlags) != 0 {
		return nil, fmt.Errorf("%w: %#x", ErrUnknownFlags, header.Flags)
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("index: read payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != header.Checksum {
		return nil, ErrChecksum
	}

	trie := payload
	if header.Flags&FlagSnappy != 0 {
		var err error
		if trie, err = snappy.Decode(nil, payload); err != nil {
			return nil, fmt.Errorf("index: decompress payload: %w", err)
		}
	}

	reader, err := hamt.NewReader(trie)
	if err != nil {
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.RecordOpen(len(trie))
	}
	o.logger.Info("index opened",
		logging.Component("index"),
		logging.BuildID(uuid.UUID(header.BuildID).String()),
		logging.ByteSize(len(trie)),
		logging.Levels(reader.Levels()),
	)

	return &Index{
		buildID: header.BuildID,
		reader:  reader,
		metrics: o.metrics,
	}, nil
}

// ReadFile opens and parses an index file.
func ReadFile(path string, opts ...Option) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("index: open file: %w", err)
	}
	defer file.Close()

	return Read(file, opts...)
}

// BuildID returns the identity recorded when the index was written.
func (ix *Index) BuildID() uuid.UUID {
	return ix.buildID
}

// Reader returns the underlying trie reader.
func (ix *Index) Reader() *hamt.Reader {
	return ix.reader
}

// Exists reports whether key has an entry.
func (ix *Index) Exists(key uint64) bool {
	ok := ix.reader.Exists(key)
	if ix.metrics != nil {
		ix.metrics.RecordLookup(ok)
	}
	return ok
}

// Lookup returns the value stored for key. The returned slice aliases
// the index payload; callers must not modify it.
func (ix *Index) Lookup(key uint64) ([]byte, bool) {
	v, ok := ix.reader.Lookup(key)
	if ix.metrics != nil {
		ix.metrics.RecordLookup(ok)
	}
	return v, ok
}

// Get returns the value stored for key, or def when the key is absent.
func (ix *Index) Get(key uint64, def []byte) []byte {
	if v, ok := ix.Lookup(key); ok {
		return v
	}
	return def
}
