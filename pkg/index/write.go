package index

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-hamt/pkg/config"
	"github.com/dd0wney/cluso-hamt/pkg/hamt"
	"github.com/dd0wney/cluso-hamt/pkg/logging"
)

// Write frames trie bytes and writes them to w, returning the build id
// recorded in the header.
func Write(w io.Writer, trie []byte, opts ...Option) (uuid.UUID, error) {
	return writeFramed(w, trie, newOptions(opts))
}

// WriteFile frames trie bytes into a file, syncing before close.
func WriteFile(path string, trie []byte, opts ...Option) (uuid.UUID, error) {
	file, err := os.Create(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("index: create file: %w", err)
	}

	id, err := writeFramed(file, trie, newOptions(opts))
	if err != nil {
		_ = file.Close()
		return uuid.Nil, err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return uuid.Nil, fmt.Errorf("index: sync file: %w", err)
	}
	if err := file.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("index: close file: %w", err)
	}
	return id, nil
}

// Build serializes keys and values per cfg and frames the result into w.
func Build(w io.Writer, keys []uint64, values [][]byte, cfg config.Config, opts ...Option) (uuid.UUID, error) {
	builder, err := hamt.NewBuilder(cfg.BitmaskWidth(), cfg.ValueWidth())
	if err != nil {
		return uuid.Nil, err
	}

	start := time.Now()
	trie, err := builder.Dump(keys, values)
	if err != nil {
		return uuid.Nil, err
	}
	elapsed := time.Since(start)

	if cfg.Compression {
		opts = append(opts, WithCompression())
	}
	o := newOptions(opts)
	if o.metrics != nil {
		o.metrics.RecordBuild(len(trie), elapsed)
	}
	o.logger.Info("index built",
		logging.Component("index"),
		logging.KeyCount(len(keys)),
		logging.ByteSize(len(trie)),
		logging.Latency(elapsed),
	)
	return writeFramed(w, trie, o)
}

// BuildFile is Build writing to a freshly created file.
func BuildFile(path string, keys []uint64, values [][]byte, cfg config.Config, opts ...Option) (uuid.UUID, error) {
	file, err := os.Create(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("index: create file: %w", err)
	}

	id, err := Build(file, keys, values, cfg, opts...)
	if err != nil {
		_ = file.Close()
		return uuid.Nil, err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return uuid.Nil, fmt.Errorf("index: sync file: %w", err)
	}
	if err := file.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("index: close file: %w", err)
	}
	return id, nil
}

// writeFramed emits the header and payload for an already-built trie.
func writeFramed(w io.Writer, trie []byte, o options) (uuid.UUID, error) {
	payload := trie
	var flags uint32
	if o.compress {
		payload = snappy.Encode(nil, trie)
		flags |= FlagSnappy
	}

	header := FileHeader{
		Magic:      Magic,
		Version:    Version,
		Flags:      flags,
		BuildID:    o.buildID,
		PayloadLen: uint64(len(payload)),
		Checksum:   crc32.ChecksumIEEE(payload),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return uuid.Nil, fmt.Errorf("index: write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return uuid.Nil, fmt.Errorf("index: write payload: %w", err)
	}

	o.logger.Debug("index written",
		logging.Component("index"),
		logging.BuildID(o.buildID.String()),
		logging.ByteSize(len(payload)),
		logging.Bool("compressed", o.compress),
	)
	return o.buildID, nil
}
