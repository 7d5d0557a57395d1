package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/hupe1980/cosmeans/codec"
)

// Version is the current format version.
const Version uint8 = 1

var magic = [4]byte{'C', 'M', 'S', 'N'}

var (
	// ErrCorrupt is returned when a snapshot fails structural or checksum validation.
	ErrCorrupt = errors.New("snapshot: corrupt data")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrUnknownCodec is returned when the snapshot names a codec that is not available.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrUnsupportedCompression is returned for an unknown compression kind.
	ErrUnsupportedCompression = errors.New("snapshot: unsupported compression")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Record is the persisted form of a model.
type Record struct {
	Centroids  [][]float64 `json:"centroids"`
	Status     string      `json:"status"`
	Iterations int         `json:"iterations"`
	Cohesion   float64     `json:"cohesion"`
	Normalized bool        `json:"normalized"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Options configures Encode.
type Options struct {
	Codec       codec.Codec
	Compression Compression
}

// DefaultOptions returns the JSON codec with ZSTD compression.
func DefaultOptions() Options {
	return Options{
		Codec:       codec.Default,
		Compression: CompressionZSTD,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithCodec sets the payload codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c == nil {
			c = codec.Default
		}
		o.Codec = c
	}
}

// WithCompression sets the payload compression.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

const fixedHeaderSize = 4 + 1 + 1 + 1

// MaxRawSize is the largest uncompressed record Encode writes and Decode
// accepts.
const MaxRawSize = 1 << 30

// Encode serializes rec into a snapshot envelope.
func Encode(rec *Record, optFns ...Option) ([]byte, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	name := opts.Codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return nil, fmt.Errorf("%w: invalid codec name %q", ErrUnknownCodec, name)
	}

	raw, err := opts.Codec.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode record: %w", err)
	}
	if len(raw) > MaxRawSize {
		return nil, fmt.Errorf("snapshot: record of %d bytes exceeds %d", len(raw), MaxRawSize)
	}

	payload, used, err := compress(raw, opts.Compression)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, fixedHeaderSize+len(name)+12+len(payload))
	out = append(out, magic[:]...)
	out = append(out, Version, byte(used), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(raw)))
	out = binary.LittleEndian.AppendUint32(out, crc32.Checksum(raw, castagnoli))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	return out, nil
}

// Decode parses a snapshot envelope produced by Encode.
func Decode(data []byte) (*Record, error) {
	if len(data) < fixedHeaderSize {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if [4]byte(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[4]; v == 0 || v > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(data[5])
	nameLen := int(data[6])
	pos := fixedHeaderSize

	if len(data) < pos+nameLen+12 {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	name := string(data[pos : pos+nameLen])
	pos += nameLen

	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	rawSize := int(binary.LittleEndian.Uint32(data[pos:]))
	sum := binary.LittleEndian.Uint32(data[pos+4:])
	payloadSize := int(binary.LittleEndian.Uint32(data[pos+8:]))
	pos += 12

	if len(data)-pos != payloadSize {
		return nil, fmt.Errorf("%w: payload size %d, have %d bytes", ErrCorrupt, payloadSize, len(data)-pos)
	}

	raw, err := decompress(data[pos:], comp, rawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if crc32.Checksum(raw, castagnoli) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	var rec Record
	if err := c.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &rec, nil
}
