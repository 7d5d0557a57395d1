// Package snapshot serializes trained clustering models.
//
// # Format
//
// A snapshot is a small self-describing binary envelope (little endian):
//
//	magic        [4]byte  "CMSN"
//	version      uint8
//	compression  uint8    none | lz4 | zstd
//	codecLen     uint8
//	codec        [codecLen]byte  codec name, e.g. "json"
//	rawSize      uint32   uncompressed payload size
//	checksum     uint32   CRC32-C of the uncompressed payload
//	payloadSize  uint32
//	payload      [payloadSize]byte
//
// The payload is the codec encoding of a Record.
package snapshot
