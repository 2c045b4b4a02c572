package lattice

// Codec is a pluggable byte-level compressor for chunk payloads, used by
// CacheStorage when a chunk leaves the resident set. Implementations must
// round-trip exactly: Decompress(Compress(b), len(b)) == b for any b.
//
// Codecs live in the codec/... subpackages; importing exactly one of them
// per build keeps the configured compression unambiguous.
type Codec interface {
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)

	// Decompress inflates src. expectedLen is the exact decoded size the
	// caller serialized; a result of any other length is corrupt and must be
	// reported as an error, never returned.
	Decompress(src []byte, expectedLen int) ([]byte, error)
}

// Scalar constrains the value types a CacheStorage can hold: fixed-width
// integers with a defined little-endian serialization. Richer per-point data
// is layered on top of a scalar chunk map with a TransformMap, palette style,
// instead of being stored per voxel.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}
