// Package snappy provides the Snappy chunk codec for lattice cache storage.
//
// Codecs are mutually exclusive per build; link exactly one codec package so
// the configured compression stays unambiguous.
package snappy

import (
	"github.com/klauspost/compress/s2"
	"github.com/pkg/errors"

	"github.com/voxelkit/lattice"
)

// Codec compresses chunk payloads in the Snappy block format.
type Codec struct{}

// New returns a Snappy-backed lattice codec. The codec is stateless and safe
// to share.
func New() lattice.Codec {
	return Codec{}
}

// Compress returns the Snappy block encoding of src.
func (Codec) Compress(src []byte) ([]byte, error) {
	return s2.EncodeSnappy(nil, src), nil
}

// Decompress inflates src and verifies the decoded size matches expectedLen.
func (Codec) Decompress(src []byte, expectedLen int) ([]byte, error) {
	out, err := s2.Decode(nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "snappy decompress")
	}
	if len(out) != expectedLen {
		return nil, errors.Errorf("snappy decompress: got %d bytes, want %d", len(out), expectedLen)
	}
	return out, nil
}
