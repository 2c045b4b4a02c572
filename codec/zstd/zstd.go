// Package zstd provides the zstd chunk codec for lattice cache storage.
//
// Codecs are mutually exclusive per build; link exactly one codec package so
// the configured compression stays unambiguous.
package zstd

import (
	kzstd "github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/voxelkit/lattice"
)

// Codec compresses chunk payloads with zstd, reusing a single encoder and
// decoder pair across calls.
type Codec struct {
	enc *kzstd.Encoder
	dec *kzstd.Decoder
}

// New returns a zstd-backed lattice codec. Call Close when done with it.
func New() (*Codec, error) {
	enc, err := kzstd.NewWriter(nil, kzstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, errors.Wrap(err, "zstd encoder")
	}
	dec, err := kzstd.NewReader(nil, kzstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, multierr.Append(errors.Wrap(err, "zstd decoder"), enc.Close())
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Compress returns the zstd encoding of src.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, nil), nil
}

// Decompress inflates src and verifies the decoded size matches expectedLen.
func (c *Codec) Decompress(src []byte, expectedLen int) ([]byte, error) {
	out, err := c.dec.DecodeAll(src, make([]byte, 0, expectedLen))
	if err != nil {
		return nil, errors.Wrap(err, "zstd decompress")
	}
	if len(out) != expectedLen {
		return nil, errors.Errorf("zstd decompress: got %d bytes, want %d", len(out), expectedLen)
	}
	return out, nil
}

// Close releases the underlying encoder and decoder.
func (c *Codec) Close() error {
	err := c.enc.Close()
	c.dec.Close()
	return err
}

var _ lattice.Codec = (*Codec)(nil)
