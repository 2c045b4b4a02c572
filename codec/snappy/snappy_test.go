package snappy

import (
	"bytes"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/voxelkit/lattice"
)

func TestRoundTrip(t *testing.T) {
	c := New()

	payloads := [][]byte{
		{},
		{0},
		bytes.Repeat([]byte{7}, 4096),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	// something incompressible too
	noise := make([]byte, 512)
	for i := range noise {
		noise[i] = byte(i*31 + 17)
	}
	payloads = append(payloads, noise)

	for _, payload := range payloads {
		blob, err := c.Compress(payload)
		test.That(t, err, test.ShouldBeNil)
		back, err := c.Decompress(blob, len(payload))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bytes.Equal(back, payload), test.ShouldBeTrue)
	}
}

func TestDecompressRejectsCorruptInput(t *testing.T) {
	c := New()
	_, err := c.Decompress([]byte{0xff, 0xfe, 0xfd}, 16)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecompressRejectsWrongLength(t *testing.T) {
	c := New()
	blob, err := c.Compress([]byte("abcdef"))
	test.That(t, err, test.ShouldBeNil)
	_, err = c.Decompress(blob, 5)
	test.That(t, err, test.ShouldNotBeNil)
}

// the cache storage compresses evicted chunks with this codec and restores
// them transparently on re-access.
func TestSnappyBackedCache(t *testing.T) {
	storage, err := lattice.NewCacheStorage[uint8](lattice.NewPoint3(4, 4, 4), 1, New(), golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	m, err := lattice.NewChunkMap[uint8, lattice.Point3](lattice.NewPoint3(4, 4, 4), 0, storage)
	test.That(t, err, test.ShouldBeNil)

	m.Set(lattice.NewPoint3(5, 1, 1), 7)
	m.Set(lattice.NewPoint3(0, 0, 0), 9) // evicts chunk (4,0,0)
	test.That(t, storage.Resident(), test.ShouldEqual, 1)
	test.That(t, storage.Compressed(), test.ShouldEqual, 1)

	test.That(t, m.At(lattice.NewPoint3(5, 1, 1)), test.ShouldEqual, 7)
	test.That(t, m.At(lattice.NewPoint3(0, 0, 0)), test.ShouldEqual, 9)
	test.That(t, storage.Stats().Decompressions, test.ShouldEqual, 2)
}
