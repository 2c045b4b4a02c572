package lattice

import (
	"bytes"
	"container/list"
	"encoding/binary"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// CacheStorage is a ChunkStorage with a bounded resident set. At most
// capacity chunks are held as live arrays; when an access would exceed that,
// the least-recently-used resident chunk is serialized, compressed with the
// configured Codec and moved to an unbounded compressed store. Accessing a
// compressed address transparently decompresses it back to residency first,
// evicting another chunk if needed, and drops the blob.
//
// Eviction policy: capacity is checked before insertion, the victim is the
// least-recently-used resident chunk, and ties cannot arise because recency
// is an exact access order. Eviction and decompression run inline on the
// accessing goroutine.
//
// Invariant: an address touched at least once is present in exactly one of
// the resident set and the compressed store.
type CacheStorage[T Scalar, P Point[P]] struct {
	chunkShape P
	capacity   int
	codec      Codec
	logger     golog.Logger

	resident   map[P]*residentChunk[T, P]
	recency    *list.List // front is most recently used
	compressed map[P][]byte

	rawLen int // serialized byte length of one chunk

	hits           atomic.Int64
	misses         atomic.Int64
	evictions      atomic.Int64
	decompressions atomic.Int64
}

type residentChunk[T Scalar, P Point[P]] struct {
	addr  P
	chunk *Array[T, P]
	elem  *list.Element
}

// CacheStats is a snapshot of CacheStorage access counters.
type CacheStats struct {
	// Hits counts accesses served from the resident set.
	Hits int64
	// Misses counts accesses to addresses never materialized.
	Misses int64
	// Evictions counts chunks compressed out of the resident set.
	Evictions int64
	// Decompressions counts chunks restored from the compressed store.
	Decompressions int64
}

// NewCacheStorage returns a caching chunk storage for chunks of the given
// shape, holding at most capacity resident chunks and compressing evicted
// ones with codec. The chunk shape must match the owning ChunkMap's.
func NewCacheStorage[T Scalar, P Point[P]](
	chunkShape P,
	capacity int,
	codec Codec,
	logger golog.Logger,
) (*CacheStorage[T, P], error) {
	var zero P
	if !chunkShape.Sub(zero.splat(1)).NonNegative() {
		return nil, errors.Errorf("chunk shape %v must be positive on every axis", chunkShape)
	}
	if capacity < 1 {
		return nil, errors.Errorf("cache capacity must be at least 1, got %d", capacity)
	}
	if codec == nil {
		return nil, errors.New("cache codec is nil")
	}
	var v T
	return &CacheStorage[T, P]{
		chunkShape: chunkShape,
		capacity:   capacity,
		codec:      codec,
		logger:     logger,
		resident:   map[P]*residentChunk[T, P]{},
		recency:    list.New(),
		compressed: map[P][]byte{},
		rawLen:     chunkShape.Volume() * binary.Size(v),
	}, nil
}

// Chunk returns the chunk stored at addr, or nil if the address was never
// materialized. A compressed chunk is restored to residency first; a corrupt
// blob surfaces as an error and leaves every other chunk untouched.
func (s *CacheStorage[T, P]) Chunk(addr P) (*Array[T, P], error) {
	if rc, ok := s.resident[addr]; ok {
		s.hits.Inc()
		s.recency.MoveToFront(rc.elem)
		return rc.chunk, nil
	}
	if blob, ok := s.compressed[addr]; ok {
		return s.thaw(addr, blob)
	}
	s.misses.Inc()
	return nil, nil
}

// ChunkOrNew returns the chunk at addr, materializing it with create if the
// address is vacant. Materializing may evict another chunk to respect the
// capacity bound.
func (s *CacheStorage[T, P]) ChunkOrNew(addr P, create func() *Array[T, P]) (*Array[T, P], error) {
	chunk, err := s.Chunk(addr)
	if err != nil || chunk != nil {
		return chunk, err
	}
	chunk = create()
	if err := s.insert(addr, chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

// Remove drops the chunk at addr, resident or compressed.
func (s *CacheStorage[T, P]) Remove(addr P) {
	if rc, ok := s.resident[addr]; ok {
		s.recency.Remove(rc.elem)
		delete(s.resident, addr)
	}
	delete(s.compressed, addr)
}

// Len returns the number of occupied chunk addresses, resident and
// compressed.
func (s *CacheStorage[T, P]) Len() int {
	return len(s.resident) + len(s.compressed)
}

// Resident returns the number of chunks currently held as live arrays.
func (s *CacheStorage[T, P]) Resident() int {
	return len(s.resident)
}

// Compressed returns the number of chunks currently held as compressed
// blobs.
func (s *CacheStorage[T, P]) Compressed() int {
	return len(s.compressed)
}

// Addrs returns every occupied chunk address, resident and compressed, in
// ascending order.
func (s *CacheStorage[T, P]) Addrs() []P {
	addrs := lo.Keys(s.resident)
	addrs = append(addrs, lo.Keys(s.compressed)...)
	return sortAddrs(addrs)
}

// CompressAll evicts every resident chunk into the compressed store, for
// shedding memory between frames. Chunks whose compression fails stay
// resident; their errors are combined and returned.
func (s *CacheStorage[T, P]) CompressAll() error {
	var err error
	for _, addr := range lo.Keys(s.resident) {
		err = multierr.Append(err, s.evict(s.resident[addr].elem))
	}
	return err
}

// Stats returns a snapshot of the access counters.
func (s *CacheStorage[T, P]) Stats() CacheStats {
	return CacheStats{
		Hits:           s.hits.Load(),
		Misses:         s.misses.Load(),
		Evictions:      s.evictions.Load(),
		Decompressions: s.decompressions.Load(),
	}
}

// thaw decompresses blob back into a resident chunk at addr.
func (s *CacheStorage[T, P]) thaw(addr P, blob []byte) (*Array[T, P], error) {
	raw, err := s.codec.Decompress(blob, s.rawLen)
	if err != nil {
		return nil, errors.Wrapf(err, "decompressing chunk %v", addr)
	}
	values, err := deserializeValues[T](raw, s.chunkShape.Volume())
	if err != nil {
		return nil, errors.Wrapf(err, "decoding chunk %v", addr)
	}
	chunk, err := ArrayFromBuffer(NewExtent(addr, s.chunkShape), values)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding chunk %v", addr)
	}
	if err := s.insert(addr, chunk); err != nil {
		return nil, err
	}
	delete(s.compressed, addr)
	s.decompressions.Inc()
	if s.logger != nil {
		s.logger.Debugf("restored chunk %v (%d resident)", addr, len(s.resident))
	}
	return chunk, nil
}

// insert adds a chunk to the resident set, evicting least-recently-used
// chunks first so the capacity bound holds after insertion.
func (s *CacheStorage[T, P]) insert(addr P, chunk *Array[T, P]) error {
	for len(s.resident) >= s.capacity {
		if err := s.evictOldest(); err != nil {
			return err
		}
	}
	rc := &residentChunk[T, P]{addr: addr, chunk: chunk}
	rc.elem = s.recency.PushFront(rc)
	s.resident[addr] = rc
	return nil
}

func (s *CacheStorage[T, P]) evictOldest() error {
	return s.evict(s.recency.Back())
}

func (s *CacheStorage[T, P]) evict(elem *list.Element) error {
	rc := elem.Value.(*residentChunk[T, P])
	blob, err := s.codec.Compress(serializeValues(rc.chunk.Values()))
	if err != nil {
		return errors.Wrapf(err, "compressing chunk %v", rc.addr)
	}
	s.recency.Remove(elem)
	delete(s.resident, rc.addr)
	s.compressed[rc.addr] = blob
	s.evictions.Inc()
	if s.logger != nil {
		s.logger.Debugf("evicted chunk %v (%d resident, %d compressed)", rc.addr, len(s.resident), len(s.compressed))
	}
	return nil
}

// serializeValues encodes a chunk buffer as little-endian bytes.
func serializeValues[T Scalar](values []T) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, binary.Size(values)))
	// writing fixed-size values into a bytes.Buffer cannot fail
	goutils.UncheckedError(binary.Write(buf, binary.LittleEndian, values))
	return buf.Bytes()
}

// deserializeValues decodes n little-endian values.
func deserializeValues[T Scalar](raw []byte, n int) ([]T, error) {
	values := make([]T, n)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, values); err != nil {
		return nil, errors.Wrap(err, "decoding chunk values")
	}
	return values, nil
}
