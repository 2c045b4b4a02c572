package lattice

import (
	"github.com/pkg/errors"
)

// ChunkMap partitions the infinite lattice into fixed-shape chunks, each a
// dense Array held by a pluggable ChunkStorage. Reads of points in chunks
// that were never written resolve to the map's ambient value without
// allocating; the first write to any point of a chunk materializes the whole
// chunk, default-filled, exactly once.
//
// Chunk shapes are powers of two per axis so chunk addresses come from a
// masked AND rather than division.
//
// Storage errors (a corrupt compressed blob in a caching backend) are fatal
// to the triggering access and surface as a panic carrying the wrapped
// error; absence is never an error.
type ChunkMap[T any, P Point[P]] struct {
	chunkShape P
	shift      P // per-axis log2 of chunkShape
	mask       P // -chunkShape; AND with it floors to the chunk base
	ambient    T
	storage    ChunkStorage[T, P]
}

// ChunkMap2 is a ChunkMap over the 2D lattice.
type ChunkMap2[T any] = ChunkMap[T, Point2]

// ChunkMap3 is a ChunkMap over the 3D lattice.
type ChunkMap3[T any] = ChunkMap[T, Point3]

// NewChunkMap returns a chunk map with the given chunk shape, ambient value
// and backing storage. Every component of chunkShape must be a positive power
// of two.
func NewChunkMap[T any, P Point[P]](chunkShape P, ambient T, storage ChunkStorage[T, P]) (*ChunkMap[T, P], error) {
	shift, ok := chunkShape.log2()
	if !ok {
		return nil, errors.Errorf("chunk shape %v must be a positive power of two on every axis", chunkShape)
	}
	if storage == nil {
		return nil, errors.New("chunk storage is nil")
	}
	return &ChunkMap[T, P]{
		chunkShape: chunkShape,
		shift:      shift,
		mask:       chunkShape.MulScalar(-1),
		ambient:    ambient,
		storage:    storage,
	}, nil
}

// ChunkShape returns the shape shared by every chunk in the map.
func (m *ChunkMap[T, P]) ChunkShape() P {
	return m.chunkShape
}

// Ambient returns the value reported for points in vacant chunks.
func (m *ChunkMap[T, P]) Ambient() T {
	return m.ambient
}

// Storage returns the backing chunk storage.
func (m *ChunkMap[T, P]) Storage() ChunkStorage[T, P] {
	return m.storage
}

// ChunkAddr returns the address (minimum corner) of the chunk containing p.
func (m *ChunkMap[T, P]) ChunkAddr(p P) P {
	return p.and(m.mask)
}

// ChunkExtent returns the extent of the chunk at addr.
func (m *ChunkMap[T, P]) ChunkExtent(addr P) Extent[P] {
	return NewExtent(addr, m.chunkShape)
}

// At returns the value at p, or the ambient value if p's chunk was never
// materialized. No chunk is allocated by a read.
func (m *ChunkMap[T, P]) At(p P) T {
	chunk := m.chunk(m.ChunkAddr(p))
	if chunk == nil {
		return m.ambient
	}
	return chunk.At(p)
}

// Mut returns a pointer to the value at p, materializing p's chunk,
// default-filled with the ambient value, if it was vacant.
func (m *ChunkMap[T, P]) Mut(p P) *T {
	return m.chunkForWrite(m.ChunkAddr(p)).Mut(p)
}

// Set stores v at p, materializing p's chunk if it was vacant.
func (m *ChunkMap[T, P]) Set(p P, v T) {
	*m.Mut(p) = v
}

// Iterate visits every point of extent exactly once in a deterministic
// order: overlapping chunks in ascending address order, row-major within
// each chunk's overlap. Points in vacant chunks are visited with the ambient
// value without materializing anything. Iteration stops early if fn returns
// false.
func (m *ChunkMap[T, P]) Iterate(extent Extent[P], fn func(p P, v T) bool) {
	m.eachOverlappingAddr(extent, func(addr P) bool {
		sub := extent.Intersect(m.ChunkExtent(addr))
		chunk := m.chunk(addr)
		if chunk == nil {
			return sub.iterate(func(p P) bool {
				return fn(p, m.ambient)
			})
		}
		stopped := false
		chunk.Iterate(sub, func(p P, v T) bool {
			stopped = !fn(p, v)
			return !stopped
		})
		return !stopped
	})
}

// IterateMut visits every point of extent with a mutable handle,
// materializing every overlapping chunk.
func (m *ChunkMap[T, P]) IterateMut(extent Extent[P], fn func(p P, v *T) bool) {
	m.eachOverlappingAddr(extent, func(addr P) bool {
		sub := extent.Intersect(m.ChunkExtent(addr))
		stopped := false
		m.chunkForWrite(addr).IterateMut(sub, func(p P, v *T) bool {
			stopped = !fn(p, v)
			return !stopped
		})
		return !stopped
	})
}

// Fill writes v to every point of extent, filling whole chunks in one pass
// when the extent covers them entirely.
func (m *ChunkMap[T, P]) Fill(extent Extent[P], v T) {
	m.eachOverlappingAddr(extent, func(addr P) bool {
		chunkExtent := m.ChunkExtent(addr)
		sub := extent.Intersect(chunkExtent)
		chunk := m.chunkForWrite(addr)
		if sub.NumPoints() == chunkExtent.NumPoints() {
			chunk.Fill(v)
			return true
		}
		sub.iterate(func(p P) bool {
			chunk.Set(p, v)
			return true
		})
		return true
	})
}

// EachChunk visits every occupied chunk in ascending address order, stopping
// early if fn returns false. Only chunks actually present in storage are
// visited, so algorithms that skip empty space stay sub-linear in world
// size. With a caching backend, compressed chunks are restored to residency
// as they are visited.
func (m *ChunkMap[T, P]) EachChunk(fn func(addr P, chunk *Array[T, P]) bool) {
	for _, addr := range m.storage.Addrs() {
		chunk := m.chunk(addr)
		if chunk == nil {
			continue
		}
		if !fn(addr, chunk) {
			return
		}
	}
}

// eachOverlappingAddr visits the addresses of every chunk overlapping extent
// in ascending (row-major) order.
func (m *ChunkMap[T, P]) eachOverlappingAddr(extent Extent[P], fn func(addr P) bool) {
	if extent.IsEmpty() {
		return
	}
	var zero P
	one := zero.splat(1)
	lo := m.ChunkAddr(extent.Min()).shr(m.shift)
	hi := m.ChunkAddr(extent.Max().Sub(one)).shr(m.shift)
	NewExtent(lo, hi.Sub(lo).Add(one)).iterate(func(idx P) bool {
		return fn(idx.shl(m.shift))
	})
}

func (m *ChunkMap[T, P]) chunk(addr P) *Array[T, P] {
	chunk, err := m.storage.Chunk(addr)
	if err != nil {
		panic(errors.Wrapf(err, "lattice: access to chunk %v failed", addr))
	}
	return chunk
}

func (m *ChunkMap[T, P]) chunkForWrite(addr P) *Array[T, P] {
	chunk, err := m.storage.ChunkOrNew(addr, func() *Array[T, P] {
		return NewArray(m.ChunkExtent(addr), m.ambient)
	})
	if err != nil {
		panic(errors.Wrapf(err, "lattice: access to chunk %v failed", addr))
	}
	return chunk
}
