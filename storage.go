package lattice

import (
	"sort"

	"github.com/samber/lo"
)

// ChunkStorage is a keyed container from chunk address to chunk, the
// pluggable backing store of a ChunkMap. Addresses are chunk minimum corners,
// always a multiple of the map's chunk shape.
type ChunkStorage[T any, P Point[P]] interface {
	// Chunk returns the chunk stored at addr, or nil if the address was
	// never materialized. Backends that keep chunks in a compressed form
	// restore them to residency first and may return a codec error.
	Chunk(addr P) (*Array[T, P], error)

	// ChunkOrNew returns the chunk at addr, calling create to materialize it
	// if the address is vacant.
	ChunkOrNew(addr P, create func() *Array[T, P]) (*Array[T, P], error)

	// Remove drops the chunk at addr, if any.
	Remove(addr P)

	// Len returns the number of occupied chunk addresses.
	Len() int

	// Addrs returns every occupied chunk address in ascending order.
	Addrs() []P
}

// MapStorage is the simple ChunkStorage: an unbounded map with one entry per
// occupied chunk address and no eviction. It never returns an error.
type MapStorage[T any, P Point[P]] struct {
	chunks map[P]*Array[T, P]
}

// NewMapStorage returns an empty MapStorage.
func NewMapStorage[T any, P Point[P]]() *MapStorage[T, P] {
	return &MapStorage[T, P]{chunks: map[P]*Array[T, P]{}}
}

// Chunk returns the chunk stored at addr, or nil if absent.
func (s *MapStorage[T, P]) Chunk(addr P) (*Array[T, P], error) {
	return s.chunks[addr], nil
}

// ChunkOrNew returns the chunk at addr, materializing it with create if
// absent.
func (s *MapStorage[T, P]) ChunkOrNew(addr P, create func() *Array[T, P]) (*Array[T, P], error) {
	chunk, ok := s.chunks[addr]
	if !ok {
		chunk = create()
		s.chunks[addr] = chunk
	}
	return chunk, nil
}

// Remove drops the chunk at addr, if any.
func (s *MapStorage[T, P]) Remove(addr P) {
	delete(s.chunks, addr)
}

// Len returns the number of occupied chunk addresses.
func (s *MapStorage[T, P]) Len() int {
	return len(s.chunks)
}

// Addrs returns every occupied chunk address in ascending order.
func (s *MapStorage[T, P]) Addrs() []P {
	return sortAddrs(lo.Keys(s.chunks))
}

func sortAddrs[P Point[P]](addrs []P) []P {
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})
	return addrs
}
