// Package lattice implements chunked storage for data defined over an
// unbounded 2D or 3D integer lattice, the data model behind voxel worlds.
//
// The package provides a dense Array over a bounded extent, a ChunkMap that
// partitions the infinite lattice into fixed-shape chunks with pluggable
// backing storage (including a bounded-memory cache that compresses chunks on
// eviction), and a TransformMap that rewrites values in flight. All of them
// speak the same access protocol, a small set of capability interfaces that
// each backend implements independently, so generic algorithms like
// CopyExtent work across any pair of backends.
//
// The containers are synchronous and perform no internal locking; concurrent
// mutation of one container requires external synchronization. Iteration
// order is deterministic: row-major within an extent, address order across
// chunks.
package lattice

// Reader provides random-access point reads.
type Reader[T any, P Point[P]] interface {
	// At returns the value at p.
	At(p P) T
}

// Writer provides random-access point writes.
type Writer[T any, P Point[P]] interface {
	// Set stores v at p.
	Set(p P, v T)
}

// Iterator provides bounded-extent visitation.
type Iterator[T any, P Point[P]] interface {
	// Iterate visits every (point, value) pair in the intersection of extent
	// and the implementor's domain, stopping early if fn returns false.
	Iterate(extent Extent[P], fn func(p P, v T) bool)
}

// Bounded is implemented by backends with a finite domain. Backends without
// it, like ChunkMap, cover the whole lattice.
type Bounded[P Point[P]] interface {
	// Bounds returns the extent the implementor spans.
	Bounds() Extent[P]
}

// Source is the read side of a bulk copy.
type Source[T any, P Point[P]] interface {
	Reader[T, P]
	Iterator[T, P]
}

// CopyExtent copies every value of extent from src to dst, regardless of how
// either side stores its data. The copied region is the intersection of
// extent with each side's domain when that side is Bounded, so src and dst
// need not share chunk boundaries or any partitioning at all. Only the access
// protocol is used; no contiguous memory is assumed on either side.
func CopyExtent[T any, P Point[P]](extent Extent[P], src Source[T, P], dst Writer[T, P]) {
	extent = clipToBounds(extent, src)
	extent = clipToBounds(extent, dst)
	src.Iterate(extent, func(p P, v T) bool {
		dst.Set(p, v)
		return true
	})
}

// FillExtent writes v to every point of extent in dst, clipped to dst's
// domain when dst is Bounded.
func FillExtent[T any, P Point[P]](extent Extent[P], dst Writer[T, P], v T) {
	extent = clipToBounds(extent, dst)
	extent.Iterate(func(p P) bool {
		dst.Set(p, v)
		return true
	})
}

func clipToBounds[P Point[P]](extent Extent[P], backend any) Extent[P] {
	if b, ok := backend.(Bounded[P]); ok {
		return extent.Intersect(b.Bounds())
	}
	return extent
}
