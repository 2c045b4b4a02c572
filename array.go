package lattice

import (
	"fmt"

	"github.com/pkg/errors"
)

// Array is a dense array holding one value per point of a fixed extent in a
// single contiguous buffer. The array exclusively owns its buffer.
//
// Point access outside the extent is a contract violation and panics; the
// extent-bounds responsibility sits with the caller at the protocol boundary,
// so the interior offset arithmetic stays branch-free.
type Array[T any, P Point[P]] struct {
	extent  Extent[P]
	strides P
	values  []T
}

// NewArray returns an array over the given extent with every value set to
// fill.
func NewArray[T any, P Point[P]](extent Extent[P], fill T) *Array[T, P] {
	values := make([]T, extent.NumPoints())
	for i := range values {
		values[i] = fill
	}
	return &Array[T, P]{
		extent:  extent,
		strides: extent.Shape().strides(),
		values:  values,
	}
}

// ArrayFromBuffer returns an array over the given extent backed by the given
// buffer, in row-major order with the last axis fastest. The array takes
// ownership of the buffer.
func ArrayFromBuffer[T any, P Point[P]](extent Extent[P], values []T) (*Array[T, P], error) {
	if len(values) != extent.NumPoints() {
		return nil, errors.Errorf("buffer holds %d values but %v has %d points", len(values), extent, extent.NumPoints())
	}
	return &Array[T, P]{
		extent:  extent,
		strides: extent.Shape().strides(),
		values:  values,
	}, nil
}

// Bounds returns the extent the array spans.
func (a *Array[T, P]) Bounds() Extent[P] {
	return a.extent
}

// Values returns the backing buffer in row-major order. It is shared, not
// copied; most callers should move data with CopyExtent instead.
func (a *Array[T, P]) Values() []T {
	return a.values
}

// At returns the value stored at p. p must be inside the array extent.
func (a *Array[T, P]) At(p P) T {
	a.mustContain(p)
	return a.values[a.index(p)]
}

// Mut returns a pointer to the value stored at p for in-place mutation. p
// must be inside the array extent.
func (a *Array[T, P]) Mut(p P) *T {
	a.mustContain(p)
	return &a.values[a.index(p)]
}

// Set stores v at p. p must be inside the array extent.
func (a *Array[T, P]) Set(p P, v T) {
	a.mustContain(p)
	a.values[a.index(p)] = v
}

// Fill overwrites every value in the array with v.
func (a *Array[T, P]) Fill(v T) {
	for i := range a.values {
		a.values[i] = v
	}
}

// Iterate visits every point in the intersection of extent and the array
// bounds in row-major order, stopping early if fn returns false. An extent
// not fully contained in the array visits only the overlap.
func (a *Array[T, P]) Iterate(extent Extent[P], fn func(p P, v T) bool) {
	a.extent.Intersect(extent).iterate(func(p P) bool {
		return fn(p, a.values[a.index(p)])
	})
}

// IterateMut is Iterate with a mutable handle on each visited value.
func (a *Array[T, P]) IterateMut(extent Extent[P], fn func(p P, v *T) bool) {
	a.extent.Intersect(extent).iterate(func(p P) bool {
		return fn(p, &a.values[a.index(p)])
	})
}

// index maps p to its buffer offset. Callers have already established
// containment.
func (a *Array[T, P]) index(p P) int {
	return p.Sub(a.extent.min).Dot(a.strides)
}

func (a *Array[T, P]) mustContain(p P) {
	if !a.extent.Contains(p) {
		panic(fmt.Sprintf("lattice: point %v outside array %v", p, a.extent))
	}
}
