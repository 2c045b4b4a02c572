package lattice

import "fmt"

// Extent is an axis-aligned bounded region of the lattice, described by a
// minimum corner and a non-negative shape. Extents are immutable values; an
// extent with any zero shape component is empty and iterates no points.
type Extent[P Point[P]] struct {
	min   P
	shape P
}

// Extent2 is a bounded region of the 2D lattice.
type Extent2 = Extent[Point2]

// Extent3 is a bounded region of the 3D lattice.
type Extent3 = Extent[Point3]

// NewExtent returns the extent with the given minimum corner and shape.
// Negative shape components are clamped to zero.
func NewExtent[P Point[P]](min, shape P) Extent[P] {
	var zero P
	return Extent[P]{min: min, shape: shape.Max(zero)}
}

// ExtentFromMinMax returns the extent spanning min to max inclusive.
func ExtentFromMinMax[P Point[P]](min, max P) Extent[P] {
	var zero P
	return NewExtent(min, max.Sub(min).Add(zero.splat(1)))
}

// Min returns the minimum corner.
func (e Extent[P]) Min() P {
	return e.min
}

// Shape returns the size of the extent per axis.
func (e Extent[P]) Shape() P {
	return e.shape
}

// Max returns the exclusive upper corner, min+shape.
func (e Extent[P]) Max() P {
	return e.min.Add(e.shape)
}

// NumPoints returns the number of lattice points inside the extent.
func (e Extent[P]) NumPoints() int {
	return e.shape.Volume()
}

// IsEmpty reports whether the extent contains no points.
func (e Extent[P]) IsEmpty() bool {
	return e.NumPoints() == 0
}

// Contains reports whether p lies inside the extent.
func (e Extent[P]) Contains(p P) bool {
	rel := p.Sub(e.min)
	return rel.NonNegative() && rel.allLess(e.shape)
}

// Intersect returns the overlap of the two extents, empty if they are
// disjoint.
func (e Extent[P]) Intersect(o Extent[P]) Extent[P] {
	lo := e.min.Max(o.min)
	hi := e.Max().Min(o.Max())
	return NewExtent(lo, hi.Sub(lo))
}

// Union returns the smallest extent containing both extents.
func (e Extent[P]) Union(o Extent[P]) Extent[P] {
	if e.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return e
	}
	lo := e.min.Min(o.min)
	hi := e.Max().Max(o.Max())
	return NewExtent(lo, hi.Sub(lo))
}

// Padded returns the extent grown by n on every side. A negative n shrinks
// the extent, down to empty.
func (e Extent[P]) Padded(n int32) Extent[P] {
	var zero P
	pad := zero.splat(n)
	return NewExtent(e.min.Sub(pad), e.shape.Add(pad.MulScalar(2)))
}

// Iterate visits every point of the extent in row-major order, last axis
// fastest. Iteration stops early if fn returns false. The sequence is finite
// and restartable; calling Iterate again replays it from the start.
func (e Extent[P]) Iterate(fn func(p P) bool) {
	e.iterate(fn)
}

// iterate is Iterate with the early-stop result exposed for internal
// callers that chain extents.
func (e Extent[P]) iterate(fn func(p P) bool) bool {
	return e.shape.each(func(local P) bool {
		return fn(e.min.Add(local))
	})
}

func (e Extent[P]) String() string {
	return fmt.Sprintf("extent(min=%v, shape=%v)", e.min, e.shape)
}
