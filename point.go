package lattice

import (
	"math/bits"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Point is the constraint satisfied by lattice point types. The set of
// implementations is closed over Point2 and Point3: the unexported methods
// carry the stride, shift and masking arithmetic the containers depend on,
// written once per dimension so the hot paths stay free of per-component
// loops.
type Point[P any] interface {
	comparable

	// Add returns the componentwise sum.
	Add(P) P

	// Sub returns the componentwise difference.
	Sub(P) P

	// Min returns the componentwise minimum.
	Min(P) P

	// Max returns the componentwise maximum.
	Max(P) P

	// MulScalar returns the point scaled by n on every axis.
	MulScalar(n int32) P

	// Cmp compares lexicographically and returns -1, 0 or 1. The resulting
	// total order makes points usable as sortable map keys.
	Cmp(P) int

	// Dot returns the dot product.
	Dot(P) int

	// Volume returns the product of the components. For a shape this is the
	// number of points it spans.
	Volume() int

	// NonNegative reports whether every component is >= 0.
	NonNegative() bool

	allLess(P) bool
	and(P) P
	shl(P) P
	shr(P) P
	log2() (P, bool)
	splat(int32) P
	strides() P
	each(fn func(P) bool) bool
}

// Point2 is a point on the 2D integer lattice.
type Point2 struct {
	X, Y int32
}

// Point3 is a point on the 3D integer lattice.
type Point3 struct {
	X, Y, Z int32
}

// NewPoint2 is a convenience for creating a 2D lattice point.
func NewPoint2(x, y int32) Point2 {
	return Point2{x, y}
}

// NewPoint3 is a convenience for creating a 3D lattice point.
func NewPoint3(x, y, z int32) Point3 {
	return Point3{x, y, z}
}

// Add returns the componentwise sum.
func (p Point2) Add(q Point2) Point2 {
	return Point2{p.X + q.X, p.Y + q.Y}
}

// Sub returns the componentwise difference.
func (p Point2) Sub(q Point2) Point2 {
	return Point2{p.X - q.X, p.Y - q.Y}
}

// Min returns the componentwise minimum.
func (p Point2) Min(q Point2) Point2 {
	return Point2{min(p.X, q.X), min(p.Y, q.Y)}
}

// Max returns the componentwise maximum.
func (p Point2) Max(q Point2) Point2 {
	return Point2{max(p.X, q.X), max(p.Y, q.Y)}
}

// MulScalar returns the point scaled by n on every axis.
func (p Point2) MulScalar(n int32) Point2 {
	return Point2{p.X * n, p.Y * n}
}

// Cmp compares lexicographically and returns -1, 0 or 1.
func (p Point2) Cmp(q Point2) int {
	if c := cmpInt32(p.X, q.X); c != 0 {
		return c
	}
	return cmpInt32(p.Y, q.Y)
}

// Dot returns the dot product.
func (p Point2) Dot(q Point2) int {
	return int(p.X)*int(q.X) + int(p.Y)*int(q.Y)
}

// Volume returns the product of the components.
func (p Point2) Volume() int {
	return int(p.X) * int(p.Y)
}

// NonNegative reports whether every component is >= 0.
func (p Point2) NonNegative() bool {
	return p.X >= 0 && p.Y >= 0
}

// Vec converts the point to a geo r2.Point for float math.
func (p Point2) Vec() r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point2) allLess(q Point2) bool {
	return p.X < q.X && p.Y < q.Y
}

func (p Point2) and(q Point2) Point2 {
	return Point2{p.X & q.X, p.Y & q.Y}
}

func (p Point2) shl(q Point2) Point2 {
	return Point2{p.X << q.X, p.Y << q.Y}
}

func (p Point2) shr(q Point2) Point2 {
	return Point2{p.X >> q.X, p.Y >> q.Y}
}

func (p Point2) log2() (Point2, bool) {
	x, okX := log2Int32(p.X)
	y, okY := log2Int32(p.Y)
	return Point2{x, y}, okX && okY
}

func (p Point2) splat(n int32) Point2 {
	return Point2{n, n}
}

// strides treats p as a shape and returns row-major strides, last axis
// fastest.
func (p Point2) strides() Point2 {
	return Point2{p.Y, 1}
}

// each treats p as a shape and visits every local point in row-major order.
// It returns false if fn stopped the iteration early.
func (p Point2) each(fn func(Point2) bool) bool {
	for x := int32(0); x < p.X; x++ {
		for y := int32(0); y < p.Y; y++ {
			if !fn(Point2{x, y}) {
				return false
			}
		}
	}
	return true
}

// Add returns the componentwise sum.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns the componentwise difference.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Min returns the componentwise minimum.
func (p Point3) Min(q Point3) Point3 {
	return Point3{min(p.X, q.X), min(p.Y, q.Y), min(p.Z, q.Z)}
}

// Max returns the componentwise maximum.
func (p Point3) Max(q Point3) Point3 {
	return Point3{max(p.X, q.X), max(p.Y, q.Y), max(p.Z, q.Z)}
}

// MulScalar returns the point scaled by n on every axis.
func (p Point3) MulScalar(n int32) Point3 {
	return Point3{p.X * n, p.Y * n, p.Z * n}
}

// Cmp compares lexicographically and returns -1, 0 or 1.
func (p Point3) Cmp(q Point3) int {
	if c := cmpInt32(p.X, q.X); c != 0 {
		return c
	}
	if c := cmpInt32(p.Y, q.Y); c != 0 {
		return c
	}
	return cmpInt32(p.Z, q.Z)
}

// Dot returns the dot product.
func (p Point3) Dot(q Point3) int {
	return int(p.X)*int(q.X) + int(p.Y)*int(q.Y) + int(p.Z)*int(q.Z)
}

// Volume returns the product of the components.
func (p Point3) Volume() int {
	return int(p.X) * int(p.Y) * int(p.Z)
}

// NonNegative reports whether every component is >= 0.
func (p Point3) NonNegative() bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0
}

// Vec converts the point to a geo r3.Vector for float math.
func (p Point3) Vec() r3.Vector {
	return r3.Vector{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p Point3) allLess(q Point3) bool {
	return p.X < q.X && p.Y < q.Y && p.Z < q.Z
}

func (p Point3) and(q Point3) Point3 {
	return Point3{p.X & q.X, p.Y & q.Y, p.Z & q.Z}
}

func (p Point3) shl(q Point3) Point3 {
	return Point3{p.X << q.X, p.Y << q.Y, p.Z << q.Z}
}

func (p Point3) shr(q Point3) Point3 {
	return Point3{p.X >> q.X, p.Y >> q.Y, p.Z >> q.Z}
}

func (p Point3) log2() (Point3, bool) {
	x, okX := log2Int32(p.X)
	y, okY := log2Int32(p.Y)
	z, okZ := log2Int32(p.Z)
	return Point3{x, y, z}, okX && okY && okZ
}

func (p Point3) splat(n int32) Point3 {
	return Point3{n, n, n}
}

// strides treats p as a shape and returns row-major strides, last axis
// fastest.
func (p Point3) strides() Point3 {
	return Point3{p.Y * p.Z, p.Z, 1}
}

// each treats p as a shape and visits every local point in row-major order.
// It returns false if fn stopped the iteration early.
func (p Point3) each(fn func(Point3) bool) bool {
	for x := int32(0); x < p.X; x++ {
		for y := int32(0); y < p.Y; y++ {
			for z := int32(0); z < p.Z; z++ {
				if !fn(Point3{x, y, z}) {
					return false
				}
			}
		}
	}
	return true
}

func cmpInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// log2Int32 returns the base-2 logarithm of n if n is a positive power of
// two.
func log2Int32(n int32) (int32, bool) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, false
	}
	return int32(bits.TrailingZeros32(uint32(n))), true
}
