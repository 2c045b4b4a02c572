package lattice

import (
	"sort"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPoint3Arithmetic(t *testing.T) {
	p := NewPoint3(1, -2, 3)
	q := NewPoint3(4, 5, -6)

	test.That(t, p.Add(q), test.ShouldResemble, Point3{5, 3, -3})
	test.That(t, p.Sub(q), test.ShouldResemble, Point3{-3, -7, 9})
	test.That(t, p.Min(q), test.ShouldResemble, Point3{1, -2, -6})
	test.That(t, p.Max(q), test.ShouldResemble, Point3{4, 5, 3})
	test.That(t, p.MulScalar(-2), test.ShouldResemble, Point3{-2, 4, -6})
	test.That(t, p.Dot(q), test.ShouldEqual, 4-10-18)
	test.That(t, NewPoint3(2, 3, 4).Volume(), test.ShouldEqual, 24)
	test.That(t, p.NonNegative(), test.ShouldBeFalse)
	test.That(t, NewPoint3(0, 1, 2).NonNegative(), test.ShouldBeTrue)
}

func TestPoint2Arithmetic(t *testing.T) {
	p := NewPoint2(3, -1)
	q := NewPoint2(-2, 4)

	test.That(t, p.Add(q), test.ShouldResemble, Point2{1, 3})
	test.That(t, p.Sub(q), test.ShouldResemble, Point2{5, -5})
	test.That(t, p.Min(q), test.ShouldResemble, Point2{-2, -1})
	test.That(t, p.Max(q), test.ShouldResemble, Point2{3, 4})
	test.That(t, p.MulScalar(3), test.ShouldResemble, Point2{9, -3})
	test.That(t, p.Dot(q), test.ShouldEqual, -6-4)
	test.That(t, NewPoint2(5, 7).Volume(), test.ShouldEqual, 35)
	test.That(t, p.NonNegative(), test.ShouldBeFalse)
}

func TestPointCmpOrdersLexicographically(t *testing.T) {
	pts := []Point3{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, 3},
		{0, 2, -1},
		{-1, 9, 9},
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Cmp(pts[j]) < 0 })
	test.That(t, pts, test.ShouldResemble, []Point3{
		{-1, 9, 9},
		{0, 0, 3},
		{0, 2, -1},
		{0, 2, 0},
		{1, 0, 0},
	})

	test.That(t, NewPoint3(1, 2, 3).Cmp(NewPoint3(1, 2, 3)), test.ShouldEqual, 0)
	test.That(t, NewPoint2(0, 1).Cmp(NewPoint2(0, 2)), test.ShouldEqual, -1)
	test.That(t, NewPoint2(1, 0).Cmp(NewPoint2(0, 9)), test.ShouldEqual, 1)
}

func TestPointVec(t *testing.T) {
	test.That(t, NewPoint3(1, -2, 3).Vec(), test.ShouldResemble, r3.Vector{X: 1, Y: -2, Z: 3})
	test.That(t, NewPoint2(-4, 5).Vec(), test.ShouldResemble, r2.Point{X: -4, Y: 5})
}

func TestLog2(t *testing.T) {
	shift, ok := NewPoint3(4, 8, 1).log2()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, shift, test.ShouldResemble, Point3{2, 3, 0})

	_, ok = NewPoint3(4, 6, 8).log2()
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = NewPoint3(4, 0, 8).log2()
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = NewPoint2(-4, 4).log2()
	test.That(t, ok, test.ShouldBeFalse)
}
