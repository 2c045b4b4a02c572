package lattice

import (
	"testing"

	"go.viam.com/test"
)

// copy round-trip identity: copying A into a fresh array over any sub-extent
// and reading it back yields equal values at every point of the sub-extent.
func TestCopyExtentArrayToArray(t *testing.T) {
	src := NewArray(NewExtent(NewPoint3(0, 0, 0), NewPoint3(4, 4, 4)), uint16(0))
	src.IterateMut(src.Bounds(), func(p Point3, v *uint16) bool {
		*v = uint16(p.X)<<8 | uint16(p.Y)<<4 | uint16(p.Z)
		return true
	})

	sub := NewExtent(NewPoint3(1, 0, 2), NewPoint3(3, 4, 2))
	dst := NewArray(sub, uint16(0))
	CopyExtent(sub, src, dst)

	sub.Iterate(func(p Point3) bool {
		test.That(t, dst.At(p), test.ShouldEqual, src.At(p))
		return true
	})
}

func TestCopyExtentArrayToChunkMapAndBack(t *testing.T) {
	src := NewArray(NewExtent(NewPoint3(-2, -2, -2), NewPoint3(6, 6, 6)), 0)
	src.IterateMut(src.Bounds(), func(p Point3, v *int) bool {
		*v = int(p.X) + 100*int(p.Y) + 10000*int(p.Z)
		return true
	})

	m, err := NewChunkMap(NewPoint3(4, 4, 4), 0, NewMapStorage[int, Point3]())
	test.That(t, err, test.ShouldBeNil)
	CopyExtent(src.Bounds(), src, m)

	back := NewArray(src.Bounds(), 0)
	CopyExtent(src.Bounds(), m, back)
	src.Bounds().Iterate(func(p Point3) bool {
		test.That(t, back.At(p), test.ShouldEqual, src.At(p))
		return true
	})
}

// two chunk maps with different chunk shapes share no chunk boundaries;
// CopyExtent must still move every value through the protocol.
func TestCopyExtentBetweenUnalignedChunkMaps(t *testing.T) {
	src, err := NewChunkMap(NewPoint3(4, 4, 4), 0, NewMapStorage[int, Point3]())
	test.That(t, err, test.ShouldBeNil)
	dst, err := NewChunkMap(NewPoint3(8, 8, 8), -1, NewMapStorage[int, Point3]())
	test.That(t, err, test.ShouldBeNil)

	region := NewExtent(NewPoint3(-3, -3, -3), NewPoint3(7, 7, 7))
	src.IterateMut(region, func(p Point3, v *int) bool {
		*v = int(p.X) ^ int(p.Y)<<3 ^ int(p.Z)<<6
		return true
	})

	CopyExtent(region, src, dst)
	region.Iterate(func(p Point3) bool {
		test.That(t, dst.At(p), test.ShouldEqual, src.At(p))
		return true
	})
}

func TestCopyExtentClipsToBothDomains(t *testing.T) {
	src := NewArray(NewExtent(NewPoint2(0, 0), NewPoint2(4, 4)), 5)
	dst := NewArray(NewExtent(NewPoint2(2, 2), NewPoint2(4, 4)), 0)

	// query covers both arrays entirely; only the overlap may be written
	CopyExtent(NewExtent(NewPoint2(-10, -10), NewPoint2(20, 20)), src, dst)

	overlap := src.Bounds().Intersect(dst.Bounds())
	dst.Bounds().Iterate(func(p Point2) bool {
		if overlap.Contains(p) {
			test.That(t, dst.At(p), test.ShouldEqual, 5)
		} else {
			test.That(t, dst.At(p), test.ShouldEqual, 0)
		}
		return true
	})
}

func TestFillExtent(t *testing.T) {
	a := NewArray(NewExtent(NewPoint2(0, 0), NewPoint2(4, 4)), 0)
	FillExtent(NewExtent(NewPoint2(1, 1), NewPoint2(2, 2)), a, 9)
	test.That(t, a.At(NewPoint2(1, 1)), test.ShouldEqual, 9)
	test.That(t, a.At(NewPoint2(2, 2)), test.ShouldEqual, 9)
	test.That(t, a.At(NewPoint2(0, 0)), test.ShouldEqual, 0)
	test.That(t, a.At(NewPoint2(3, 3)), test.ShouldEqual, 0)

	// clipped to the array bounds rather than panicking
	FillExtent(NewExtent(NewPoint2(3, 3), NewPoint2(5, 5)), a, 7)
	test.That(t, a.At(NewPoint2(3, 3)), test.ShouldEqual, 7)
}
