package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in room space. Authored walkbox data uses integer
// pixels, everything downstream works in float64.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return planar.Distance(p.orb(), other.orb())
}

// DistanceSquared avoids the square root when only comparisons are needed.
func (p Point) DistanceSquared(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

func (p Point) Add(other Point) Point { return Point{X: p.X + other.X, Y: p.Y + other.Y} }
func (p Point) Sub(other Point) Point { return Point{X: p.X - other.X, Y: p.Y - other.Y} }
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Cross returns the z component of the 2D cross product p x other.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Lerp interpolates from p towards other; t=0 is p, t=1 is other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{X: p.X + (other.X-p.X)*t, Y: p.Y + (other.Y-p.Y)*t}
}

// Near reports whether two points are within eps of each other.
func (p Point) Near(other Point, eps float64) bool {
	return p.DistanceSquared(other) <= eps*eps
}

func (p Point) orb() orb.Point { return orb.Point{p.X, p.Y} }

func fromOrb(p orb.Point) Point { return Point{X: p[0], Y: p[1]} }

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// Middle returns the midpoint of the segment.
func (s LineSegment) Middle() Point {
	return s.P1.Lerp(s.P2, 0.5)
}

func (s LineSegment) Length() float64 {
	return s.P1.Distance(s.P2)
}

const (
	// parallelEpsilon bounds the determinant below which two segments are
	// treated as parallel.
	parallelEpsilon = 1e-9
	// collinearEpsilon is how far a point may sit from a line and still be on it.
	collinearEpsilon = 1e-6
)

// SegmentsIntersect reports whether seg1 properly crosses seg2. Touching at
// an endpoint does not count. Parallel segments only intersect when they are
// collinear and overlap by more than a point.
func SegmentsIntersect(seg1, seg2 LineSegment) bool {
	_, _, ok := segmentCrossing(seg1, seg2)
	if ok {
		return true
	}
	return collinearOverlap(seg1, seg2)
}

// segmentCrossing solves seg1.P1 + t*r = seg2.P1 + u*s for the non-parallel
// case and returns the crossing parameters, both strictly inside (0,1).
func segmentCrossing(seg1, seg2 LineSegment) (t, u float64, ok bool) {
	r := seg1.P2.Sub(seg1.P1)
	s := seg2.P2.Sub(seg2.P1)
	denom := r.Cross(s)
	if math.Abs(denom) < parallelEpsilon {
		return 0, 0, false
	}
	qp := seg2.P1.Sub(seg1.P1)
	t = qp.Cross(s) / denom
	u = qp.Cross(r) / denom
	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return t, u, false
	}
	return t, u, true
}

func collinearOverlap(seg1, seg2 LineSegment) bool {
	r := seg1.P2.Sub(seg1.P1)
	lenSq := r.Dot(r)
	if lenSq < collinearEpsilon {
		return false
	}
	if math.Abs(r.Cross(seg2.P2.Sub(seg2.P1))) >= parallelEpsilon {
		return false
	}
	// parallel: collinear only when seg2 lies on seg1's supporting line
	if distanceToLine(seg2.P1, seg1.P1, seg1.P2) > collinearEpsilon {
		return false
	}
	t1 := seg2.P1.Sub(seg1.P1).Dot(r) / lenSq
	t2 := seg2.P2.Sub(seg1.P1).Dot(r) / lenSq
	lo := math.Max(0, math.Min(t1, t2))
	hi := math.Min(1, math.Max(t1, t2))
	return (hi-lo)*math.Sqrt(lenSq) > collinearEpsilon
}

func distanceToLine(point, a, b Point) float64 {
	d := b.Sub(a)
	length := math.Sqrt(d.Dot(d))
	if length == 0 {
		return point.Distance(a)
	}
	return math.Abs(d.Cross(point.Sub(a))) / length
}

// DistanceToSegment returns the distance from point to the closest point of
// the segment segStart-segEnd. A zero-length segment degrades to the
// distance to segStart.
func DistanceToSegment(point, segStart, segEnd Point) float64 {
	return planar.DistanceFromSegment(segStart.orb(), segEnd.orb(), point.orb())
}

// ClosestPointOnSegment projects point onto the segment, clamping the
// projection parameter to [0,1].
func ClosestPointOnSegment(point, segStart, segEnd Point) Point {
	d := segEnd.Sub(segStart)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return segStart
	}
	t := point.Sub(segStart).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	return segStart.Add(d.Scale(t))
}
