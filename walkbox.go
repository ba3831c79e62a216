package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ErrVertexOutOfRange is returned for raw vertex access past the polygon.
var ErrVertexOutOfRange = errors.New("walkbox: vertex index out of range")

// insideEpsilon is the slack of the boundary test in Inside. It is compared
// against (a+b)^2 - c^2 where a and b are the distances to an edge's
// endpoints and c is the edge length, which for a point off the middle of an
// edge by d is about 4d^2. 1.0 therefore gives a band of half a pixel.
const insideEpsilon = 1.0

// Walkbox is one polygon of walkable floor. Vertices are expected in
// counter-clockwise order (y axis up); room loading normalises authored data.
type Walkbox struct {
	Name string

	vertices []Point
	ring     orb.Ring
	bound    orb.Bound
	enabled  bool
}

// NewWalkbox builds an enabled walkbox from vertices in boundary order.
func NewWalkbox(name string, vertices []Point) *Walkbox {
	vs := make([]Point, len(vertices))
	copy(vs, vertices)

	ring := make(orb.Ring, 0, len(vs)+1)
	for _, v := range vs {
		ring = append(ring, v.orb())
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}

	return &Walkbox{
		Name:     name,
		vertices: vs,
		ring:     ring,
		bound:    ring.Bound(),
		enabled:  true,
	}
}

func (w *Walkbox) IsEnabled() bool { return w.enabled }

func (w *Walkbox) SetEnabled(enabled bool) { w.enabled = enabled }

// Len returns the number of vertices.
func (w *Walkbox) Len() int { return len(w.vertices) }

// Vertex returns the i-th vertex.
func (w *Walkbox) Vertex(i int) (Point, error) {
	if i < 0 || i >= len(w.vertices) {
		return Point{}, fmt.Errorf("%w: %d of %d in %q", ErrVertexOutOfRange, i, len(w.vertices), w.Name)
	}
	return w.vertices[i], nil
}

// Vertices returns a copy of the polygon's vertices.
func (w *Walkbox) Vertices() []Point {
	vs := make([]Point, len(w.vertices))
	copy(vs, w.vertices)
	return vs
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (w *Walkbox) Bounds() orb.Bound { return w.bound }

// Edges returns the boundary edges, the closing edge last.
func (w *Walkbox) Edges() []LineSegment {
	n := len(w.vertices)
	if n < 2 {
		return nil
	}
	edges := make([]LineSegment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, LineSegment{P1: w.vertices[i], P2: w.vertices[(i+1)%n]})
	}
	return edges
}

// Inside reports whether point lies in the polygon. Points within the
// boundary band report toleranceOnOutside instead of the parity result.
func (w *Walkbox) Inside(point Point, toleranceOnOutside bool) bool {
	n := len(w.vertices)
	if n < 3 {
		return false
	}
	if !w.bound.Pad(1).Contains(point.orb()) {
		return false
	}

	old := w.vertices[n-1]
	oldDistSq := point.DistanceSquared(old)
	for _, v := range w.vertices {
		newDistSq := point.DistanceSquared(v)
		edgeDistSq := old.DistanceSquared(v)
		if oldDistSq+newDistSq+2*math.Sqrt(oldDistSq*newDistSq)-edgeDistSq < insideEpsilon {
			return toleranceOnOutside
		}
		old, oldDistSq = v, newDistSq
	}

	return planar.RingContains(w.ring, point.orb())
}

// IsVertexConcave reports whether the vertex at index (wrapped) is a reflex
// corner: the turn from the incoming to the outgoing edge is clockwise.
func (w *Walkbox) IsVertexConcave(index int) bool {
	n := len(w.vertices)
	if n < 3 {
		return false
	}
	index = ((index % n) + n) % n
	prev := w.vertices[(index+n-1)%n]
	cur := w.vertices[index]
	next := w.vertices[(index+1)%n]

	return cur.Sub(prev).Cross(next.Sub(cur)) < 0
}

// GetClosestPointOnEdge returns the boundary point nearest to point and its
// distance.
func (w *Walkbox) GetClosestPointOnEdge(point Point) (Point, float64) {
	n := len(w.vertices)
	if n == 0 {
		return Point{}, 0
	}

	best := -1
	bestDist := math.MaxFloat64
	for i := 0; i < n; i++ {
		d := DistanceToSegment(point, w.vertices[i], w.vertices[(i+1)%n])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	closest := ClosestPointOnSegment(point, w.vertices[best], w.vertices[(best+1)%n])
	return closest, bestDist
}

// Orientation reports the winding of the polygon, orb.CCW or orb.CW, or 0
// for a degenerate polygon.
func (w *Walkbox) Orientation() orb.Orientation {
	if len(w.vertices) < 3 {
		return 0
	}
	return w.ring.Orientation()
}
