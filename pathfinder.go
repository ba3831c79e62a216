package main

import (
	"errors"
	"math"
	"sync"

	"github.com/paulmach/orb/planar"
)

// ErrWalkboxNotFound is returned when no walkbox carries the requested name.
var ErrWalkboxNotFound = errors.New("walkbox not found")

const (
	// losEpsilon is the distance under which two points see each other
	// trivially and under which an endpoint touching an edge does not count
	// as crossing it.
	losEpsilon = 0.5
	// straddleDelta is how far either side of a boundary crossing is probed
	// to decide whether the crossing leaves walkable ground.
	straddleDelta = 0.01
	// holeEdgeEpsilon is how close a probe may be to a disabled walkbox's
	// boundary and still count as outside it.
	holeEdgeEpsilon = 1e-9
)

// PathFinder computes walking paths over a set of walkboxes. It keeps a view
// of the walkboxes (enabled flags are read live) and caches the visibility
// graph of their routing corners. The cache is rebuilt when the set of
// enabled walkboxes changes or after Invalidate.
//
// A PathFinder is safe for concurrent path queries. Toggling walkboxes
// directly on the Walkbox values while queries run is not; use
// SetWalkboxEnabled for that.
type PathFinder struct {
	// MaxNodes caps the routing corners of the visibility graph. Zero means
	// defaultMaxGraphNodes. Set before the first query.
	MaxNodes int

	mu        sync.RWMutex
	walkboxes []*Walkbox
	index     *SpatialIndex
	graph     *Graph
	seams     seamSet
	builtFor  []bool // enabled flags the cached graph was built against
}

// NewPathFinder creates a PathFinder over walkboxes. The first walkbox is
// the primary one: it wins ties when snapping to the nearest edge.
func NewPathFinder(walkboxes []*Walkbox) *PathFinder {
	return &PathFinder{
		walkboxes: walkboxes,
		index:     NewSpatialIndex(walkboxes),
	}
}

// Walkboxes returns the walkboxes the PathFinder works on.
func (pf *PathFinder) Walkboxes() []*Walkbox {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.walkboxes
}

// SetWalkboxes replaces the walkbox set, e.g. after a room reload.
func (pf *PathFinder) SetWalkboxes(walkboxes []*Walkbox) {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.walkboxes = walkboxes
	pf.index = NewSpatialIndex(walkboxes)
	pf.graph = nil
}

// Invalidate drops the cached graph. Call it after changing walkbox
// geometry in place.
func (pf *PathFinder) Invalidate() {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.index = NewSpatialIndex(pf.walkboxes)
	pf.graph = nil
}

// SetWalkboxEnabled toggles every walkbox called name.
func (pf *PathFinder) SetWalkboxEnabled(name string, enabled bool) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	found := false
	for _, w := range pf.walkboxes {
		if w.Name == name {
			w.SetEnabled(enabled)
			found = true
		}
	}
	if !found {
		return ErrWalkboxNotFound
	}
	return nil
}

// Graph returns a copy of the cached visibility graph, building it first if
// needed.
func (pf *PathFinder) Graph() *Graph {
	for {
		pf.ensureGraph()
		pf.mu.RLock()
		if pf.isFresh() {
			g := pf.graph.Clone()
			pf.mu.RUnlock()
			return g
		}
		pf.mu.RUnlock()
	}
}

// CalculatePath returns the waypoints of the shortest walk from from to to.
// Endpoints off walkable ground are snapped to the nearest walkable edge
// first. The result is empty when there are no walkboxes or no path, and a
// single point when from and to coincide. Callers should not walk a path of
// fewer than two points.
func (pf *PathFinder) CalculatePath(from, to Point) []Point {
	for {
		pf.mu.RLock()
		if len(pf.walkboxes) == 0 {
			pf.mu.RUnlock()
			return []Point{}
		}
		if pf.isFresh() {
			path := pf.calculatePath(from, to)
			pf.mu.RUnlock()
			return path
		}
		pf.mu.RUnlock()
		pf.ensureGraph()
	}
}

// InLineOfSight reports whether an actor can walk straight from a to b.
func (pf *PathFinder) InLineOfSight(a, b Point) bool {
	for {
		pf.ensureGraph()
		pf.mu.RLock()
		if pf.isFresh() {
			ok := pf.inLineOfSight(pf.seams, a, b)
			pf.mu.RUnlock()
			return ok
		}
		pf.mu.RUnlock()
	}
}

// ensureGraph rebuilds the cached graph when it is missing or stale.
func (pf *PathFinder) ensureGraph() {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	if pf.isFresh() {
		return
	}
	pf.graph, pf.seams = pf.createGraph()
	pf.builtFor = pf.enabledFlags()
}

func (pf *PathFinder) isFresh() bool {
	if pf.graph == nil || len(pf.builtFor) != len(pf.walkboxes) {
		return false
	}
	for i, w := range pf.walkboxes {
		if w.IsEnabled() != pf.builtFor[i] {
			return false
		}
	}
	return true
}

func (pf *PathFinder) enabledFlags() []bool {
	flags := make([]bool, len(pf.walkboxes))
	for i, w := range pf.walkboxes {
		flags[i] = w.IsEnabled()
	}
	return flags
}

// calculatePath runs one query against the fresh cached graph. The caller
// holds pf.mu for reading.
func (pf *PathFinder) calculatePath(from, to Point) []Point {
	from = pf.snap(from)
	to = pf.snap(to)
	if from.Near(to, losEpsilon) {
		return []Point{from}
	}

	graph := pf.graph.Clone()
	corners := len(graph.Nodes)

	startNodeIndex := graph.AddNode(from)
	for i := 0; i < corners; i++ {
		if pf.inLineOfSight(pf.seams, from, graph.Nodes[i]) {
			graph.Link(startNodeIndex, i)
		}
	}

	endNodeIndex := graph.AddNode(to)
	for i := 0; i < corners; i++ {
		if pf.inLineOfSight(pf.seams, graph.Nodes[i], to) {
			graph.Link(i, endNodeIndex)
		}
	}

	if pf.inLineOfSight(pf.seams, from, to) {
		graph.Link(startNodeIndex, endNodeIndex)
	}

	path, _ := AStarPathOnGraph(graph, startNodeIndex, endNodeIndex)
	return path
}

// snap moves a point that is not walkable onto the nearest walkable edge:
// out of the hole that contains it, or onto the closest edge of the enabled
// walkboxes. Ties go to the lower walkbox index.
func (pf *PathFinder) snap(p Point) Point {
	if pf.walkable(p) {
		return p
	}

	for _, i := range pf.index.QueryPoint(p) {
		w := pf.walkboxes[i]
		if !w.IsEnabled() && w.Inside(p, false) {
			closest, _ := w.GetClosestPointOnEdge(p)
			return closest
		}
	}

	best := p
	bestDist := math.MaxFloat64
	for _, w := range pf.walkboxes {
		if !w.IsEnabled() || w.Len() < 3 {
			continue
		}
		closest, d := w.GetClosestPointOnEdge(p)
		if d < bestDist {
			best, bestDist = closest, d
		}
	}
	return best
}

// walkable reports whether p lies in an enabled walkbox (boundary included)
// and not strictly inside a disabled one.
func (pf *PathFinder) walkable(p Point) bool {
	inEnabled := false
	for _, i := range pf.index.QueryPoint(p) {
		w := pf.walkboxes[i]
		if w.IsEnabled() {
			if !inEnabled && w.Inside(p, true) {
				inEnabled = true
			}
		} else if w.Inside(p, false) {
			return false
		}
	}
	return inEnabled
}

// walkableExact is walkable without the boundary band, used to probe just
// either side of a boundary crossing. The boundary of a disabled walkbox
// stays walkable.
func (pf *PathFinder) walkableExact(p Point) bool {
	inEnabled := false
	for _, i := range pf.index.QueryPoint(p) {
		w := pf.walkboxes[i]
		if w.Len() < 3 || !planar.RingContains(w.ring, p.orb()) {
			continue
		}
		if !w.IsEnabled() {
			if _, d := w.GetClosestPointOnEdge(p); d > holeEdgeEpsilon {
				return false
			}
			continue
		}
		inEnabled = true
	}
	return inEnabled
}

// straddles reports whether the points just before and after at, along dir,
// are both walkable.
func (pf *PathFinder) straddles(at, dir Point) bool {
	before := at.Sub(dir.Scale(straddleDelta))
	after := at.Add(dir.Scale(straddleDelta))
	return pf.walkableExact(before) && pf.walkableExact(after)
}

// inLineOfSight reports whether the segment start-end stays on walkable
// ground. The caller holds pf.mu.
func (pf *PathFinder) inLineOfSight(seams seamSet, start, end Point) bool {
	if !pf.walkable(start) || !pf.walkable(end) {
		return false
	}
	if start.Near(end, losEpsilon) {
		return true
	}

	seg := LineSegment{P1: start, P2: end}
	dir := end.Sub(start).Scale(1 / seg.Length())
	for bi, w := range pf.walkboxes {
		if w.Len() < 3 {
			continue
		}
		for ei, edge := range w.Edges() {
			if seams.contains(bi, ei) {
				continue
			}
			// Collinear overlaps slide along a boundary and are left to the
			// midpoint test.
			t, _, ok := segmentCrossing(seg, edge)
			if !ok {
				continue
			}
			if DistanceToSegment(start, edge.P1, edge.P2) <= losEpsilon ||
				DistanceToSegment(end, edge.P1, edge.P2) <= losEpsilon {
				continue
			}
			if !pf.straddles(start.Lerp(end, t), dir) {
				return false
			}
		}

		// Passing exactly through a vertex is not a proper crossing of either
		// of its edges, e.g. a diagonal through two corners of a hole.
		for _, v := range w.vertices {
			if v.Near(start, losEpsilon) || v.Near(end, losEpsilon) ||
				DistanceToSegment(v, start, end) > collinearEpsilon {
				continue
			}
			if !pf.straddles(v, dir) {
				return false
			}
		}
	}

	return pf.walkable(seg.Middle())
}
