package main

import "log"

// defaultMaxGraphNodes caps the number of routing corners. Past it the
// visibility edges are skipped and only direct paths remain possible.
const defaultMaxGraphNodes = 1000

// createGraph builds the visibility graph over the routing corners of the
// current walkbox set, together with the seams used by line-of-sight tests.
// The caller holds pf.mu for writing.
func (pf *PathFinder) createGraph() (*Graph, seamSet) {
	seams := sharedEdges(pf.walkboxes)
	corners := pf.routingCorners()

	graph := NewGraph(len(corners) + 2)
	graph.ConcaveVertices = corners
	for _, c := range corners {
		graph.AddNode(c)
	}

	maxNodes := pf.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxGraphNodes
	}
	if len(corners) > maxNodes {
		log.Printf("⚠️  Too many routing corners (%d > %d), visibility edges skipped\n", len(corners), maxNodes)
		return graph, seams
	}

	// The line-of-sight test is symmetric, so visiting every ordered pair
	// yields both directions of each edge.
	for i, a := range corners {
		for j, b := range corners {
			if i == j {
				continue
			}
			if pf.inLineOfSight(seams, a, b) {
				graph.Link(i, j)
			}
		}
	}

	log.Printf("   Walkbox graph built: %d walkboxes, %d routing corners, %d edges, %d seam edges\n",
		len(pf.walkboxes), len(corners), graph.NumEdges(), len(seams))
	return graph, seams
}

// routingCorners collects the points a shortest path may have to bend
// around:
//   - concave vertices of enabled walkboxes,
//   - convex vertices of disabled walkboxes, which carve holes,
//   - vertices of an enabled walkbox touching another enabled walkbox,
//     where the union of the two may turn inwards.
//
// Corners that are not walkable are dropped, as are duplicates. Hole
// corners must lie exactly on walkable ground, band included or not.
func (pf *PathFinder) routingCorners() []Point {
	seen := make(map[Point]bool)
	var corners []Point

	for bi, w := range pf.walkboxes {
		if w.Len() < 3 {
			continue
		}
		for i, v := range w.vertices {
			if seen[v] {
				continue
			}
			concave := w.IsVertexConcave(i)
			wanted := false
			switch {
			case w.IsEnabled() && concave:
				wanted = true
			case !w.IsEnabled() && !concave:
				wanted = true
			case w.IsEnabled():
				wanted = pf.touchesOtherEnabled(bi, v)
			}
			if !wanted || !pf.walkable(v) {
				continue
			}
			// A hole corner just outside the floor still sits in the
			// boundary band. It must not become a waypoint.
			if !w.IsEnabled() && !pf.walkableExact(v) {
				continue
			}
			seen[v] = true
			corners = append(corners, v)
		}
	}
	return corners
}

func (pf *PathFinder) touchesOtherEnabled(box int, v Point) bool {
	for _, i := range pf.index.QueryPoint(v) {
		if i == box {
			continue
		}
		if w := pf.walkboxes[i]; w.IsEnabled() && w.Inside(v, true) {
			return true
		}
	}
	return false
}
