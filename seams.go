package main

// seamTolerance is how far apart two vertices may be and still count as the
// same corner of a seam.
const seamTolerance = 0.5

// edgeRef names edge i (vertex i to vertex i+1) of walkbox Box.
type edgeRef struct {
	Box  int
	Edge int
}

// seamSet holds the boundary edges that two enabled walkboxes share. A seam
// is not an obstacle: walking across it moves from one walkbox into the
// other.
type seamSet map[edgeRef]bool

func (s seamSet) contains(box, edge int) bool {
	return s[edgeRef{Box: box, Edge: edge}]
}

// sharedEdges finds every edge shared, in either direction, by two enabled
// walkboxes.
func sharedEdges(walkboxes []*Walkbox) seamSet {
	seams := make(seamSet)
	for i := 0; i < len(walkboxes); i++ {
		a := walkboxes[i]
		if !a.IsEnabled() || a.Len() < 3 {
			continue
		}
		for j := i + 1; j < len(walkboxes); j++ {
			b := walkboxes[j]
			if !b.IsEnabled() || b.Len() < 3 {
				continue
			}
			if !a.Bounds().Pad(seamTolerance).Intersects(b.Bounds()) {
				continue
			}
			markSharedEdges(seams, i, a, j, b)
		}
	}
	return seams
}

func markSharedEdges(seams seamSet, ia int, a *Walkbox, ib int, b *Walkbox) {
	ea := a.Edges()
	eb := b.Edges()
	for x, e1 := range ea {
		for y, e2 := range eb {
			// Check if edges are the same (or reversed)
			if (pointsEqual(e1.P1, e2.P1, seamTolerance) && pointsEqual(e1.P2, e2.P2, seamTolerance)) ||
				(pointsEqual(e1.P1, e2.P2, seamTolerance) && pointsEqual(e1.P2, e2.P1, seamTolerance)) {
				seams[edgeRef{Box: ia, Edge: x}] = true
				seams[edgeRef{Box: ib, Edge: y}] = true
			}
		}
	}
}

// pointsEqual checks if two points are equal within tolerance
func pointsEqual(a, b Point, tolerance float64) bool {
	return a.Near(b, tolerance)
}
