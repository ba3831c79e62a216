package main

import (
	"github.com/paulmach/orb"
)

// duplicateTolerance is how close consecutive vertices may be before one
// of them is dropped.
const duplicateTolerance = 1e-6

// CleanVertices removes repeated vertices (including a closing copy of the
// first vertex) and vertices lying exactly on the line through their
// neighbours. Such vertices would produce zero-length edges or spurious
// routing corners.
func CleanVertices(vertices []Point) []Point {
	out := make([]Point, 0, len(vertices))
	for _, v := range vertices {
		if len(out) > 0 && out[len(out)-1].Near(v, duplicateTolerance) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Near(out[len(out)-1], duplicateTolerance) {
		out = out[:len(out)-1]
	}

	// Collinear removal can expose new collinear runs, repeat until stable
	for changed := true; changed && len(out) > 3; {
		changed = false
		for i := 0; i < len(out) && len(out) > 3; i++ {
			n := len(out)
			prev := out[(i+n-1)%n]
			next := out[(i+1)%n]
			if distanceToLine(out[i], prev, next) < collinearEpsilon &&
				out[i].Sub(prev).Dot(next.Sub(out[i])) > 0 {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// NormalizeWinding returns vertices in counter-clockwise order, reversing
// clockwise input.
func NormalizeWinding(vertices []Point) []Point {
	if len(vertices) < 3 {
		return vertices
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, v.orb())
	}
	ring = append(ring, ring[0])
	if ring.Orientation() != orb.CW {
		return vertices
	}

	reversed := make([]Point, len(vertices))
	for i, v := range vertices {
		reversed[len(vertices)-1-i] = v
	}
	return reversed
}
