package main

import (
	"math"
	"time"
)

// arriveEpsilon is how close a walker must get to a waypoint to move on to
// the next leg.
const arriveEpsilon = 1.0

// DefaultWalkSpeed is the per-axis walking speed in pixels per second.
// Actors walk faster sideways than in depth.
var DefaultWalkSpeed = Point{X: 300, Y: 100}

// Walker moves an actor leg by leg along a waypoint path.
type Walker struct {
	Speed Point // Pixels per second on each axis

	pos  Point
	path []Point
	leg  int // Index of the waypoint being walked to
}

// NewWalker places a walker at pos. A non-positive speed component falls
// back to DefaultWalkSpeed.
func NewWalker(pos, speed Point) *Walker {
	if speed.X <= 0 {
		speed.X = DefaultWalkSpeed.X
	}
	if speed.Y <= 0 {
		speed.Y = DefaultWalkSpeed.Y
	}
	return &Walker{Speed: speed, pos: pos}
}

func (w *Walker) Position() Point { return w.pos }

// IsWalking reports whether the walker still has waypoints ahead.
func (w *Walker) IsWalking() bool { return w.path != nil && w.leg < len(w.path) }

// Destination returns the last waypoint of the current path.
func (w *Walker) Destination() (Point, bool) {
	if !w.IsWalking() {
		return Point{}, false
	}
	return w.path[len(w.path)-1], true
}

// Stop drops the rest of the path.
func (w *Walker) Stop() {
	w.path = nil
	w.leg = 0
}

// WalkTo asks pf for a path to dest and starts following it. It returns
// false, leaving the walker idle, when there is nowhere to walk.
func (w *Walker) WalkTo(pf *PathFinder, dest Point) bool {
	return w.Follow(pf.CalculatePath(w.pos, dest))
}

// Follow starts walking path. The first waypoint is the walker's own
// position, so paths of fewer than two points are not walked.
func (w *Walker) Follow(path []Point) bool {
	w.Stop()
	if len(path) < 2 {
		return false
	}
	w.path = path
	w.leg = 1
	w.pos = path[0]
	return true
}

// Update advances the walker by elapsed time. Time left over after reaching
// a waypoint is spent on the next leg.
func (w *Walker) Update(elapsed time.Duration) {
	dt := elapsed.Seconds()
	for dt > 0 && w.IsWalking() {
		target := w.path[w.leg]
		remaining := target.Sub(w.pos)
		duration := math.Max(math.Abs(remaining.X)/w.Speed.X, math.Abs(remaining.Y)/w.Speed.Y)

		if duration <= dt || w.pos.Near(target, arriveEpsilon) {
			w.pos = target
			w.leg++
			dt -= duration
			continue
		}

		w.pos = w.pos.Add(remaining.Scale(dt / duration))
		dt = 0
	}
	if w.path != nil && w.leg >= len(w.path) {
		w.Stop()
	}
}
