package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holeRoom is a 100x100 floor with a disabled 20x20 pillar in the middle.
func holeRoom() *PathFinder {
	hole := square("pillar", 40, 40, 60, 60)
	hole.SetEnabled(false)
	return NewPathFinder([]*Walkbox{square("floor", 0, 0, 100, 100), hole})
}

// bridgeRoom has two platforms joined by a bridge walkbox.
func bridgeRoom() *PathFinder {
	return NewPathFinder([]*Walkbox{
		square("west", 0, 0, 40, 40),
		square("bridge", 40, 10, 60, 30),
		square("east", 60, 0, 100, 40),
	})
}

// assertWalkable walks every leg of path in small steps and checks that each
// sample stays on walkable ground.
func assertWalkable(t *testing.T, pf *PathFinder, path []Point) {
	t.Helper()
	pf.ensureGraph()
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		steps := int(a.Distance(b)) + 1
		for s := 0; s <= steps; s++ {
			p := a.Lerp(b, float64(s)/float64(steps))
			if !pf.walkable(p) {
				t.Fatalf("leg %v -> %v leaves walkable ground at %v", a, b, p)
			}
		}
	}
}

func TestCalculatePathNoWalkboxes(t *testing.T) {
	pf := NewPathFinder(nil)
	path := pf.CalculatePath(Pt(0, 0), Pt(10, 10))
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestCalculatePathDirect(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{square("floor", 0, 0, 100, 100)})
	assert.Equal(t, []Point{Pt(10, 10), Pt(90, 90)}, pf.CalculatePath(Pt(10, 10), Pt(90, 90)))
	assert.Empty(t, pf.Graph().Nodes)
}

func TestCalculatePathSamePoint(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{square("floor", 0, 0, 100, 100)})
	assert.Equal(t, []Point{Pt(20, 20)}, pf.CalculatePath(Pt(20, 20), Pt(20, 20)))
}

func TestCalculatePathAroundConcaveCorner(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{lShape()})

	g := pf.Graph()
	assert.Equal(t, []Point{Pt(50, 50)}, g.ConcaveVertices)

	path := pf.CalculatePath(Pt(90, 40), Pt(40, 90))
	assert.Equal(t, []Point{Pt(90, 40), Pt(50, 50), Pt(40, 90)}, path)
	assertWalkable(t, pf, path)
}

func TestCalculatePathAroundHole(t *testing.T) {
	pf := holeRoom()

	g := pf.Graph()
	assert.Len(t, g.ConcaveVertices, 4)

	path := pf.CalculatePath(Pt(10, 50), Pt(90, 50))
	require.Len(t, path, 4)
	assert.Equal(t, Pt(10, 50), path[0])
	assert.Equal(t, 40.0, path[1].X)
	assert.Equal(t, 60.0, path[2].X)
	assert.Equal(t, path[1].Y, path[2].Y)
	assert.Equal(t, Pt(90, 50), path[3])
	assert.InDelta(t, 20+2*Pt(10, 50).Distance(Pt(40, 40)), pathLength(path), 1e-9)
	assertWalkable(t, pf, path)
}

func TestInLineOfSightThroughHoleCorners(t *testing.T) {
	pf := holeRoom()

	// the diagonal touches the pillar only at (40,40) and (60,60) but runs
	// through its inside in between
	assert.False(t, pf.InLineOfSight(Pt(5, 5), Pt(65, 65)))
	// sliding along the pillar's edge stays walkable
	assert.True(t, pf.InLineOfSight(Pt(30, 40), Pt(70, 40)))

	path := pf.CalculatePath(Pt(5, 5), Pt(65, 65))
	require.GreaterOrEqual(t, len(path), 3)
	assertWalkable(t, pf, path)
}

func TestHoleCornersOutsideFloorAreNotWaypoints(t *testing.T) {
	// the pillar pokes 0.3px out of the floor's left edge
	pillar := NewWalkbox("pillar", []Point{Pt(-0.3, 40), Pt(30, 40), Pt(30, 60), Pt(-0.3, 60)})
	pillar.SetEnabled(false)
	pf := NewPathFinder([]*Walkbox{square("floor", 0, 0, 200, 200), pillar})

	assert.ElementsMatch(t, []Point{Pt(30, 40), Pt(30, 60)}, pf.Graph().Nodes)

	path := pf.CalculatePath(Pt(10, 20), Pt(10, 80))
	require.GreaterOrEqual(t, len(path), 3)
	for _, p := range path {
		assert.GreaterOrEqual(t, p.X, 0.0, "%v", path)
	}
	assertWalkable(t, pf, path)
}

func TestCalculatePathSnapsEndpoints(t *testing.T) {
	pf := holeRoom()

	path := pf.CalculatePath(Pt(10, 50), Pt(150, 50))
	require.NotEmpty(t, path)
	assert.Equal(t, Pt(100, 50), path[len(path)-1])

	// a target inside the pillar is moved onto its nearest edge
	path = pf.CalculatePath(Pt(50, 10), Pt(50, 50))
	require.Len(t, path, 2)
	assert.InDelta(t, 50, path[1].X, 1e-9)
	assert.InDelta(t, 40, path[1].Y, 1e-9)

	// a start outside the floor is moved onto it too
	path = pf.CalculatePath(Pt(-20, 20), Pt(20, 20))
	assert.Equal(t, []Point{Pt(0, 20), Pt(20, 20)}, path)
}

func TestCalculatePathIsIdempotent(t *testing.T) {
	pf := holeRoom()
	edges := pf.Graph().NumEdges()

	first := pf.CalculatePath(Pt(5, 5), Pt(95, 95))
	second := pf.CalculatePath(Pt(5, 5), Pt(95, 95))
	assert.Equal(t, first, second)
	assert.Equal(t, edges, pf.Graph().NumEdges())
	assert.Len(t, pf.Graph().Nodes, 4)
}

func TestCalculatePathAcrossMergedWalkboxes(t *testing.T) {
	// The L shape again, authored as two rectangles meeting along y=50.
	pf := NewPathFinder([]*Walkbox{
		square("bottom", 0, 0, 100, 50),
		square("top", 0, 50, 50, 100),
	})

	// straight across the seam
	assert.Equal(t, []Point{Pt(10, 40), Pt(10, 90)}, pf.CalculatePath(Pt(10, 40), Pt(10, 90)))

	// around the inner corner of the union
	path := pf.CalculatePath(Pt(90, 40), Pt(40, 90))
	assert.Equal(t, []Point{Pt(90, 40), Pt(50, 50), Pt(40, 90)}, path)
	assertWalkable(t, pf, path)
}

func TestCalculatePathSharedEdgeSeam(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{
		square("left", 0, 0, 50, 50),
		square("right", 50, 0, 100, 50),
	})
	assert.Equal(t, []Point{Pt(10, 25), Pt(90, 25)}, pf.CalculatePath(Pt(10, 25), Pt(90, 25)))
}

func TestCalculatePathToggleBridge(t *testing.T) {
	pf := bridgeRoom()

	path := pf.CalculatePath(Pt(20, 20), Pt(80, 20))
	assert.Equal(t, []Point{Pt(20, 20), Pt(80, 20)}, path)

	require.NoError(t, pf.SetWalkboxEnabled("bridge", false))
	path = pf.CalculatePath(Pt(20, 20), Pt(80, 20))
	assert.Less(t, len(path), 2)

	// toggling the walkbox directly is picked up as well
	pf.Walkboxes()[1].SetEnabled(true)
	path = pf.CalculatePath(Pt(20, 20), Pt(80, 20))
	assert.Len(t, path, 2)

	assert.ErrorIs(t, pf.SetWalkboxEnabled("missing", true), ErrWalkboxNotFound)
}

func TestCalculatePathBridgeRouting(t *testing.T) {
	pf := bridgeRoom()

	// the straight line passes above the bridge
	path := pf.CalculatePath(Pt(35, 38), Pt(65, 2))
	assert.Equal(t, []Point{Pt(35, 38), Pt(40, 30), Pt(60, 10), Pt(65, 2)}, path)
	assertWalkable(t, pf, path)
}

func TestInLineOfSightSymmetric(t *testing.T) {
	for name, pf := range map[string]*PathFinder{
		"l":      NewPathFinder([]*Walkbox{lShape()}),
		"hole":   holeRoom(),
		"bridge": bridgeRoom(),
	} {
		t.Run(name, func(t *testing.T) {
			var points []Point
			for x := 5.0; x < 100; x += 15 {
				for y := 5.0; y < 100; y += 15 {
					points = append(points, Pt(x, y))
				}
			}
			for _, a := range points {
				for _, b := range points {
					assert.Equal(t, pf.InLineOfSight(a, b), pf.InLineOfSight(b, a), "%v <-> %v", a, b)
				}
			}
		})
	}
}

func TestCalculatePathAlwaysWalkable(t *testing.T) {
	for name, pf := range map[string]*PathFinder{
		"l":    NewPathFinder([]*Walkbox{lShape()}),
		"hole": holeRoom(),
	} {
		t.Run(name, func(t *testing.T) {
			var points []Point
			for x := 5.0; x < 100; x += 30 {
				for y := 5.0; y < 100; y += 30 {
					p := Pt(x, y)
					pf.ensureGraph()
					pf.mu.RLock()
					ok := pf.walkable(p)
					pf.mu.RUnlock()
					if ok {
						points = append(points, p)
					}
				}
			}
			require.NotEmpty(t, points)
			for _, a := range points {
				for _, b := range points {
					path := pf.CalculatePath(a, b)
					if a == b {
						assert.Equal(t, []Point{a}, path)
						continue
					}
					require.GreaterOrEqual(t, len(path), 2, "%v -> %v", a, b)
					assert.Equal(t, a, path[0])
					assert.Equal(t, b, path[len(path)-1])
					assertWalkable(t, pf, path)
				}
			}
		})
	}
}

func TestPathFinderIgnoresDegenerateWalkboxes(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{
		square("floor", 0, 0, 100, 100),
		NewWalkbox("sliver", []Point{Pt(10, 10), Pt(20, 20)}),
	})
	assert.Equal(t, []Point{Pt(10, 50), Pt(90, 50)}, pf.CalculatePath(Pt(10, 50), Pt(90, 50)))
}

func TestPathFinderMaxNodes(t *testing.T) {
	pf := holeRoom()
	pf.MaxNodes = 2
	g := pf.Graph()
	assert.Len(t, g.Nodes, 4)
	assert.Zero(t, g.NumEdges())
}

func TestPathFinderSetWalkboxes(t *testing.T) {
	pf := NewPathFinder([]*Walkbox{square("floor", 0, 0, 100, 100)})
	assert.Empty(t, pf.Graph().Nodes)

	pf.SetWalkboxes([]*Walkbox{lShape()})
	assert.Len(t, pf.Graph().Nodes, 1)
	pf.Invalidate()
	assert.Len(t, pf.Graph().Nodes, 1)
}
