package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(name string, x0, y0, x1, y1 float64) *Walkbox {
	return NewWalkbox(name, []Point{Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1)})
}

// lShape is walkable everywhere in [0,100]x[0,100] except x>50, y>50.
func lShape() *Walkbox {
	return NewWalkbox("l", []Point{
		Pt(0, 0), Pt(100, 0), Pt(100, 50), Pt(50, 50), Pt(50, 100), Pt(0, 100),
	})
}

func TestWalkboxInside(t *testing.T) {
	w := square("unit", 0, 0, 10, 10)

	tests := []struct {
		name      string
		point     Point
		tolerance bool
		want      bool
	}{
		{"interior", Pt(5, 5), false, true},
		{"near corner inside", Pt(1, 1), false, true},
		{"far outside", Pt(20, 20), true, false},
		{"outside left", Pt(-3, 5), true, false},
		{"on edge with tolerance", Pt(5, 0), true, true},
		{"on edge without tolerance", Pt(5, 0), false, false},
		{"on vertex with tolerance", Pt(10, 10), true, true},
		{"on vertex without tolerance", Pt(10, 10), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Inside(tt.point, tt.tolerance))
		})
	}
}

func TestWalkboxInsideDegenerate(t *testing.T) {
	line := NewWalkbox("line", []Point{Pt(0, 0), Pt(10, 0)})
	assert.False(t, line.Inside(Pt(5, 0), true))
	assert.False(t, NewWalkbox("empty", nil).Inside(Pt(0, 0), true))
}

func TestWalkboxConcavity(t *testing.T) {
	l := lShape()
	var concave []int
	for i := 0; i < l.Len(); i++ {
		if l.IsVertexConcave(i) {
			concave = append(concave, i)
		}
	}
	assert.Equal(t, []int{3}, concave)
	// indices wrap
	assert.True(t, l.IsVertexConcave(3+l.Len()))
	assert.True(t, l.IsVertexConcave(3-l.Len()))

	sq := square("sq", 0, 0, 10, 10)
	hexagon := NewWalkbox("hex", []Point{
		Pt(10, 0), Pt(20, 5), Pt(20, 15), Pt(10, 20), Pt(0, 15), Pt(0, 5),
	})
	for _, w := range []*Walkbox{sq, hexagon} {
		for i := 0; i < w.Len(); i++ {
			assert.False(t, w.IsVertexConcave(i), "%s vertex %d", w.Name, i)
		}
	}
}

func TestWalkboxClosestPointOnEdge(t *testing.T) {
	w := square("sq", 0, 0, 10, 10)

	p, d := w.GetClosestPointOnEdge(Pt(-5, 5))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 5, p.Y, 1e-9)
	assert.InDelta(t, 5, d, 1e-9)

	p, d = w.GetClosestPointOnEdge(Pt(13, 14))
	assert.Equal(t, Pt(10, 10), p)
	assert.InDelta(t, 5, d, 1e-9)

	p, d = NewWalkbox("empty", nil).GetClosestPointOnEdge(Pt(1, 1))
	assert.Equal(t, Point{}, p)
	assert.Zero(t, d)
}

func TestWalkboxVertex(t *testing.T) {
	w := square("sq", 0, 0, 10, 10)

	v, err := w.Vertex(2)
	require.NoError(t, err)
	assert.Equal(t, Pt(10, 10), v)

	_, err = w.Vertex(4)
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
	_, err = w.Vertex(-1)
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
}

func TestWalkboxEnabledAndOrientation(t *testing.T) {
	w := square("sq", 0, 0, 10, 10)
	assert.True(t, w.IsEnabled())
	w.SetEnabled(false)
	assert.False(t, w.IsEnabled())

	assert.Equal(t, orb.CCW, w.Orientation())
	cw := NewWalkbox("cw", []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)})
	assert.Equal(t, orb.CW, cw.Orientation())
	assert.Len(t, cw.Edges(), 4)
}
