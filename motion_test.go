package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNear(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestWalkerFollow(t *testing.T) {
	w := NewWalker(Pt(0, 0), Point{})
	assert.Equal(t, DefaultWalkSpeed, w.Speed)

	require.True(t, w.Follow([]Point{Pt(0, 0), Pt(300, 0), Pt(300, 100)}))
	dest, ok := w.Destination()
	require.True(t, ok)
	assert.Equal(t, Pt(300, 100), dest)

	w.Update(500 * time.Millisecond)
	assertNear(t, Pt(150, 0), w.Position())
	assert.True(t, w.IsWalking())

	// the first leg ends half way through, the rest goes into the second
	w.Update(time.Second)
	assertNear(t, Pt(300, 50), w.Position())

	w.Update(time.Second)
	assert.Equal(t, Pt(300, 100), w.Position())
	assert.False(t, w.IsWalking())
	_, ok = w.Destination()
	assert.False(t, ok)
}

func TestWalkerShortPaths(t *testing.T) {
	w := NewWalker(Pt(5, 5), DefaultWalkSpeed)
	assert.False(t, w.Follow(nil))
	assert.False(t, w.Follow([]Point{Pt(5, 5)}))
	assert.False(t, w.IsWalking())

	w.Update(time.Second)
	assert.Equal(t, Pt(5, 5), w.Position())
}

func TestWalkerWalkTo(t *testing.T) {
	pf := bridgeRoom()
	w := NewWalker(Pt(20, 20), DefaultWalkSpeed)

	require.True(t, w.WalkTo(pf, Pt(80, 20)))
	w.Update(100 * time.Millisecond)
	assertNear(t, Pt(50, 20), w.Position())

	w.Stop()
	assert.False(t, w.IsWalking())
	assert.False(t, w.WalkTo(pf, w.Position()))

	require.NoError(t, pf.SetWalkboxEnabled("bridge", false))
	assert.False(t, w.WalkTo(pf, Pt(80, 20)))
}
