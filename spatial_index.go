package main

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// boundsPadding keeps degenerate (zero width or height) walkboxes indexable
// and covers Inside's boundary band.
const boundsPadding = 1.0

// WalkboxEntry wraps a walkbox for R-tree storage
type WalkboxEntry struct {
	Index int
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *WalkboxEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers "which walkboxes could contain this point" queries.
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index
func NewSpatialIndex(walkboxes []*Walkbox) *SpatialIndex {
	tree := rtreego.NewTree(2, 2, 8) // rooms hold a handful of walkboxes

	for i, w := range walkboxes {
		if w.Len() < 3 {
			continue
		}
		bbox, err := calculateBoundingBox(w)
		if err == nil {
			tree.Insert(&WalkboxEntry{Index: i, BBox: bbox})
		}
	}

	return &SpatialIndex{tree: tree}
}

// QueryPoint returns the indices of walkboxes whose padded bounds contain p,
// in ascending order so the primary walkbox comes first.
func (si *SpatialIndex) QueryPoint(p Point) []int {
	results := si.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(0.01))
	indices := make([]int, 0, len(results))
	for _, item := range results {
		indices = append(indices, item.(*WalkboxEntry).Index)
	}
	sort.Ints(indices)
	return indices
}

// Size reports the number of indexed walkboxes.
func (si *SpatialIndex) Size() int {
	return si.tree.Size()
}

// calculateBoundingBox computes the padded bounding box for a walkbox
func calculateBoundingBox(w *Walkbox) (rtreego.Rect, error) {
	b := w.Bounds().Pad(boundsPadding)
	return rtreego.NewRectFromPoints(
		rtreego.Point{b.Min[0], b.Min[1]},
		rtreego.Point{b.Max[0], b.Max[1]},
	)
}
