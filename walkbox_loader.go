package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrBadPolygon is returned for polygon data that cannot be turned into a
// walkbox.
var ErrBadPolygon = errors.New("bad walkbox polygon")

// ParsePolygon parses the authored "{{x1,y1},{x2,y2},...}" polygon form.
func ParsePolygon(s string) ([]Point, error) {
	s = strings.Join(strings.Fields(s), "")
	if !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return nil, fmt.Errorf("%w: %q is not of the form {{x,y},...}", ErrBadPolygon, s)
	}

	body := s[2 : len(s)-2]
	var points []Point
	for _, pair := range strings.Split(body, "},{") {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: bad vertex %q", ErrBadPolygon, pair)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad x in %q: %v", ErrBadPolygon, pair, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad y in %q: %v", ErrBadPolygon, pair, err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// FlipY mirrors authored y-down coordinates into the y-up room space.
func FlipY(points []Point, roomHeight float64) []Point {
	flipped := make([]Point, len(points))
	for i, p := range points {
		flipped[i] = Point{X: p.X, Y: roomHeight - p.Y}
	}
	return flipped
}

// buildWalkbox cleans and orients the vertices and creates the walkbox.
func buildWalkbox(name string, vertices []Point, enabled bool) (*Walkbox, error) {
	cleaned := NormalizeWinding(CleanVertices(vertices))
	if len(cleaned) < 3 {
		return nil, fmt.Errorf("%w: %q has %d usable vertices", ErrBadPolygon, name, len(cleaned))
	}
	w := NewWalkbox(name, cleaned)
	if w.Orientation() == 0 {
		return nil, fmt.Errorf("%w: %q has no area", ErrBadPolygon, name)
	}
	w.SetEnabled(enabled)
	return w, nil
}

// LoadWalkboxesGeoJSON loads walkboxes from a GeoJSON FeatureCollection.
// Each Polygon (outer ring only) or MultiPolygon member becomes a walkbox;
// the "name" and "enabled" feature properties are honoured. Coordinates are
// taken as room space, no flip is applied.
func LoadWalkboxesGeoJSON(filename string) ([]*Walkbox, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("walkboxes: load %s: %w", filename, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("walkboxes: unmarshal %s: %w", filename, err)
	}

	var walkboxes []*Walkbox
	for _, feature := range fc.Features {
		name := feature.Properties.MustString("name", "")
		enabled := feature.Properties.MustBool("enabled", true)
		for _, ring := range outerRings(feature.Geometry) {
			w, err := buildWalkbox(name, ringPoints(ring), enabled)
			if err != nil {
				log.Printf("⚠️  Skipping walkbox in %s: %v\n", filepath.Base(filename), err)
				continue
			}
			walkboxes = append(walkboxes, w)
		}
	}

	log.Printf("   ✅ Loaded %d walkboxes from %s\n", len(walkboxes), filepath.Base(filename))
	return walkboxes, nil
}

// outerRings returns the outer boundary of every polygon in geometry.
func outerRings(geometry orb.Geometry) []orb.Ring {
	switch g := geometry.(type) {
	case orb.Polygon:
		if len(g) > 0 {
			return []orb.Ring{g[0]}
		}
	case orb.MultiPolygon:
		rings := make([]orb.Ring, 0, len(g))
		for _, p := range g {
			if len(p) > 0 {
				rings = append(rings, p[0])
			}
		}
		return rings
	case orb.Ring:
		return []orb.Ring{g}
	}
	return nil
}

func ringPoints(ring orb.Ring) []Point {
	points := make([]Point, 0, len(ring))
	for _, p := range ring {
		points = append(points, fromOrb(p))
	}
	return points
}
