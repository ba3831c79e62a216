package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoomSpec is the on-disk description of a room's walkable area.
type RoomSpec struct {
	Name      string        `yaml:"name"`
	Height    float64       `yaml:"height"`  // Authored polygons are y-down, flipped against this
	GeoJSON   string        `yaml:"geojson"` // Optional extra walkboxes, relative to the room file
	Script    string        `yaml:"script"`  // Optional tengo enter script, relative to the room file
	Walkboxes []WalkboxSpec `yaml:"walkboxes"`
}

type WalkboxSpec struct {
	Name    string `yaml:"name"`
	Polygon string `yaml:"polygon"`
	Enabled *bool  `yaml:"enabled"`
}

// Room is a loaded room: its walkboxes behind a PathFinder, plus the enter
// script to run against them.
type Room struct {
	Name         string
	Height       float64
	Source       string
	ScriptPath   string // Empty when the room has no enter script
	ScriptSource string
	PathFinder   *PathFinder
}

// LoadRoomSpec reads and parses a room YAML file.
func LoadRoomSpec(filename string) (*RoomSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("rooms: load %s: %w", filename, err)
	}
	var spec RoomSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("rooms: unmarshal %s: %w", filename, err)
	}
	if spec.Name == "" {
		spec.Name = roomNameFromFile(filename)
	}
	return &spec, nil
}

// LoadRoom loads a room file and everything it references.
func LoadRoom(filename string) (*Room, error) {
	spec, err := LoadRoomSpec(filename)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(filename)

	walkboxes := make([]*Walkbox, 0, len(spec.Walkboxes))
	for i, ws := range spec.Walkboxes {
		points, err := ParsePolygon(ws.Polygon)
		if err != nil {
			log.Printf("⚠️  Room %s: skipping walkbox %d (%s): %v\n", spec.Name, i, ws.Name, err)
			continue
		}
		if spec.Height > 0 {
			points = FlipY(points, spec.Height)
		}
		enabled := ws.Enabled == nil || *ws.Enabled
		w, err := buildWalkbox(ws.Name, points, enabled)
		if err != nil {
			log.Printf("⚠️  Room %s: skipping walkbox %d (%s): %v\n", spec.Name, i, ws.Name, err)
			continue
		}
		walkboxes = append(walkboxes, w)
	}

	if spec.GeoJSON != "" {
		extra, err := LoadWalkboxesGeoJSON(filepath.Join(dir, spec.GeoJSON))
		if err != nil {
			return nil, fmt.Errorf("rooms: %s: %w", spec.Name, err)
		}
		walkboxes = append(walkboxes, extra...)
	}

	room := &Room{
		Name:       spec.Name,
		Height:     spec.Height,
		Source:     filename,
		PathFinder: NewPathFinder(walkboxes),
	}

	if spec.Script != "" {
		room.ScriptPath = filepath.Join(dir, spec.Script)
		src, err := os.ReadFile(room.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("rooms: %s: load script: %w", spec.Name, err)
		}
		room.ScriptSource = string(src)
	}

	return room, nil
}

// LoadRoomsDir loads every room file in dir. Rooms that fail to load are
// logged and skipped.
func LoadRoomsDir(dir string) ([]*Room, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	log.Printf("Loading rooms from %d files in %s...\n", len(files), dir)

	rooms := make([]*Room, 0, len(files))
	for _, file := range files {
		room, err := LoadRoom(file)
		if err != nil {
			log.Printf("⚠️  Failed to load %s: %v\n", file, err)
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func isRoomFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func roomNameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
