package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

var (
	// ErrRoomNotFound is returned for lookups of rooms that are not loaded.
	ErrRoomNotFound = errors.New("room not found")
	// ErrEmptyRoom is returned when a reload would replace a loaded room
	// with one that has no walkboxes.
	ErrEmptyRoom = errors.New("room has no walkboxes")
)

// scriptTimeout bounds a room enter script.
const scriptTimeout = 2 * time.Second

// RoomRegistry holds the loaded rooms by name.
type RoomRegistry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	maxNodes int
}

func NewRoomRegistry(maxNodes int) *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]*Room),
		maxNodes: maxNodes,
	}
}

// Add registers room, running its enter script first. A script failure is
// logged; the room is still added with its walkboxes as authored.
func (r *RoomRegistry) Add(room *Room) {
	room.PathFinder.MaxNodes = r.maxNodes
	runEnterScript(room)

	r.mu.Lock()
	r.rooms[room.Name] = room
	r.mu.Unlock()
}

// Reload loads filename again. An already registered room keeps its
// PathFinder, which receives the new walkboxes, so walkers holding it stay
// valid. A file that now yields no walkboxes leaves the loaded room alone,
// and a room whose name changed replaces the one registered under the old
// name.
func (r *RoomRegistry) Reload(filename string) error {
	room, err := LoadRoom(filename)
	if err != nil {
		return err
	}
	room.PathFinder.MaxNodes = r.maxNodes
	runEnterScript(room)

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(room.PathFinder.Walkboxes()) == 0 && r.hasSource(filename) {
		return fmt.Errorf("rooms: keeping %s: %w", filename, ErrEmptyRoom)
	}
	for name, old := range r.rooms {
		if old.Source == filename && name != room.Name {
			delete(r.rooms, name)
			log.Printf("🔀 Room %s renamed to %s\n", name, room.Name)
		}
	}

	if existing, ok := r.rooms[room.Name]; ok {
		existing.PathFinder.SetWalkboxes(room.PathFinder.Walkboxes())
		existing.Height = room.Height
		existing.Source = room.Source
		existing.ScriptPath = room.ScriptPath
		existing.ScriptSource = room.ScriptSource
		log.Printf("🔄 Room %s reloaded from %s\n", room.Name, filename)
		return nil
	}
	r.rooms[room.Name] = room
	log.Printf("✅ Room %s loaded from %s\n", room.Name, filename)
	return nil
}

// ReloadScript reloads every room whose enter script is filename.
func (r *RoomRegistry) ReloadScript(filename string) {
	r.mu.RLock()
	var sources []string
	for _, room := range r.rooms {
		if room.ScriptPath == filename {
			sources = append(sources, room.Source)
		}
	}
	r.mu.RUnlock()

	for _, source := range sources {
		if err := r.Reload(source); err != nil {
			log.Printf("⚠️  Failed to reload %s after %s changed: %v\n", source, filename, err)
		}
	}
}

func (r *RoomRegistry) hasSource(filename string) bool {
	for _, room := range r.rooms {
		if room.Source == filename {
			return true
		}
	}
	return false
}

// RemoveSource drops every room loaded from filename.
func (r *RoomRegistry) RemoveSource(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, room := range r.rooms {
		if room.Source == filename {
			delete(r.rooms, name)
			log.Printf("🗑️  Room %s removed\n", name)
		}
	}
}

func (r *RoomRegistry) Get(name string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Names returns the registered room names, sorted.
func (r *RoomRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func runEnterScript(room *Room) {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := RunRoomScript(ctx, room); err != nil {
		log.Printf("⚠️  Room %s enter script failed: %v\n", room.Name, err)
	}
}
