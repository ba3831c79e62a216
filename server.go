package main

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
)

type RouteRequest struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

type RouteResponse struct {
	Path        []Point `json:"path"`
	Success     bool    `json:"success"`
	Message     string  `json:"message,omitempty"`
	Distance    float64 `json:"distance,omitempty"`
	WalkSeconds float64 `json:"walkSeconds,omitempty"`
}

type WalkboxToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// Server exposes path queries over the loaded rooms.
type Server struct {
	registry  *RoomRegistry
	walkSpeed Point
}

func NewServer(registry *RoomRegistry, cfg Config) *Server {
	return &Server{registry: registry, walkSpeed: cfg.WalkSpeed}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.HandleFunc("/rooms", corsMiddleware(s.roomsHandler))
	mux.HandleFunc("/rooms/{room}/path", corsMiddleware(s.pathHandler))
	mux.HandleFunc("/rooms/{room}/graph", corsMiddleware(s.graphHandler))
	mux.HandleFunc("/rooms/{room}/walkboxes/{name}", corsMiddleware(s.walkboxHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v\n", err)
	}
}

// lookupRoom writes the error response itself when the room is unknown.
func (s *Server) lookupRoom(w http.ResponseWriter, r *http.Request) (*Room, bool) {
	room, err := s.registry.Get(r.PathValue("room"))
	if errors.Is(err, ErrRoomNotFound) {
		log.Printf("❌ Unknown room: %s\n", r.PathValue("room"))
		http.Error(w, "Room not found", http.StatusNotFound)
		return nil, false
	}
	return room, true
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	numRooms := s.registry.Len()
	status := "ready"
	if numRooms == 0 {
		status = "no rooms loaded"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"numRooms": numRooms,
	})
}

// GET /rooms - List loaded rooms
func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": s.registry.Names(),
	})
}

// POST /rooms/{room}/path - Compute a walking path
func (s *Server) pathHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	room, ok := s.lookupRoom(w, r)
	if !ok {
		return
	}

	path := room.PathFinder.CalculatePath(req.From, req.To)
	response := RouteResponse{
		Path:    path,
		Success: len(path) >= 2,
	}
	if response.Success {
		response.Distance = pathLength(path)
		response.WalkSeconds = walkDuration(path, s.walkSpeed)
	} else if len(path) == 1 {
		response.Message = "Already there"
	} else {
		response.Message = "No path found"
	}

	log.Printf("📍 %s: (%.1f, %.1f) -> (%.1f, %.1f): %d waypoints\n",
		room.Name, req.From.X, req.From.Y, req.To.X, req.To.Y, len(path))
	writeJSON(w, http.StatusOK, response)
}

// POST /rooms/{room}/walkboxes/{name} - Enable or disable a walkbox
func (s *Server) walkboxHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WalkboxToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	room, ok := s.lookupRoom(w, r)
	if !ok {
		return
	}

	name := r.PathValue("name")
	if err := room.PathFinder.SetWalkboxEnabled(name, req.Enabled); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Printf("🚪 %s: walkbox %s enabled=%v\n", room.Name, name, req.Enabled)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"walkbox": name,
		"enabled": req.Enabled,
	})
}

// GET /rooms/{room}/graph - Inspect the cached visibility graph
func (s *Server) graphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	room, ok := s.lookupRoom(w, r)
	if !ok {
		return
	}

	graph := room.PathFinder.Graph()
	edges := make([]GraphEdge, 0, graph.NumEdges())
	for _, row := range graph.Edges {
		edges = append(edges, row...)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"nodes":    graph.Nodes,
		"edges":    edges,
		"numNodes": len(graph.Nodes),
		"numEdges": len(edges),
	})
}

func pathLength(path []Point) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		total += path[i].Distance(path[i+1])
	}
	return total
}

// walkDuration estimates how long a walker at speed takes along path.
func walkDuration(path []Point, speed Point) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		d := path[i+1].Sub(path[i])
		total += math.Max(math.Abs(d.X)/speed.X, math.Abs(d.Y)/speed.Y)
	}
	return total
}
