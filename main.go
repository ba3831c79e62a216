package main

import (
	"flag"
	"log"
	"net/http"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 Walkbox Path Planner")
	log.Println("========================================")

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	registry := NewRoomRegistry(cfg.MaxGraphNodes)
	rooms, err := LoadRoomsDir(cfg.RoomsDir)
	if err != nil {
		log.Fatal(err)
	}
	for _, room := range rooms {
		registry.Add(room)
		log.Printf("   ✅ Room %s: %d walkboxes\n", room.Name, len(room.PathFinder.Walkboxes()))
	}

	if cfg.Watch {
		watcher, err := NewRoomWatcher(cfg.RoomsDir)
		if err != nil {
			log.Printf("⚠️  Hot reload disabled: %v\n", err)
		} else {
			defer watcher.Close()
			go ApplyRoomEvents(watcher, registry)
			log.Printf("👀 Watching %s for room changes\n", cfg.RoomsDir)
		}
	}

	server := NewServer(registry, cfg)

	log.Printf("Server starting on %s\n", cfg.ListenAddr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET  /rooms                          - List loaded rooms")
	log.Println("  POST /rooms/{room}/path              - Compute a walking path")
	log.Println("  POST /rooms/{room}/walkboxes/{name}  - Enable or disable a walkbox")
	log.Println("  GET  /rooms/{room}/graph             - Inspect the visibility graph")
	log.Println("  GET  /health                         - Check server status")
	log.Println("========================================")

	if err := http.ListenAndServe(cfg.ListenAddr, server.Handler()); err != nil {
		log.Fatal(err)
	}
}
