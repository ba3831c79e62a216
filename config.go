package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the room navigation service.
type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	RoomsDir      string `yaml:"rooms_dir"`
	Watch         bool   `yaml:"watch"`
	WalkSpeed     Point  `yaml:"walk_speed"`
	MaxGraphNodes int    `yaml:"max_graph_nodes"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:    ":8080",
		RoomsDir:      "rooms",
		Watch:         true,
		WalkSpeed:     DefaultWalkSpeed,
		MaxGraphNodes: defaultMaxGraphNodes,
	}
}

// LoadConfig reads a YAML config on top of the defaults. A missing file
// yields the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	if cfg.WalkSpeed.X <= 0 {
		cfg.WalkSpeed.X = DefaultWalkSpeed.X
	}
	if cfg.WalkSpeed.Y <= 0 {
		cfg.WalkSpeed.Y = DefaultWalkSpeed.Y
	}
	if cfg.MaxGraphNodes <= 0 {
		cfg.MaxGraphNodes = defaultMaxGraphNodes
	}
	return cfg, nil
}
