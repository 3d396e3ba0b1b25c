// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TonyGermaneri/genesis-sub003/terrain"
)

// Config is the server configuration: defaults overlaid with an
// optional yaml file.
type Config struct {
	Port      int   `yaml:"port"`
	Seed      int64 `yaml:"seed"`
	FrameRate int   `yaml:"frame_rate"`

	ChunkEdge              int32 `yaml:"chunk_edge"`
	SimulationRadius       int32 `yaml:"simulation_radius"`
	LoadRadius             int32 `yaml:"load_radius"`
	UnloadRadius           int32 `yaml:"unload_radius"`
	MaxGenerationsPerFrame int   `yaml:"max_generations_per_frame"`

	Generation terrain.GenerationParams `yaml:"generation"`
}

// DefaultConfig returns the stock server configuration.
func DefaultConfig() Config {
	streaming := terrain.DefaultConfig()
	return Config{
		Port:                   8192,
		Seed:                   42,
		FrameRate:              10,
		ChunkEdge:              streaming.ChunkEdge,
		SimulationRadius:       streaming.SimulationRadius,
		LoadRadius:             streaming.LoadRadius,
		UnloadRadius:           streaming.UnloadRadius,
		MaxGenerationsPerFrame: streaming.MaxGenerationsPerFrame,
		Generation:             streaming.Params,
	}
}

// Load returns the defaults overlaid with the yaml file at path.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	config := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return config, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate returns an error for configurations that would panic the
// streaming layer or fail to serve.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 0xffff {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.FrameRate <= 0 || c.FrameRate > 1000 {
		return fmt.Errorf("frame rate out of range: %d", c.FrameRate)
	}
	if c.ChunkEdge <= 0 {
		return fmt.Errorf("chunk edge out of range: %d", c.ChunkEdge)
	}
	if c.SimulationRadius > c.LoadRadius {
		return fmt.Errorf("simulation radius %d exceeds load radius %d", c.SimulationRadius, c.LoadRadius)
	}
	if c.LoadRadius >= c.UnloadRadius {
		return fmt.Errorf("load radius %d not below unload radius %d", c.LoadRadius, c.UnloadRadius)
	}
	if c.MaxGenerationsPerFrame <= 0 {
		return fmt.Errorf("generation budget out of range: %d", c.MaxGenerationsPerFrame)
	}
	return nil
}

// TerrainConfig maps the server configuration onto the streaming layer.
func (c Config) TerrainConfig() terrain.Config {
	return terrain.Config{
		ChunkEdge:              c.ChunkEdge,
		SimulationRadius:       c.SimulationRadius,
		LoadRadius:             c.LoadRadius,
		UnloadRadius:           c.UnloadRadius,
		MaxGenerationsPerFrame: c.MaxGenerationsPerFrame,
		Params:                 c.Generation,
	}
}
