// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "fmt"

const (
	// DefaultChunkEdge cells per chunk side.
	DefaultChunkEdge = int32(256)
	// DefaultSimulationRadius chunks around the focal chunk that get compute.
	DefaultSimulationRadius = int32(2)
	// DefaultLoadRadius chunks around the focal chunk kept in memory.
	DefaultLoadRadius = int32(4)
	// DefaultUnloadRadius chunks beyond which loaded chunks are evicted.
	DefaultUnloadRadius = int32(6)
	// DefaultMaxGenerationsPerFrame bounds per-frame generation work.
	DefaultMaxGenerationsPerFrame = 2
)

// Config configures a Streaming terrain.
// Invariant: SimulationRadius <= LoadRadius < UnloadRadius. All radii are
// in chunk units (Chebyshev).
type Config struct {
	ChunkEdge              int32
	SimulationRadius       int32
	LoadRadius             int32
	UnloadRadius           int32
	MaxGenerationsPerFrame int
	Params                 GenerationParams
}

// DefaultConfig returns the stock streaming configuration.
func DefaultConfig() Config {
	return Config{
		ChunkEdge:              DefaultChunkEdge,
		SimulationRadius:       DefaultSimulationRadius,
		LoadRadius:             DefaultLoadRadius,
		UnloadRadius:           DefaultUnloadRadius,
		MaxGenerationsPerFrame: DefaultMaxGenerationsPerFrame,
		Params:                 DefaultGenerationParams(),
	}
}

// ConfigWithRadii returns the default config with custom radii.
// Panics if the radius invariant is violated.
func ConfigWithRadii(simulationRadius, loadRadius, unloadRadius int32) Config {
	config := DefaultConfig()
	config.SimulationRadius = simulationRadius
	config.LoadRadius = loadRadius
	config.UnloadRadius = unloadRadius
	config.validate()
	return config
}

// validate panics on invariant violations. A bad config is a programming
// error, not a runtime condition.
func (c Config) validate() {
	if c.ChunkEdge <= 0 {
		panic(fmt.Sprintf("chunk edge out of range: %d", c.ChunkEdge))
	}
	if c.SimulationRadius > c.LoadRadius {
		panic(fmt.Sprintf("simulation radius %d exceeds load radius %d", c.SimulationRadius, c.LoadRadius))
	}
	if c.LoadRadius >= c.UnloadRadius {
		panic(fmt.Sprintf("load radius %d not below unload radius %d", c.LoadRadius, c.UnloadRadius))
	}
	if c.MaxGenerationsPerFrame <= 0 {
		panic(fmt.Sprintf("generation budget out of range: %d", c.MaxGenerationsPerFrame))
	}
}
