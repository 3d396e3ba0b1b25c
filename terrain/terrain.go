// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terrain streams rectangular chunks of an infinite, procedurally
// generated cell world in and out of memory and compute-readiness as a
// focal point moves.
//
// Chunks fall into three tiers by Chebyshev distance from the focal chunk:
//
//	Simulating  within SimulationRadius, fully compute-simulated each step
//	Active      within LoadRadius, resident but frozen
//	Dormant     outside LoadRadius, unload candidates
//
// There is no durable persistence; an unloaded chunk is regenerated
// deterministically from seed and coordinate on re-entry.
package terrain

import (
	"github.com/TonyGermaneri/genesis-sub003/world"
)

// Source generates chunk cell data.
// Implementations must be deterministic for a fixed seed: the streaming
// layer relies on regeneration instead of persistence.
type Source interface {
	GenerateChunk(chunkX, chunkY int32, params GenerationParams) []world.Cell
}

// GenerationParams controls world generation. The streaming layer passes
// it through to the Source without interpreting it.
type GenerationParams struct {
	SeaLevel      int32   `json:"sea_level" yaml:"sea_level"`
	TerrainScale  float32 `json:"terrain_scale" yaml:"terrain_scale"`
	TerrainHeight int32   `json:"terrain_height" yaml:"terrain_height"`
	TerrainDepth  int32   `json:"terrain_depth" yaml:"terrain_depth"`
	CaveThreshold float32 `json:"cave_threshold" yaml:"cave_threshold"`
	OreFrequency  float32 `json:"ore_frequency" yaml:"ore_frequency"`
	Vegetation    bool    `json:"vegetation" yaml:"vegetation"`
}

// DefaultGenerationParams returns the stock generation parameters.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		SeaLevel:      64,
		TerrainScale:  0.02,
		TerrainHeight: 64,
		TerrainDepth:  128,
		CaveThreshold: 0.55,
		OreFrequency:  0.15,
		Vegetation:    true,
	}
}
