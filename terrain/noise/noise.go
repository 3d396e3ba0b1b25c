// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise generates chunk cells from layered perlin noise.
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"

	"github.com/TonyGermaneri/genesis-sub003/terrain"
	"github.com/TonyGermaneri/genesis-sub003/world"
)

// Material ids understood by the generator and the material table.
const (
	Air   = uint16(0)
	Water = uint16(1)
	Sand  = uint16(2)
	Dirt  = uint16(3)
	Stone = uint16(4)
	Grass = uint16(5)
	Coal  = uint16(10)
	Iron  = uint16(11)
)

const (
	// Dirt layer thickness below the surface, in cells.
	dirtDepth = 6
	// Shoreline band around sea level that becomes sand.
	shoreBand = 3
)

// Generator implements terrain.Source with deterministic perlin noise.
type Generator struct {
	seed int64
	edge int32

	// Surface heightmap noise
	surface *perlin.Perlin // larger features
	detail  *perlin.Perlin // smaller/higher frequency details

	// Cave carving and ore vein noise
	cave *perlin.Perlin
	ore  *perlin.Perlin
}

// New creates a generator for a seed producing chunks of the default
// edge length. The same seed always produces the same world; the
// streaming layer regenerates instead of persisting.
func New(seed int64) *Generator {
	return NewSized(seed, terrain.DefaultChunkEdge)
}

// NewSized creates a generator producing edge*edge cell chunks.
func NewSized(seed int64, edge int32) *Generator {
	return &Generator{
		seed:    seed,
		edge:    edge,
		surface: perlin.NewPerlin(2, 2, 4, seed),
		detail:  perlin.NewPerlin(2, 2, 2, seed+1),
		cave:    perlin.NewPerlin(2, 2, 3, seed+2),
		ore:     perlin.NewPerlin(2, 2, 2, seed+3),
	}
}

// Seed returns the generator's seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// GenerateChunk implements terrain.Source. Cells are produced column by
// column so each column's surface height is computed once.
func (g *Generator) GenerateChunk(chunkX, chunkY int32, params terrain.GenerationParams) []world.Cell {
	edge := g.edge
	cells := make([]world.Cell, int(edge)*int(edge))

	baseX := chunkX * edge
	baseY := chunkY * edge

	for localX := int32(0); localX < edge; localX++ {
		worldX := baseX + localX
		surface := g.surfaceHeight(worldX, params)

		for localY := int32(0); localY < edge; localY++ {
			worldY := baseY + localY
			cell := g.cell(worldX, worldY, surface, params)
			cells[localY*edge+localX] = cell
		}
	}

	return cells
}

// surfaceHeight returns the terrain surface height for a column.
func (g *Generator) surfaceHeight(worldX int32, params terrain.GenerationParams) int32 {
	x := float64(worldX) * float64(params.TerrainScale)

	h := float32(g.surface.Noise1D(x))
	h += 0.25 * float32(g.detail.Noise1D(x*4))
	h = clamp(h, -1, 1)

	return params.SeaLevel + int32(h*float32(params.TerrainHeight))
}

func (g *Generator) cell(worldX, worldY, surface int32, params terrain.GenerationParams) world.Cell {
	// Above the surface: air, or water up to sea level.
	if worldY > surface {
		if worldY <= params.SeaLevel {
			return world.NewCell(Water).WithFlag(world.CellLiquid).WithElevation(elevationByte(worldY, params))
		}
		return world.AirCell()
	}

	// Below the world floor nothing is generated solid either.
	if worldY < params.SeaLevel-params.TerrainDepth {
		return world.AirCell()
	}

	depth := surface - worldY

	// Caves carve out solid terrain below the dirt layer.
	if depth > dirtDepth && g.caveAt(worldX, worldY, params) {
		return world.AirCell()
	}

	material := Stone
	switch {
	case depth == 0 && abs(surface-params.SeaLevel) <= shoreBand:
		material = Sand
	case depth == 0 && params.Vegetation:
		material = Grass
	case depth <= dirtDepth:
		material = Dirt
	default:
		if ore := g.oreAt(worldX, worldY, params); ore != Air {
			material = ore
		}
	}

	return world.NewCell(material).
		WithFlag(world.CellSolid).
		WithElevation(elevationByte(worldY, params))
}

func (g *Generator) caveAt(worldX, worldY int32, params terrain.GenerationParams) bool {
	n := float32(g.cave.Noise2D(float64(worldX)*0.03, float64(worldY)*0.03))
	return (n+1)*0.5 > params.CaveThreshold
}

func (g *Generator) oreAt(worldX, worldY int32, params terrain.GenerationParams) uint16 {
	n := float32(g.ore.Noise2D(float64(worldX)*0.08, float64(worldY)*0.08))
	n = (n + 1) * 0.5

	threshold := 1 - params.OreFrequency*0.5
	switch {
	case n > threshold+0.04:
		return Iron
	case n > threshold:
		return Coal
	}
	return Air
}

// elevationByte maps a world y to the 0-255 elevation band carried in
// each cell for the shader.
func elevationByte(worldY int32, params terrain.GenerationParams) uint8 {
	span := float32(params.TerrainHeight + params.TerrainDepth)
	rel := float32(worldY-(params.SeaLevel-params.TerrainDepth)) / span
	return uint8(clamp(rel, 0, 1) * 255)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
