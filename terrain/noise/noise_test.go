// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"testing"

	"github.com/TonyGermaneri/genesis-sub003/terrain"
	"github.com/TonyGermaneri/genesis-sub003/world"
)

func TestGeneratorDeterminism(t *testing.T) {
	params := terrain.DefaultGenerationParams()

	for _, coord := range []struct{ x, y int32 }{{0, 0}, {-1, 2}, {17, -23}} {
		a := NewSized(42, 32).GenerateChunk(coord.x, coord.y, params)
		b := NewSized(42, 32).GenerateChunk(coord.x, coord.y, params)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("chunk (%d, %d) cell %d differs across generators of the same seed", coord.x, coord.y, i)
			}
		}
	}
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	params := terrain.DefaultGenerationParams()
	a := NewSized(1, 32).GenerateChunk(0, 0, params)
	b := NewSized(2, 32).GenerateChunk(0, 0, params)

	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced identical chunks")
	}
}

func TestGeneratorCellCount(t *testing.T) {
	cells := NewSized(7, 32).GenerateChunk(0, 0, terrain.DefaultGenerationParams())
	if len(cells) != 1024 {
		t.Errorf("cell count %d, want 1024", len(cells))
	}
	if New(7).edge != terrain.DefaultChunkEdge {
		t.Errorf("default edge %d", New(7).edge)
	}
}

func TestGeneratorCellConsistency(t *testing.T) {
	// Every cell is air, flagged liquid water, or a flagged solid.
	params := terrain.DefaultGenerationParams()
	g := NewSized(42, 64)

	for _, coord := range []struct{ x, y int32 }{{0, 0}, {0, 1}, {-3, 0}, {5, -2}} {
		for i, cell := range g.GenerateChunk(coord.x, coord.y, params) {
			switch {
			case cell.Empty():
				if cell.Solid() || cell.Liquid() {
					t.Fatalf("chunk (%d, %d) cell %d: flagged air %+v", coord.x, coord.y, i, cell)
				}
			case cell.Material == Water:
				if !cell.Liquid() || cell.Solid() {
					t.Fatalf("chunk (%d, %d) cell %d: water flags %+v", coord.x, coord.y, i, cell)
				}
			default:
				if !cell.Solid() {
					t.Fatalf("chunk (%d, %d) cell %d: unflagged solid %+v", coord.x, coord.y, i, cell)
				}
			}
		}
	}
}

func TestGeneratorWaterColumn(t *testing.T) {
	// Far above sea level there is only air; far below the floor too.
	params := terrain.DefaultGenerationParams()
	g := NewSized(42, 16)

	sky := g.GenerateChunk(0, (params.SeaLevel+params.TerrainHeight)/16+4, params)
	for i, cell := range sky {
		if !cell.Empty() {
			t.Fatalf("sky cell %d not air: %+v", i, cell)
		}
	}

	void := g.GenerateChunk(0, (params.SeaLevel-params.TerrainDepth)/16-4, params)
	for i, cell := range void {
		if !cell.Empty() {
			t.Fatalf("void cell %d not air: %+v", i, cell)
		}
	}
}

func TestGeneratorImplementsSource(t *testing.T) {
	var _ terrain.Source = New(0)
}

func TestElevationByte(t *testing.T) {
	params := terrain.DefaultGenerationParams()
	floor := params.SeaLevel - params.TerrainDepth
	ceil := floor + params.TerrainHeight + params.TerrainDepth

	if got := elevationByte(floor, params); got != 0 {
		t.Errorf("floor elevation %d", got)
	}
	if got := elevationByte(ceil, params); got != 255 {
		t.Errorf("ceiling elevation %d", got)
	}
	if got := elevationByte(floor-100, params); got != 0 {
		t.Errorf("below-floor elevation %d", got)
	}
}

func BenchmarkGenerateChunk(b *testing.B) {
	g := New(42)
	params := terrain.DefaultGenerationParams()

	var cells []world.Cell
	for i := 0; i < b.N; i++ {
		cells = g.GenerateChunk(int32(i), 0, params)
	}
	_ = cells
}
