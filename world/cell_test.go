// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"testing"
)

func TestCellEncodeDecode(t *testing.T) {
	cells := make([]Cell, 64)
	for i := range cells {
		cells[i] = Cell{
			Material:    uint16(rand.Intn(1 << 16)),
			Flags:       uint8(rand.Intn(1 << 8)),
			Temperature: uint8(rand.Intn(1 << 8)),
			VelocityX:   int8(rand.Intn(256) - 128),
			VelocityY:   int8(rand.Intn(256) - 128),
			Data:        uint16(rand.Intn(1 << 16)),
		}
	}

	buf := EncodeCells(nil, cells)
	if len(buf) != len(cells)*CellSize {
		t.Fatalf("encoded %d bytes, want %d", len(buf), len(cells)*CellSize)
	}

	decoded := make([]Cell, len(cells))
	DecodeCells(decoded, buf)
	for i := range cells {
		if decoded[i] != cells[i] {
			t.Fatalf("cell %d: got %+v, want %+v", i, decoded[i], cells[i])
		}
	}
}

func TestDecodeCellsEmpty(t *testing.T) {
	// Zero cells to decode must not touch buf at all.
	DecodeCells(nil, nil)
	DecodeCells([]Cell{}, []byte{})
}

func TestCellFlags(t *testing.T) {
	c := NewCell(4).WithFlag(CellSolid)
	if !c.Solid() || c.Liquid() || c.Empty() {
		t.Errorf("unexpected flags on %+v", c)
	}
	if AirCell().Solid() || !AirCell().Empty() {
		t.Error("air should be empty and not solid")
	}
}

func TestCellBiomeElevation(t *testing.T) {
	c := AirCell().WithBiome(7).WithElevation(200)
	if c.Data&0xff != 7 {
		t.Errorf("biome byte = %d, want 7", c.Data&0xff)
	}
	if c.Data>>8 != 200 {
		t.Errorf("elevation byte = %d, want 200", c.Data>>8)
	}
	// Setting one must not clobber the other.
	c = c.WithBiome(3)
	if c.Data>>8 != 200 {
		t.Error("WithBiome clobbered elevation")
	}
}

func TestEncodeMaterials(t *testing.T) {
	buf := EncodeMaterials(nil, []MaterialProperties{{Density: 1000, Hardness: 5}})
	if len(buf) != 8 {
		t.Fatalf("material entry encoded to %d bytes, want 8", len(buf))
	}
}
