// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "encoding/binary"

// CellSize is the encoded size of a Cell in bytes.
const CellSize = 8

// Cell is a single simulated pixel-cell.
// The layout is fixed at 8 bytes so cells can cross the compute-buffer
// boundary without padding surprises.
type Cell struct {
	Material    uint16 `json:"material"`
	Flags       uint8  `json:"flags"`
	Temperature uint8  `json:"temperature"`
	VelocityX   int8   `json:"vx"`
	VelocityY   int8   `json:"vy"`
	Data        uint16 `json:"data"`
}

// Cell flag bits.
const (
	CellSolid    = 1 << 0
	CellLiquid   = 1 << 1
	CellBurning  = 1 << 2
	CellElectric = 1 << 3
	CellUpdated  = 1 << 4
)

// NewCell returns a cell of the given material at room temperature.
func NewCell(material uint16) Cell {
	return Cell{Material: material, Temperature: 20}
}

// AirCell returns an empty air/void cell.
func AirCell() Cell {
	return NewCell(0)
}

func (c Cell) Empty() bool {
	return c.Material == 0
}

func (c Cell) Solid() bool {
	return c.Flags&CellSolid != 0
}

func (c Cell) Liquid() bool {
	return c.Flags&CellLiquid != 0
}

// WithFlag returns the cell with a flag bit set.
func (c Cell) WithFlag(flag uint8) Cell {
	c.Flags |= flag
	return c
}

// WithBiome stores a biome id in the low byte of Data.
func (c Cell) WithBiome(biome uint8) Cell {
	c.Data = c.Data&0xff00 | uint16(biome)
	return c
}

// WithElevation stores an elevation byte in the high byte of Data.
func (c Cell) WithElevation(elevation uint8) Cell {
	c.Data = c.Data&0x00ff | uint16(elevation)<<8
	return c
}

// EncodeCells appends the little-endian encoding of cells to dst.
func EncodeCells(dst []byte, cells []Cell) []byte {
	for _, c := range cells {
		dst = binary.LittleEndian.AppendUint16(dst, c.Material)
		dst = append(dst, c.Flags, c.Temperature, byte(c.VelocityX), byte(c.VelocityY))
		dst = binary.LittleEndian.AppendUint16(dst, c.Data)
	}
	return dst
}

// DecodeCells decodes len(dst) cells from buf into dst.
// buf must hold at least len(dst)*CellSize bytes.
func DecodeCells(dst []Cell, buf []byte) {
	if len(dst) == 0 {
		return
	}
	_ = buf[len(dst)*CellSize-1]
	for i := range dst {
		b := buf[i*CellSize:]
		dst[i] = Cell{
			Material:    binary.LittleEndian.Uint16(b),
			Flags:       b[2],
			Temperature: b[3],
			VelocityX:   int8(b[4]),
			VelocityY:   int8(b[5]),
			Data:        binary.LittleEndian.Uint16(b[6:]),
		}
	}
}

// MaterialProperties is one entry of the material lookup table shared
// with the compute kernel. Encoded size matches CellSize for alignment.
type MaterialProperties struct {
	Density      uint16
	Friction     uint8
	Flammability uint8
	Conductivity uint8
	Hardness     uint8
	Flags        uint8
	_            uint8
}

// EncodeMaterials appends the little-endian encoding of the material
// table to dst.
func EncodeMaterials(dst []byte, materials []MaterialProperties) []byte {
	for _, m := range materials {
		dst = binary.LittleEndian.AppendUint16(dst, m.Density)
		dst = append(dst, m.Friction, m.Flammability, m.Conductivity, m.Hardness, m.Flags, 0)
	}
	return dst
}
