// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"

	"github.com/TonyGermaneri/genesis-sub003/compute"
	"github.com/TonyGermaneri/genesis-sub003/world"
)

// ActivationState is a loaded chunk's streaming tier.
type ActivationState uint8

const (
	// Dormant outside LoadRadius, accumulating idle frames until unload.
	Dormant ActivationState = iota
	// Active within LoadRadius, resident but frozen.
	Active
	// Simulating within SimulationRadius, compute-simulated every step.
	Simulating
)

func (s ActivationState) String() string {
	switch s {
	case Simulating:
		return "simulating"
	case Active:
		return "active"
	case Dormant:
		return "dormant"
	}
	return fmt.Sprintf("ActivationState(%d)", uint8(s))
}

// Chunk is one streamed chunk of cells. It exclusively owns its cell
// slice and its compute buffer; neither is ever shared between chunks.
type Chunk struct {
	Coord      world.ChunkCoord
	Cells      []world.Cell
	State      ActivationState
	IdleFrames uint32
	// Dirty means Cells changed since the last buffer upload.
	Dirty     bool
	Generated bool

	buffer compute.Buffer
}

// newChunk creates an empty, ungenerated chunk of zeroed cells.
func newChunk(coord world.ChunkCoord, edge int32) *Chunk {
	return &Chunk{
		Coord: coord,
		Cells: make([]world.Cell, int(edge)*int(edge)),
		State: Dormant,
		Dirty: true,
	}
}

// newGeneratedChunk creates a chunk around generated cells.
func newGeneratedChunk(coord world.ChunkCoord, cells []world.Cell) *Chunk {
	return &Chunk{
		Coord:     coord,
		Cells:     cells,
		State:     Dormant,
		Dirty:     true,
		Generated: true,
	}
}

// HasBuffer reports whether a compute buffer is resident.
func (c *Chunk) HasBuffer() bool {
	return c.buffer != nil
}

// EnsureBuffer allocates the chunk's compute buffer if absent.
func (c *Chunk) EnsureBuffer(device compute.Device) {
	if c.buffer != nil {
		return
	}
	c.buffer = device.CreateBuffer(
		fmt.Sprintf("%v cells", c.Coord),
		len(c.Cells)*world.CellSize,
		compute.BufferStorage|compute.BufferCopySrc|compute.BufferCopyDst,
	)
}

// Upload writes the cell data into the compute buffer and clears Dirty.
// No-op unless the chunk is dirty and a buffer is resident.
func (c *Chunk) Upload(queue compute.Queue) {
	if !c.Dirty || c.buffer == nil {
		return
	}
	queue.WriteBuffer(c.buffer, 0, world.EncodeCells(nil, c.Cells))
	c.Dirty = false
}

// ReleaseBuffer frees the compute buffer. Idempotent.
func (c *Chunk) ReleaseBuffer() {
	if c.buffer == nil {
		return
	}
	c.buffer.Release()
	c.buffer = nil
}
