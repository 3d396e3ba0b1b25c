// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compute is the boundary to the cell-simulation backend.
//
// The streaming layer only sequences calls against these interfaces:
// create buffers, write them, record dispatches and copies into a command
// batch, submit once per frame. Whatever executes the kernel (GPU driver
// or the in-process software device) is opaque to it. Backends must
// preserve submission order within a batch; that ordering is what makes
// the per-chunk output-to-input copy-back safe.
package compute

import (
	"encoding/binary"

	"github.com/TonyGermaneri/genesis-sub003/world"
)

// BufferUsage declares how a buffer will be used.
type BufferUsage uint32

const (
	BufferStorage BufferUsage = 1 << iota
	BufferUniform
	BufferCopySrc
	BufferCopyDst
)

type (
	// Buffer is an owned backend allocation. Release is idempotent.
	Buffer interface {
		Size() int
		Release()
	}

	// Device creates buffers and command encoders.
	Device interface {
		CreateBuffer(label string, size int, usage BufferUsage) Buffer
		CreateBufferInit(label string, contents []byte, usage BufferUsage) Buffer
		CreateEncoder(label string) Encoder
	}

	// Queue writes buffer data and executes finished command batches.
	Queue interface {
		WriteBuffer(buf Buffer, offset int, data []byte)
		Submit(batch CommandBatch)
	}

	// Encoder records buffer copies and dispatches into a command batch.
	Encoder interface {
		CopyBuffer(src Buffer, srcOffset int, dst Buffer, dstOffset, size int)
		Finish() CommandBatch
	}

	// CommandBatch is an opaque recording handed to Queue.Submit.
	CommandBatch interface{}

	// BindGroup binds one dispatch's buffers together.
	BindGroup interface{}

	// Pipeline is one compute kernel. Dispatch records a single kernel
	// invocation sized to a chunk's cell grid.
	Pipeline interface {
		CreateBindGroup(device Device, in, out, materials, params Buffer) BindGroup
		Dispatch(enc Encoder, group BindGroup, chunkEdge int32)
	}
)

// SimulationParams is the per-dispatch uniform shared by every chunk in
// a frame. It is rebuilt fresh each step and read-only during dispatch.
type SimulationParams struct {
	ChunkEdge int32
	Frame     uint32
}

// Encode returns the little-endian uniform encoding.
func (p SimulationParams) Encode() []byte {
	buf := make([]byte, 0, 8)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(p.ChunkEdge))
	buf = binary.LittleEndian.AppendUint32(buf, p.Frame)
	return buf
}

// DefaultMaterials returns the shared material lookup table.
// Index 0 is air; the table is sized for a full byte of material ids.
func DefaultMaterials() []world.MaterialProperties {
	materials := make([]world.MaterialProperties, 256)

	materials[1] = world.MaterialProperties{Density: 1000, Friction: 10, Conductivity: 60, Flags: world.CellLiquid}  // water
	materials[2] = world.MaterialProperties{Density: 1600, Friction: 60, Hardness: 10, Flags: world.CellSolid}      // sand
	materials[3] = world.MaterialProperties{Density: 1200, Friction: 80, Flammability: 5, Flags: world.CellSolid}   // dirt
	materials[4] = world.MaterialProperties{Density: 2600, Friction: 90, Hardness: 80, Flags: world.CellSolid}      // stone
	materials[10] = world.MaterialProperties{Density: 1400, Friction: 85, Flammability: 40, Flags: world.CellSolid} // coal
	materials[11] = world.MaterialProperties{Density: 4800, Friction: 90, Hardness: 120, Flags: world.CellSolid}    // iron

	return materials
}
