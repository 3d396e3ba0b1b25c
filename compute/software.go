// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package compute

import (
	"fmt"

	"github.com/TonyGermaneri/genesis-sub003/world"
)

// SoftwareDevice is an in-process backend. It keeps buffers in host
// memory and executes recorded batches synchronously on Submit, in
// submission order.
type SoftwareDevice struct {
	allocated int
}

// NewSoftwareDevice creates a software compute device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{}
}

// Allocated returns the total bytes currently held by live buffers.
func (d *SoftwareDevice) Allocated() int {
	return d.allocated
}

func (d *SoftwareDevice) CreateBuffer(label string, size int, usage BufferUsage) Buffer {
	d.allocated += size
	return &softBuffer{device: d, label: label, data: make([]byte, size), usage: usage}
}

func (d *SoftwareDevice) CreateBufferInit(label string, contents []byte, usage BufferUsage) Buffer {
	buf := d.CreateBuffer(label, len(contents), usage).(*softBuffer)
	copy(buf.data, contents)
	return buf
}

func (d *SoftwareDevice) CreateEncoder(label string) Encoder {
	return &softEncoder{label: label}
}

// Queue returns a queue for this device.
func (d *SoftwareDevice) Queue() Queue {
	return softQueue{}
}

type softBuffer struct {
	device   *SoftwareDevice
	label    string
	data     []byte
	usage    BufferUsage
	released bool
}

func (b *softBuffer) Size() int {
	return len(b.data)
}

func (b *softBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.device.allocated -= len(b.data)
	b.data = nil
}

type softQueue struct{}

func (softQueue) WriteBuffer(buf Buffer, offset int, data []byte) {
	b := buf.(*softBuffer)
	if b.released {
		panic(fmt.Sprintf("write to released buffer %q", b.label))
	}
	copy(b.data[offset:], data)
}

func (softQueue) Submit(batch CommandBatch) {
	if batch == nil {
		return
	}
	for _, op := range batch.([]func()) {
		op()
	}
}

type softEncoder struct {
	label string
	ops   []func()
}

func (e *softEncoder) CopyBuffer(src Buffer, srcOffset int, dst Buffer, dstOffset, size int) {
	s := src.(*softBuffer)
	d := dst.(*softBuffer)
	e.ops = append(e.ops, func() {
		copy(d.data[dstOffset:dstOffset+size], s.data[srcOffset:srcOffset+size])
	})
}

func (e *softEncoder) Finish() CommandBatch {
	ops := e.ops
	e.ops = nil
	return ops
}

// Kernel advances one chunk's cells by one step. in is read-only; out
// starts zeroed and must be fully written.
type Kernel func(in []world.Cell, out []world.Cell, materials []world.MaterialProperties, params SimulationParams)

// CopyKernel passes cells through unchanged. Placeholder until a real
// cell-physics kernel lands.
func CopyKernel(in []world.Cell, out []world.Cell, _ []world.MaterialProperties, _ SimulationParams) {
	copy(out, in)
}

// CellPipeline executes a Kernel on the software device.
type CellPipeline struct {
	kernel     Kernel
	dispatches int
}

// NewCellPipeline creates a pipeline around kernel. A nil kernel gets
// CopyKernel.
func NewCellPipeline(kernel Kernel) *CellPipeline {
	if kernel == nil {
		kernel = CopyKernel
	}
	return &CellPipeline{kernel: kernel}
}

// Dispatches returns how many kernel invocations have executed.
func (p *CellPipeline) Dispatches() int {
	return p.dispatches
}

type softBindGroup struct {
	in, out, materials, params *softBuffer
}

func (p *CellPipeline) CreateBindGroup(_ Device, in, out, materials, params Buffer) BindGroup {
	return softBindGroup{
		in:        in.(*softBuffer),
		out:       out.(*softBuffer),
		materials: materials.(*softBuffer),
		params:    params.(*softBuffer),
	}
}

func (p *CellPipeline) Dispatch(enc Encoder, group BindGroup, chunkEdge int32) {
	g := group.(softBindGroup)
	count := int(chunkEdge) * int(chunkEdge)

	e := enc.(*softEncoder)
	e.ops = append(e.ops, func() {
		in := make([]world.Cell, count)
		world.DecodeCells(in, g.in.data)

		materials := make([]world.MaterialProperties, len(g.materials.data)/8)
		decodeMaterials(materials, g.materials.data)

		params := decodeParams(g.params.data)

		out := make([]world.Cell, count)
		p.kernel(in, out, materials, params)
		g.out.data = world.EncodeCells(g.out.data[:0], out)

		p.dispatches++
	})
}

func decodeMaterials(dst []world.MaterialProperties, buf []byte) {
	for i := range dst {
		b := buf[i*8:]
		dst[i] = world.MaterialProperties{
			Density:      uint16(b[0]) | uint16(b[1])<<8,
			Friction:     b[2],
			Flammability: b[3],
			Conductivity: b[4],
			Hardness:     b[5],
			Flags:        b[6],
		}
	}
}

func decodeParams(buf []byte) SimulationParams {
	return SimulationParams{
		ChunkEdge: int32(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24),
		Frame:     uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16 | uint32(buf[7])<<24,
	}
}
