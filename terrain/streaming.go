// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"math"

	"github.com/TonyGermaneri/genesis-sub003/compute"
	"github.com/TonyGermaneri/genesis-sub003/world"
	"github.com/TonyGermaneri/genesis-sub003/world/tree"
)

// Quadtree world bounds in chunk units. Generous enough that the index
// never needs to grow.
const indexRadius = 1000

const (
	indexMaxObjects = 8
	indexMaxLevels  = 6
)

// Stats is a read-only snapshot of the streaming state.
// SimulatingCount counts the want-simulate ring, loaded or not.
type Stats struct {
	LoadedCount        int    `json:"loaded"`
	SimulatingCount    int    `json:"simulating"`
	PendingCount       int    `json:"pending"`
	GeneratedThisFrame int    `json:"generated_this_frame"`
	UnloadedThisFrame  int    `json:"unloaded_this_frame"`
	Recomputes         uint64 `json:"recomputes"`
}

type chunkEntry struct {
	coord world.ChunkCoord
	state ActivationState
}

// Streaming owns the chunk table, the spatial index, and the generation
// queue, and orchestrates state transitions, generation, upload, and
// compute dispatch each frame. It is not safe for concurrent use; a
// single goroutine must drive it.
type Streaming struct {
	config Config
	source Source
	device compute.Device
	queue  compute.Queue

	chunks     map[world.ChunkCoord]*Chunk
	index      *tree.QuadTree[chunkEntry]
	genQueue   []world.ChunkCoord
	queued     map[world.ChunkCoord]struct{}
	simulating map[world.ChunkCoord]struct{}

	focalX, focalY float32
	focalChunk     world.ChunkCoord
	frame          uint32
	stats          Stats
}

// NewStreaming creates a streaming terrain over source and the given
// compute backend. Panics if config violates its radius invariant.
func NewStreaming(source Source, device compute.Device, queue compute.Queue, config Config) *Streaming {
	config.validate()

	return &Streaming{
		config:     config,
		source:     source,
		device:     device,
		queue:      queue,
		chunks:     make(map[world.ChunkCoord]*Chunk),
		index:      tree.New[chunkEntry](world.AABBFrom(-indexRadius, -indexRadius, 2*indexRadius, 2*indexRadius), indexMaxObjects, indexMaxLevels),
		queued:     make(map[world.ChunkCoord]struct{}),
		simulating: make(map[world.ChunkCoord]struct{}),
		// Sentinel so the first focal update always recomputes.
		focalChunk: world.ChunkCoord{X: math.MinInt32, Y: math.MinInt32},
	}
}

// Config returns the streaming configuration.
func (s *Streaming) Config() Config {
	return s.config
}

// Stats returns the current statistics snapshot.
func (s *Streaming) Stats() Stats {
	return s.stats
}

// FocalChunk returns the chunk containing the focal point.
func (s *Streaming) FocalChunk() world.ChunkCoord {
	return s.focalChunk
}

// FocalPosition returns the focal point in world coordinates.
func (s *Streaming) FocalPosition() (float32, float32) {
	return s.focalX, s.focalY
}

// LoadedCount returns the number of loaded chunks.
func (s *Streaming) LoadedCount() int {
	return len(s.chunks)
}

// UpdateFocalPosition is the per-frame entry point: it moves the focal
// point to the given world position, reclassifies chunks if the focal
// chunk changed, spends the generation budget, and refreshes stats.
func (s *Streaming) UpdateFocalPosition(x, y float32) {
	s.focalX, s.focalY = x, y

	newChunk := world.ChunkCoordAt(
		int32(math.Floor(float64(x))),
		int32(math.Floor(float64(y))),
		s.config.ChunkEdge,
	)

	// Debounced: reclassify only on a focal chunk change.
	if newChunk != s.focalChunk {
		s.focalChunk = newChunk
		s.recomputeStates()
	}

	s.generatePending()
	s.refreshStats()
}

// recomputeStates reclassifies every loaded chunk against the new focal
// chunk, unloads chunks beyond UnloadRadius, queues missing chunks for
// generation, and rebuilds the spatial index.
func (s *Streaming) recomputeStates() {
	s.stats.Recomputes++

	simRadius := s.config.SimulationRadius
	loadRadius := s.config.LoadRadius
	unloadRadius := s.config.UnloadRadius

	wantSimulate := make(map[world.ChunkCoord]struct{}, (2*simRadius+1)*(2*simRadius+1))
	wantLoad := make(map[world.ChunkCoord]struct{}, (2*loadRadius+1)*(2*loadRadius+1))

	for dy := -loadRadius; dy <= loadRadius; dy++ {
		for dx := -loadRadius; dx <= loadRadius; dx++ {
			coord := world.ChunkCoord{X: s.focalChunk.X + dx, Y: s.focalChunk.Y + dy}
			wantLoad[coord] = struct{}{}
			if max32(abs32(dx), abs32(dy)) <= simRadius {
				wantSimulate[coord] = struct{}{}
			}

			// Queue missing chunks in scan order for a deterministic FIFO.
			if _, loaded := s.chunks[coord]; !loaded {
				if _, pending := s.queued[coord]; !pending {
					s.genQueue = append(s.genQueue, coord)
					s.queued[coord] = struct{}{}
				}
			}
		}
	}

	var toUnload []world.ChunkCoord
	for coord, chunk := range s.chunks {
		dist := coord.Chebyshev(s.focalChunk)

		switch {
		case dist > unloadRadius:
			toUnload = append(toUnload, coord)
		case dist <= simRadius:
			chunk.State = Simulating
			chunk.IdleFrames = 0
		case dist <= loadRadius:
			chunk.State = Active
			chunk.IdleFrames = 0
		default:
			chunk.State = Dormant
			chunk.IdleFrames++
		}
	}

	s.stats.UnloadedThisFrame = len(toUnload)
	for _, coord := range toUnload {
		s.unloadChunk(coord)
	}

	// The want-simulate ring is authoritative for compute dispatch.
	s.simulating = wantSimulate

	s.rebuildIndex()
}

// generatePending pops up to MaxGenerationsPerFrame coordinates off the
// generation queue and generates them. Stale entries (already loaded,
// possible under rapid focal movement) are skipped.
func (s *Streaming) generatePending() {
	s.stats.GeneratedThisFrame = 0

	for i := 0; i < s.config.MaxGenerationsPerFrame; i++ {
		if len(s.genQueue) == 0 {
			break
		}
		coord := s.genQueue[0]
		s.genQueue = s.genQueue[1:]
		delete(s.queued, coord)

		if _, loaded := s.chunks[coord]; loaded {
			continue
		}

		s.loadGenerated(coord, s.initialState(coord))
		s.stats.GeneratedThisFrame++
	}
}

// initialState classifies a freshly generated chunk by its current
// distance to the focal chunk. A stale generation lands Active and is
// reclassified on the next recomputation pass.
func (s *Streaming) initialState(coord world.ChunkCoord) ActivationState {
	if coord.Chebyshev(s.focalChunk) <= s.config.SimulationRadius {
		return Simulating
	}
	return Active
}

func (s *Streaming) loadGenerated(coord world.ChunkCoord, state ActivationState) {
	cells := s.source.GenerateChunk(coord.X, coord.Y, s.config.Params)
	chunk := newGeneratedChunk(coord, cells)
	chunk.EnsureBuffer(s.device)
	chunk.State = state

	s.chunks[coord] = chunk
	s.index.Insert(chunkRect(coord), chunkEntry{coord: coord, state: state})
}

// ForceGenerate synchronously generates the chunk at coord, bypassing
// the queue and budget. No-op if already loaded.
func (s *Streaming) ForceGenerate(coord world.ChunkCoord) {
	if _, loaded := s.chunks[coord]; loaded {
		return
	}
	s.loadGenerated(coord, Active)
}

// unloadChunk releases the chunk's compute buffer and removes it from
// the chunk table and the spatial index.
func (s *Streaming) unloadChunk(coord world.ChunkCoord) {
	if chunk, ok := s.chunks[coord]; ok {
		chunk.ReleaseBuffer()
		delete(s.chunks, coord)
	}
	s.index.RemoveWhere(func(e chunkEntry) bool { return e.coord == coord })
}

// rebuildIndex reconstructs the spatial index from the chunk table.
// O(loaded chunks), traded for simplicity over incremental maintenance.
func (s *Streaming) rebuildIndex() {
	s.index.Clear()
	for coord, chunk := range s.chunks {
		s.index.Insert(chunkRect(coord), chunkEntry{coord: coord, state: chunk.State})
	}
}

func chunkRect(coord world.ChunkCoord) world.AABB {
	return world.AABBFrom(float32(coord.X), float32(coord.Y), 1, 1)
}

func (s *Streaming) refreshStats() {
	s.stats.LoadedCount = len(s.chunks)
	s.stats.SimulatingCount = len(s.simulating)
	s.stats.PendingCount = len(s.genQueue)
}

// UploadDirty uploads every dirty chunk with a resident buffer.
func (s *Streaming) UploadDirty() {
	for _, chunk := range s.chunks {
		chunk.Upload(s.queue)
	}
}

// StepSimulation uploads dirty chunks, then runs one double-buffered
// compute pass over every chunk in the want-simulate ring: dispatch the
// kernel from the chunk's buffer into a fresh output buffer, then copy
// the output back so the chunk's buffer holds the authoritative state.
// All work is recorded into one command batch and submitted once.
func (s *Streaming) StepSimulation(pipeline compute.Pipeline) {
	s.UploadDirty()

	if len(s.simulating) == 0 {
		return
	}
	s.frame++

	// Shared read-only buffers, rebuilt fresh each step.
	materialsBuf := s.device.CreateBufferInit(
		"materials",
		world.EncodeMaterials(nil, compute.DefaultMaterials()),
		compute.BufferStorage,
	)
	paramsBuf := s.device.CreateBufferInit(
		"params",
		compute.SimulationParams{ChunkEdge: s.config.ChunkEdge, Frame: s.frame}.Encode(),
		compute.BufferUniform,
	)

	enc := s.device.CreateEncoder("terrain step")

	// Transient buffers released once the batch has been submitted.
	transient := []compute.Buffer{materialsBuf, paramsBuf}

	for coord := range s.simulating {
		chunk, ok := s.chunks[coord]
		if !ok || chunk.buffer == nil {
			// Still pending generation; picked up once it loads.
			continue
		}

		size := len(chunk.Cells) * world.CellSize
		output := s.device.CreateBuffer(
			fmt.Sprintf("%v output", coord),
			size,
			compute.BufferStorage|compute.BufferCopySrc,
		)
		transient = append(transient, output)

		group := pipeline.CreateBindGroup(s.device, chunk.buffer, output, materialsBuf, paramsBuf)
		pipeline.Dispatch(enc, group, s.config.ChunkEdge)
		enc.CopyBuffer(output, 0, chunk.buffer, 0, size)

		chunk.IdleFrames = 0
	}

	s.queue.Submit(enc.Finish())

	for _, buf := range transient {
		buf.Release()
	}
}

// GetCell returns the cell at a world position, or false if its chunk is
// not loaded. Absence is a normal state, not an error.
func (s *Streaming) GetCell(worldX, worldY int32) (world.Cell, bool) {
	coord := world.ChunkCoordAt(worldX, worldY, s.config.ChunkEdge)
	chunk, ok := s.chunks[coord]
	if !ok {
		return world.Cell{}, false
	}

	originX, originY := coord.WorldOrigin(s.config.ChunkEdge)
	localX := worldX - originX
	localY := worldY - originY
	if localX < 0 || localX >= s.config.ChunkEdge || localY < 0 || localY >= s.config.ChunkEdge {
		return world.Cell{}, false
	}

	return chunk.Cells[localY*s.config.ChunkEdge+localX], true
}

// Chunk returns the loaded chunk at coord, or nil.
func (s *Streaming) Chunk(coord world.ChunkCoord) *Chunk {
	return s.chunks[coord]
}

// IsChunkLoaded reports whether the chunk at coord is resident.
func (s *Streaming) IsChunkLoaded(coord world.ChunkCoord) bool {
	_, ok := s.chunks[coord]
	return ok
}

// QueryRegion returns the loaded chunks intersecting a world-space
// rectangle (inclusive corners).
func (s *Streaming) QueryRegion(minX, minY, maxX, maxY int32) []*Chunk {
	return s.collect(s.index.Query(s.regionRect(minX, minY, maxX, maxY)))
}

// QueryRegionWithState is QueryRegion filtered by activation state.
func (s *Streaming) QueryRegionWithState(minX, minY, maxX, maxY int32, state ActivationState) []*Chunk {
	entries := s.index.QueryWhere(
		s.regionRect(minX, minY, maxX, maxY),
		func(e chunkEntry) bool { return e.state == state },
	)
	return s.collect(entries)
}

func (s *Streaming) regionRect(minX, minY, maxX, maxY int32) world.AABB {
	lo := world.ChunkCoordAt(minX, minY, s.config.ChunkEdge)
	hi := world.ChunkCoordAt(maxX, maxY, s.config.ChunkEdge)
	return world.AABBFrom(
		float32(lo.X),
		float32(lo.Y),
		float32(hi.X-lo.X+1),
		float32(hi.Y-lo.Y+1),
	)
}

func (s *Streaming) collect(entries []chunkEntry) []*Chunk {
	chunks := make([]*Chunk, 0, len(entries))
	for _, e := range entries {
		if chunk, ok := s.chunks[e.coord]; ok {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// VisibleBounds returns the world-space rectangle exactly covering the
// want-simulate ring (inclusive corners).
func (s *Streaming) VisibleBounds() (minX, minY, maxX, maxY int32) {
	edge := s.config.ChunkEdge
	radius := s.config.SimulationRadius

	minX = (s.focalChunk.X - radius) * edge
	minY = (s.focalChunk.Y - radius) * edge
	maxX = (s.focalChunk.X+radius+1)*edge - 1
	maxY = (s.focalChunk.Y+radius+1)*edge - 1
	return
}

// Debug prints streaming internals to stdout.
func (s *Streaming) Debug() {
	fmt.Printf("streaming terrain: focal: %v, loaded: %d, simulating: %d, pending: %d, index: %+v\n",
		s.focalChunk, len(s.chunks), len(s.simulating), len(s.genQueue), s.index.Stats())
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
