// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/TonyGermaneri/genesis-sub003/compute"
	"github.com/TonyGermaneri/genesis-sub003/terrain"
	"github.com/TonyGermaneri/genesis-sub003/terrain/noise"
)

const debugPeriod = time.Second * 5

// Hub drives one streaming terrain and broadcasts its state to clients.
// All terrain access happens on the hub goroutine; socket pumps talk to
// it through channels only.
type Hub struct {
	config  Config
	terrain *terrain.Streaming
	device  *compute.SoftwareDevice

	pipeline *compute.CellPipeline
	clients  ClientList

	// Served atomically by HTTP
	statusJSON atomic.Value

	// The most recent focus from any client wins; there is a single
	// focal point.
	focus    Focus
	hasFocus bool
	frame    uint64

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	frameTicker *time.Ticker
	debugTicker *time.Ticker
}

// NewHub creates a hub over a fresh world for config.
func NewHub(config Config) *Hub {
	device := compute.NewSoftwareDevice()
	source := noise.NewSized(config.Seed, config.ChunkEdge)

	h := &Hub{
		config:      config,
		device:      device,
		terrain:     terrain.NewStreaming(source, device, device.Queue(), config.TerrainConfig()),
		pipeline:    compute.NewCellPipeline(nil),
		inbound:     make(chan SignedInbound, 64),
		register:    make(chan Client, 8),
		unregister:  make(chan Client, 16),
		frameTicker: time.NewTicker(time.Second / time.Duration(config.FrameRate)),
		debugTicker: time.NewTicker(debugPeriod),
	}
	h.refreshStatus()
	return h
}

// Run is the hub goroutine. It never returns.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		log.Println("hub exited")
		os.Exit(1)
	}()

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
		case client := <-h.unregister:
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				if h == in.Client.Data().Hub {
					in.Inbound(h, in.Client)
				}

				if n--; n <= 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.frameTicker.C:
			h.stepFrame()
		case <-h.debugTicker.C:
			h.terrain.Debug()
		}
	}
}

// stepFrame advances the world one frame: move the focal point, run the
// compute pass, refresh the status JSON, and broadcast stats.
func (h *Hub) stepFrame() {
	h.frame++

	if h.hasFocus {
		h.terrain.UpdateFocalPosition(h.focus.X, h.focus.Y)
	}
	h.terrain.StepSimulation(h.pipeline)

	stats := h.buildStats()
	h.refreshStatusFrom(stats)

	for client := h.clients.First; client != nil; client = client.Data().Next {
		client.Send(stats)
	}
}

func (h *Hub) buildStats() Stats {
	minX, minY, maxX, maxY := h.terrain.VisibleBounds()
	return Stats{
		Stats:          h.terrain.Stats(),
		Frame:          h.frame,
		FocalChunk:     h.terrain.FocalChunk(),
		BoundsMinX:     minX,
		BoundsMinY:     minY,
		BoundsMaxX:     maxX,
		BoundsMaxY:     maxY,
		AllocatedBytes: h.device.Allocated(),
	}
}

func (h *Hub) refreshStatus() {
	h.refreshStatusFrom(h.buildStats())
}

func (h *Hub) refreshStatusFrom(stats Stats) {
	buf, err := json.Marshal(stats)
	if err != nil {
		log.Println("status marshal error:", err)
		return
	}
	h.statusJSON.Store(buf)
}

// buildRegion snapshots the loaded chunks intersecting a world-space
// rectangle, compressing each chunk's cells.
func (h *Hub) buildRegion(q QueryRegion) Region {
	chunks := h.terrain.QueryRegion(q.MinX, q.MinY, q.MaxX, q.MaxY)

	region := Region{
		MinX:      q.MinX,
		MinY:      q.MinY,
		MaxX:      q.MaxX,
		MaxY:      q.MaxY,
		ChunkEdge: h.config.ChunkEdge,
		Chunks:    make([]RegionChunk, 0, len(chunks)),
	}

	for _, chunk := range chunks {
		compressed, rawSize := compressCells(chunk.Cells)
		region.Chunks = append(region.Chunks, RegionChunk{
			Coord:   chunk.Coord,
			State:   chunk.State,
			RawSize: rawSize,
			Cells:   compressed,
		})
	}

	return region
}
