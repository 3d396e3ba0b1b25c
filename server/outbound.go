// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/klauspost/compress/zstd"

	"github.com/TonyGermaneri/genesis-sub003/terrain"
	"github.com/TonyGermaneri/genesis-sub003/world"
)

type (
	// Stats is the per-frame broadcast: streaming counters plus the
	// focal chunk and its visible bounds.
	Stats struct {
		terrain.Stats
		Frame      uint64           `json:"frame"`
		FocalChunk world.ChunkCoord `json:"focal_chunk"`
		BoundsMinX int32            `json:"bounds_min_x"`
		BoundsMinY int32            `json:"bounds_min_y"`
		BoundsMaxX int32            `json:"bounds_max_x"`
		BoundsMaxY int32            `json:"bounds_max_y"`
		// AllocatedBytes is the compute backend's live buffer memory.
		AllocatedBytes int `json:"allocated_bytes"`
	}

	// Region answers a QueryRegion with one entry per loaded chunk.
	Region struct {
		MinX      int32         `json:"minX"`
		MinY      int32         `json:"minY"`
		MaxX      int32         `json:"maxX"`
		MaxY      int32         `json:"maxY"`
		ChunkEdge int32         `json:"chunkEdge"`
		Chunks    []RegionChunk `json:"chunks"`
	}

	// RegionChunk carries one chunk's cells, zstd-compressed.
	// RawSize is the uncompressed byte length for the decoder.
	RegionChunk struct {
		Coord   world.ChunkCoord        `json:"coord"`
		State   terrain.ActivationState `json:"state"`
		RawSize int                     `json:"rawSize"`
		Cells   []byte                  `json:"cells"`
	}
)

func init() {
	registerOutbound(
		Stats{},
		Region{},
	)
}

// Region frames compress well (runs of identical cells) and are sent
// rarely, so one shared encoder suffices.
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))

func compressCells(cells []world.Cell) (compressed []byte, rawSize int) {
	raw := world.EncodeCells(nil, cells)
	return zstdEncoder.EncodeAll(raw, nil), len(raw)
}
