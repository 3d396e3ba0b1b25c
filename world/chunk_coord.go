// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "fmt"

// ChunkCoord identifies a chunk by its position in chunk-grid space.
type ChunkCoord struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// ChunkCoordAt returns the coordinate of the chunk containing the given
// world position. Floor division, so negative positions land in negative
// chunks instead of being truncated toward chunk zero.
func ChunkCoordAt(worldX, worldY, edge int32) ChunkCoord {
	return ChunkCoord{X: floorDiv(worldX, edge), Y: floorDiv(worldY, edge)}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// WorldOrigin returns the world position of the chunk's minimum corner.
func (c ChunkCoord) WorldOrigin(edge int32) (int32, int32) {
	return c.X * edge, c.Y * edge
}

// Chebyshev returns max(|dx|, |dy|) to another coordinate, producing
// square rings of equal distance on the chunk grid.
func (c ChunkCoord) Chebyshev(other ChunkCoord) int32 {
	dx := abs32(c.X - other.X)
	dy := abs32(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("chunk(%d, %d)", c.X, c.Y)
}
