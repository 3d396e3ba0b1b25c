// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

type AABB struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{X: x, Y: y, Width: width, Height: height}
}

func (a AABB) Right() float32 {
	return a.X + a.Width
}

func (a AABB) Bottom() float32 {
	return a.Y + a.Height
}

// Intersects a and b are intersecting
func (a AABB) Intersects(b AABB) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Contains a fully contains b
func (a AABB) Contains(b AABB) bool {
	return b.X >= a.X && b.Right() <= a.Right() && b.Y >= a.Y && b.Bottom() <= a.Bottom()
}

// ContainsPoint half-open on the max edges
func (a AABB) ContainsPoint(x, y float32) bool {
	return x >= a.X && x < a.Right() && y >= a.Y && y < a.Bottom()
}

// Quadrants All quadrants of a
func (a AABB) Quadrants() [4]AABB {
	var quadrants [4]AABB
	for i := range quadrants {
		quadrants[i] = a.Quadrant(i)
	}
	return quadrants
}

// Quadrant of a by index
func (a AABB) Quadrant(quadrant int) AABB {
	x, y := a.X, a.Y
	width := a.Width * 0.5
	height := a.Height * 0.5
	switch quadrant {
	case 1:
		x += width
	case 2:
		x += width
		y += height
	case 3:
		y += height
	}
	return AABB{X: x, Y: y, Width: width, Height: height}
}
