// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree implements a quadtree over axis-aligned rectangles for
// range queries against the chunk table.
package tree

import (
	"github.com/TonyGermaneri/genesis-sub003/world"
)

type (
	// QuadTree stores values keyed by bounding rectangles.
	QuadTree[T any] struct {
		bounds     world.AABB
		maxObjects int
		maxLevels  int
		level      int
		objects    []entry[T]
		children   *[4]QuadTree[T]
	}

	entry[T any] struct {
		bounds world.AABB
		value  T
	}

	// Stats describes the shape of a QuadTree.
	Stats struct {
		Nodes    int
		Objects  int
		MaxDepth int
		Leaves   int
	}
)

// New creates a quadtree covering bounds. Nodes subdivide once they hold
// more than maxObjects entries, down to maxLevels levels.
func New[T any](bounds world.AABB, maxObjects, maxLevels int) *QuadTree[T] {
	return &QuadTree[T]{
		bounds:     bounds,
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
	}
}

func (q *QuadTree[T]) Bounds() world.AABB {
	return q.bounds
}

// Insert adds a value keyed by bounds.
// Returns false if bounds lies outside the tree entirely.
func (q *QuadTree[T]) Insert(bounds world.AABB, value T) bool {
	if !q.bounds.Intersects(bounds) {
		return false
	}

	if q.children != nil {
		for i := range q.children {
			if q.children[i].bounds.Contains(bounds) {
				return q.children[i].Insert(bounds, value)
			}
		}
		// Spans multiple children, keep it here.
		q.objects = append(q.objects, entry[T]{bounds: bounds, value: value})
		return true
	}

	q.objects = append(q.objects, entry[T]{bounds: bounds, value: value})

	if len(q.objects) > q.maxObjects && q.level < q.maxLevels {
		q.subdivide()

		// Push down entries that fit entirely in a child.
		kept := q.objects[:0]
		for _, e := range q.objects {
			moved := false
			for i := range q.children {
				if q.children[i].bounds.Contains(e.bounds) {
					q.children[i].Insert(e.bounds, e.value)
					moved = true
					break
				}
			}
			if !moved {
				kept = append(kept, e)
			}
		}
		// Clear the tail so moved values don't linger.
		for i := len(kept); i < len(q.objects); i++ {
			q.objects[i] = entry[T]{}
		}
		q.objects = kept
	}

	return true
}

func (q *QuadTree[T]) subdivide() {
	quadrants := q.bounds.Quadrants()
	children := new([4]QuadTree[T])
	for i := range children {
		children[i] = QuadTree[T]{
			bounds:     quadrants[i],
			maxObjects: q.maxObjects,
			maxLevels:  q.maxLevels,
			level:      q.level + 1,
		}
	}
	q.children = children
}

// Query returns all values whose bounds intersect rng.
func (q *QuadTree[T]) Query(rng world.AABB) []T {
	var result []T
	q.query(rng, func(v T) bool { return true }, &result)
	return result
}

// QueryWhere returns values whose bounds intersect rng and satisfy pred.
func (q *QuadTree[T]) QueryWhere(rng world.AABB, pred func(T) bool) []T {
	var result []T
	q.query(rng, pred, &result)
	return result
}

func (q *QuadTree[T]) query(rng world.AABB, pred func(T) bool, result *[]T) {
	if !q.bounds.Intersects(rng) {
		return
	}

	for _, e := range q.objects {
		if e.bounds.Intersects(rng) && pred(e.value) {
			*result = append(*result, e.value)
		}
	}

	if q.children != nil {
		for i := range q.children {
			q.children[i].query(rng, pred, result)
		}
	}
}

// RemoveWhere removes every value satisfying pred and returns how many
// were removed.
func (q *QuadTree[T]) RemoveWhere(pred func(T) bool) int {
	removed := 0

	for i := 0; i < len(q.objects); {
		if pred(q.objects[i].value) {
			end := len(q.objects) - 1
			q.objects[i] = q.objects[end]
			q.objects[end] = entry[T]{}
			q.objects = q.objects[:end]
			removed++
		} else {
			i++
		}
	}

	if q.children != nil {
		for i := range q.children {
			removed += q.children[i].RemoveWhere(pred)
		}
	}

	return removed
}

// Clear removes all values and collapses the tree to its root.
func (q *QuadTree[T]) Clear() {
	q.objects = q.objects[:0]
	q.children = nil
}

// Stats walks the tree and reports its shape.
func (q *QuadTree[T]) Stats() Stats {
	var stats Stats
	q.collectStats(&stats, 0)
	return stats
}

func (q *QuadTree[T]) collectStats(stats *Stats, depth int) {
	stats.Nodes++
	stats.Objects += len(q.objects)
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if q.children == nil {
		stats.Leaves++
		return
	}
	for i := range q.children {
		q.children[i].collectStats(stats, depth+1)
	}
}
