// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package tree

import (
	"testing"

	"github.com/TonyGermaneri/genesis-sub003/world"
)

func TestQuadTreeInsertSingle(t *testing.T) {
	q := New[string](world.AABBFrom(0, 0, 1000, 1000), 4, 8)

	if !q.Insert(world.AABBFrom(100, 100, 10, 10), "object1") {
		t.Fatal("insert inside bounds failed")
	}
	if q.Stats().Objects != 1 {
		t.Errorf("object count = %d, want 1", q.Stats().Objects)
	}
}

func TestQuadTreeInsertOutsideBounds(t *testing.T) {
	q := New[string](world.AABBFrom(0, 0, 100, 100), 4, 8)

	if q.Insert(world.AABBFrom(200, 200, 10, 10), "outside") {
		t.Error("insert outside bounds should fail")
	}
	if q.Stats().Objects != 0 {
		t.Errorf("object count = %d, want 0", q.Stats().Objects)
	}
}

func TestQuadTreeSubdivide(t *testing.T) {
	q := New[string](world.AABBFrom(0, 0, 1000, 1000), 2, 8)

	q.Insert(world.AABBFrom(10, 10, 5, 5), "nw1")
	q.Insert(world.AABBFrom(20, 20, 5, 5), "nw2")
	q.Insert(world.AABBFrom(30, 30, 5, 5), "nw3")

	stats := q.Stats()
	if stats.Nodes == 1 {
		t.Error("tree should have subdivided")
	}
	if stats.Objects != 3 {
		t.Errorf("object count = %d, want 3", stats.Objects)
	}
}

func TestQuadTreeQuery(t *testing.T) {
	q := New[string](world.AABBFrom(0, 0, 1000, 1000), 4, 8)

	q.Insert(world.AABBFrom(100, 100, 10, 10), "a")
	q.Insert(world.AABBFrom(500, 500, 10, 10), "b")
	q.Insert(world.AABBFrom(900, 900, 10, 10), "c")

	results := q.Query(world.AABBFrom(0, 0, 200, 200))
	if len(results) != 1 || results[0] != "a" {
		t.Errorf("query returned %v, want [a]", results)
	}

	all := q.Query(world.AABBFrom(0, 0, 1000, 1000))
	if len(all) != 3 {
		t.Errorf("full query returned %d results, want 3", len(all))
	}
}

func TestQuadTreeQueryWhere(t *testing.T) {
	q := New[int](world.AABBFrom(0, 0, 1000, 1000), 4, 8)

	for i := 0; i < 10; i++ {
		q.Insert(world.AABBFrom(float32(i)*50, float32(i)*50, 10, 10), i)
	}

	even := q.QueryWhere(world.AABBFrom(0, 0, 1000, 1000), func(v int) bool { return v%2 == 0 })
	if len(even) != 5 {
		t.Errorf("filtered query returned %d results, want 5", len(even))
	}
}

func TestQuadTreeRemoveWhere(t *testing.T) {
	q := New[int](world.AABBFrom(0, 0, 1000, 1000), 4, 8)

	q.Insert(world.AABBFrom(100, 100, 10, 10), 1)
	q.Insert(world.AABBFrom(200, 200, 10, 10), 2)
	q.Insert(world.AABBFrom(300, 300, 10, 10), 3)

	removed := q.RemoveWhere(func(v int) bool { return v%2 == 0 })
	if removed != 1 {
		t.Errorf("removed %d, want 1", removed)
	}
	if q.Stats().Objects != 2 {
		t.Errorf("object count = %d, want 2", q.Stats().Objects)
	}
}

func TestQuadTreeClear(t *testing.T) {
	q := New[int](world.AABBFrom(0, 0, 1000, 1000), 2, 8)

	for i := 0; i < 10; i++ {
		q.Insert(world.AABBFrom(float32(i)*50, float32(i)*50, 10, 10), i)
	}

	q.Clear()
	stats := q.Stats()
	if stats.Objects != 0 || stats.Nodes != 1 {
		t.Errorf("after clear: %+v", stats)
	}
}

func TestQuadTreeStats(t *testing.T) {
	q := New[int](world.AABBFrom(0, 0, 1000, 1000), 2, 4)

	for i := 0; i < 20; i++ {
		x := float32(i%10) * 100
		y := float32(i/10) * 100
		q.Insert(world.AABBFrom(x, y, 5, 5), i)
	}

	stats := q.Stats()
	if stats.Objects != 20 {
		t.Errorf("object count = %d, want 20", stats.Objects)
	}
	if stats.Nodes <= 1 || stats.MaxDepth == 0 {
		t.Errorf("tree did not subdivide: %+v", stats)
	}
}

func TestQuadTreeSpanningEntryStaysQueryable(t *testing.T) {
	q := New[string](world.AABBFrom(0, 0, 100, 100), 2, 4)

	q.Insert(world.AABBFrom(10, 10, 5, 5), "small1")
	q.Insert(world.AABBFrom(20, 20, 5, 5), "small2")
	q.Insert(world.AABBFrom(30, 30, 5, 5), "small3")
	// Spans multiple quadrants, must stay at an interior node.
	q.Insert(world.AABBFrom(40, 40, 30, 30), "spanning")

	results := q.Query(world.AABBFrom(45, 45, 10, 10))
	found := false
	for _, r := range results {
		if r == "spanning" {
			found = true
		}
	}
	if !found {
		t.Error("spanning entry not returned by query")
	}
}

func BenchmarkQuadTreeQuery(b *testing.B) {
	q := New[int](world.AABBFrom(0, 0, 10000, 10000), 16, 10)
	for i := 0; i < 10000; i++ {
		x := float32(i%100) * 100
		y := float32(i/100) * 100
		q.Insert(world.AABBFrom(x, y, 5, 5), i)
	}
	rng := world.AABBFrom(2000, 2000, 1920, 1080)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = q.Query(rng)
	}
}
