// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"testing"

	"github.com/TonyGermaneri/genesis-sub003/terrain"
	"github.com/TonyGermaneri/genesis-sub003/world"
)

func TestJsonIter(t *testing.T) {
	testStats := Message{Data: Stats{
		Stats: terrain.Stats{
			LoadedCount:        25,
			SimulatingCount:    9,
			PendingCount:       2,
			GeneratedThisFrame: 1,
			Recomputes:         4,
		},
		Frame:      7,
		FocalChunk: world.ChunkCoord{X: 1, Y: -2},
		BoundsMinX: -256,
		BoundsMinY: -1024,
		BoundsMaxX: 1023,
		BoundsMaxY: 255,
	}}

	const testStatsString = `{"data":{"loaded":25,"simulating":9,"pending":2,"generated_this_frame":1,"unloaded_this_frame":0,"recomputes":4,"frame":7,"focal_chunk":{"x":1,"y":-2},"bounds_min_x":-256,"bounds_min_y":-1024,"bounds_max_x":1023,"bounds_max_y":255,"allocated_bytes":0},"type":"stats"}`

	buf, err := json.Marshal(testStats)
	if err != nil {
		t.Fatal("error marshaling:", err.Error())
	}
	if !bytes.Equal(buf, []byte(testStatsString)) {
		t.Error("different output:\none:", testStatsString, "\ntwo:", string(buf))
	}
}

func TestJsonIterActivationState(t *testing.T) {
	var wrapper struct {
		State terrain.ActivationState `json:"state"`
	}
	wrapper.State = terrain.Simulating

	buf, err := json.Marshal(wrapper)
	if err != nil {
		t.Fatal("error marshaling:", err.Error())
	}
	if string(buf) != `{"state":"simulating"}` {
		t.Error("different output:", string(buf))
	}
}

func TestJsonIterInbound(t *testing.T) {
	var message Message
	err := json.Unmarshal([]byte(`{"type":"focus","data":{"x":12.5,"y":-3}}`), &message)
	if err != nil {
		t.Fatal("error unmarshaling:", err.Error())
	}
	focus, ok := message.Data.(Focus)
	if !ok {
		t.Fatalf("decoded %T", message.Data)
	}
	if focus.X != 12.5 || focus.Y != -3 {
		t.Errorf("focus %+v", focus)
	}

	// Data before type forces the second pass.
	err = json.Unmarshal([]byte(`{"data":{"minX":-1,"minY":-1,"maxX":1,"maxY":1},"type":"queryRegion"}`), &message)
	if err != nil {
		t.Fatal("error unmarshaling:", err.Error())
	}
	query, ok := message.Data.(QueryRegion)
	if !ok {
		t.Fatalf("decoded %T", message.Data)
	}
	if query.MinX != -1 || query.MaxY != 1 {
		t.Errorf("query %+v", query)
	}
}

func TestJsonIterInvalidInbound(t *testing.T) {
	var message Message
	err := json.Unmarshal([]byte(`{"type":"launchMissiles","data":{}}`), &message)
	if err != nil {
		t.Fatal("error unmarshaling:", err.Error())
	}
	invalid, ok := message.Data.(InvalidInbound)
	if !ok {
		t.Fatalf("decoded %T", message.Data)
	}
	if invalid.messageType != "launchMissiles" {
		t.Errorf("message type %q", invalid.messageType)
	}

	err = json.Unmarshal([]byte(`{"data":{}}`), &message)
	if err == nil {
		t.Error("no error for message without a type")
	}
}
