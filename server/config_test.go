// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if config != DefaultConfig() {
		t.Errorf("config %+v", config)
	}
	if err = config.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("port: 9000\nseed: 7\nchunk_edge: 64\ngeneration:\n  sea_level: 32\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 9000 || config.Seed != 7 || config.ChunkEdge != 64 {
		t.Errorf("config %+v", config)
	}
	if config.Generation.SeaLevel != 32 {
		t.Errorf("sea level %d", config.Generation.SeaLevel)
	}
	// Untouched fields keep their defaults.
	if config.FrameRate != DefaultConfig().FrameRate {
		t.Errorf("frame rate %d", config.FrameRate)
	}
}

func TestLoadInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"radii":      "simulation_radius: 5\nload_radius: 3\n",
		"budget":     "max_generations_per_frame: 0\n",
		"port":       "port: -1\n",
		"frame rate": "frame_rate: 0\n",
		"syntax":     "port: [\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: no error", name)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("no error for missing file")
	}
}

func TestTerrainConfig(t *testing.T) {
	config := DefaultConfig()
	config.ChunkEdge = 32
	config.SimulationRadius = 1

	streaming := config.TerrainConfig()
	if streaming.ChunkEdge != 32 || streaming.SimulationRadius != 1 {
		t.Errorf("streaming config %+v", streaming)
	}
	if streaming.Params != config.Generation {
		t.Error("generation params not carried over")
	}
}
