package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Image.MaxWidth != 1000 || cfg.Grid.Cells != 40 || cfg.Interaction.ProximityPx != 3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero max width", func(c *Config) { c.Image.MaxWidth = 0 }},
		{"no formats", func(c *Config) { c.Image.Formats = nil }},
		{"zero grid", func(c *Config) { c.Grid.Cells = 0 }},
		{"zero proximity", func(c *Config) { c.Interaction.ProximityPx = 0 }},
		{"unknown modifier", func(c *Config) { c.Interaction.SelectModifier = "meta" }},
		{"same modifiers", func(c *Config) { c.Interaction.DeleteModifier = "CTRL" }},
		{"ocr without language", func(c *Config) { c.OCR.Enabled = true; c.OCR.Language = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Grid.Cells = 20
	cfg.Interaction.SelectModifier = "shift"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if loaded.Grid.Cells != 20 || loaded.Interaction.SelectModifier != "shift" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"grid": {"cells": 10}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Grid.Cells != 10 {
		t.Errorf("cells = %d", cfg.Grid.Cells)
	}
	if cfg.Image.MaxWidth != 1000 {
		t.Errorf("max width = %d, want default", cfg.Image.MaxWidth)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Grid.Cells != 40 {
		t.Errorf("cells = %d", cfg.Grid.Cells)
	}
}

func TestLoadOrDefaultBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("LoadOrDefault accepted malformed JSON")
	}
}

func TestHasFormat(t *testing.T) {
	cfg := Default()
	for _, ext := range []string{".png", "JPG", ".tiff", "webp"} {
		if !cfg.HasFormat(ext) {
			t.Errorf("HasFormat(%q) = false", ext)
		}
	}
	if cfg.HasFormat(".gif") {
		t.Error("HasFormat(.gif) = true")
	}
}
