// Package config loads the annotator's JSON configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Image       ImageConfig       `json:"image"`
	Grid        GridConfig        `json:"grid"`
	Interaction InteractionConfig `json:"interaction"`
	OCR         OCRConfig         `json:"ocr"`
}

// ImageConfig controls image loading
type ImageConfig struct {
	MaxWidth int      `json:"max_width"`
	Formats  []string `json:"formats"`
}

// GridConfig controls the overlay grid
type GridConfig struct {
	Cells int `json:"cells"`
}

// InteractionConfig controls pointer handling
type InteractionConfig struct {
	ProximityPx    int    `json:"proximity_px"`
	SelectModifier string `json:"select_modifier"`
	DeleteModifier string `json:"delete_modifier"`
}

// OCRConfig controls room label recognition
type OCRConfig struct {
	Enabled  bool   `json:"enabled"`
	Language string `json:"language"`
}

// Modifier key names accepted in InteractionConfig.
var validModifiers = []string{"ctrl", "alt", "shift", "super"}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			MaxWidth: 1000,
			Formats:  []string{"png", "jpg", "jpeg", "bmp", "tif", "tiff", "webp"},
		},
		Grid: GridConfig{
			Cells: 40,
		},
		Interaction: InteractionConfig{
			ProximityPx:    3,
			SelectModifier: "ctrl",
			DeleteModifier: "alt",
		},
		OCR: OCRConfig{
			Enabled:  false,
			Language: "eng",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields absent from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads the file at filename, falling back to defaults when it
// does not exist. The result is validated.
func LoadOrDefault(filename string) (*Config, error) {
	config, err := LoadFromFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		config, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Image.MaxWidth < 1 {
		return fmt.Errorf("image.max_width must be positive")
	}

	if len(c.Image.Formats) == 0 {
		return fmt.Errorf("image.formats cannot be empty")
	}

	if c.Grid.Cells < 1 {
		return fmt.Errorf("grid.cells must be positive")
	}

	if c.Interaction.ProximityPx < 1 {
		return fmt.Errorf("interaction.proximity_px must be positive")
	}

	if !isModifier(c.Interaction.SelectModifier) {
		return fmt.Errorf("interaction.select_modifier %q must be one of %s",
			c.Interaction.SelectModifier, strings.Join(validModifiers, ", "))
	}

	if !isModifier(c.Interaction.DeleteModifier) {
		return fmt.Errorf("interaction.delete_modifier %q must be one of %s",
			c.Interaction.DeleteModifier, strings.Join(validModifiers, ", "))
	}

	if strings.EqualFold(c.Interaction.SelectModifier, c.Interaction.DeleteModifier) {
		return fmt.Errorf("interaction.select_modifier and interaction.delete_modifier must differ")
	}

	if c.OCR.Enabled && c.OCR.Language == "" {
		return fmt.Errorf("ocr.language is required when ocr is enabled")
	}

	return nil
}

// HasFormat reports whether ext (with or without the dot) is an accepted image format.
func (c *Config) HasFormat(ext string) bool {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, f := range c.Image.Formats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}

func isModifier(name string) bool {
	for _, m := range validModifiers {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(dir, "plan-annotator", "config.json")
}
