// Package config loads renderer settings from a JSON file, following the
// defaults-on-any-failure policy: a missing or corrupted file yields the
// default configuration with a logged warning, never a fatal error.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/cellframe/cell"
)

// Config holds renderer settings.
type Config struct {
	// Background is the terminal background as a hex color, e.g. "#1a1b26".
	Background string `json:"background"`

	// DebugOverlay toggles the stats overlay.
	DebugOverlay bool `json:"debug_overlay"`

	// OverlayCorner is one of top-left, top-right, bottom-left,
	// bottom-right.
	OverlayCorner string `json:"overlay_corner"`

	// ThreadedFlush moves terminal output off the render goroutine.
	ThreadedFlush bool `json:"threaded_flush"`

	// TargetFPS caps the host frame loop. Zero means uncapped.
	TargetFPS int `json:"target_fps"`

	// CapturePath is the frame-capture database location. Empty disables
	// capture.
	CapturePath string `json:"capture_path"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Background:    "#1a1b26",
		DebugOverlay:  false,
		OverlayCorner: "top-right",
		ThreadedFlush: true,
		TargetFPS:     60,
	}
}

// Load reads the config at path. A missing file is not an error; any
// failure falls back to defaults.
func Load(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Config: Failed to read %s: %v", path, err)
		}
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: Failed to parse %s: %v", path, err)
		return Default()
	}
	return cfg
}

// Save writes the config as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// BackgroundColor parses the hex background into an opaque RGBA.
func (c Config) BackgroundColor() (cell.RGBA, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return cell.RGBA{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	return cell.RGBA{R: float32(col.R), G: float32(col.G), B: float32(col.B), A: 1}, nil
}
