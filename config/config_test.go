package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))
	if cfg != Default() {
		t.Fatalf("missing file should yield defaults: %+v", cfg)
	}
}

func TestLoadCorruptedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cfg := Load(path); cfg != Default() {
		t.Fatalf("corrupted file should yield defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellframe.json")
	want := Config{
		Background:    "#000000",
		DebugOverlay:  true,
		OverlayCorner: "bottom-left",
		ThreadedFlush: false,
		TargetFPS:     30,
		CapturePath:   "frames.db",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(path); got != want {
		t.Fatalf("round trip drifted: %+v vs %+v", got, want)
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	cfg.Background = "#ff8000"
	c, err := cfg.BackgroundColor()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.A != 1 || c.R < 0.99 || c.G < 0.49 || c.G > 0.51 || c.B != 0 {
		t.Fatalf("unexpected color: %+v", c)
	}

	cfg.Background = "purple-ish"
	if _, err := cfg.BackgroundColor(); err == nil {
		t.Fatalf("invalid hex accepted")
	}
}
