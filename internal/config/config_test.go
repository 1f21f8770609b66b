package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtgproxy", "config.toml")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Default config file not created: %v", err)
	}
	if cfg.DPI != 300 || cfg.CardWidthMM != 63.5 || cfg.PageWidthMM != 210 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}

	// A second load reads the file it just wrote.
	again, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if *again != *cfg {
		t.Errorf("Reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadConfigFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("dpi = 150\ngap_mm = 1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.DPI != 150 {
		t.Errorf("Expected overridden DPI 150, got %d", cfg.DPI)
	}
	if cfg.GapMM != 1.0 {
		t.Errorf("Expected overridden gap 1.0, got %v", cfg.GapMM)
	}
	// Unset keys keep their defaults.
	if cfg.CardWidthMM != 63.5 {
		t.Errorf("Expected default card width, got %v", cfg.CardWidthMM)
	}
}

func TestPixelsOfTruncates(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		mm   float64
		want int
	}{
		{63.5, 750},  // card width at 300 DPI
		{88.9, 1050}, // card height
		{210, 2480},  // A4 width (truncated from 2480.3)
		{297, 3507},  // A4 height (truncated from 3507.8)
		{0.25, 2},    // gap
		{5, 59},      // top margin
		{0, 0},
	}
	for _, tt := range tests {
		if got := cfg.PixelsOf(tt.mm); got != tt.want {
			t.Errorf("PixelsOf(%v) = %d, want %d", tt.mm, got, tt.want)
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := DefaultConfig()
	bg, err := cfg.BackgroundColor()
	if err != nil {
		t.Fatalf("BackgroundColor failed: %v", err)
	}
	if bg.R != 0xff || bg.G != 0xff || bg.B != 0xff || bg.A != 0xff {
		t.Errorf("Expected opaque white, got %v", bg)
	}

	cfg.Background = "not-a-color"
	if _, err := cfg.BackgroundColor(); err == nil {
		t.Error("Expected error for invalid hex color")
	}
}
