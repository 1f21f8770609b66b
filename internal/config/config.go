package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

const mmPerInch = 25.4

// Config represents the application configuration
type Config struct {
	DPI          int     `toml:"dpi"`
	CardWidthMM  float64 `toml:"card_width_mm"`
	CardHeightMM float64 `toml:"card_height_mm"`
	PageWidthMM  float64 `toml:"page_width_mm"`
	PageHeightMM float64 `toml:"page_height_mm"`
	GapMM        float64 `toml:"gap_mm"`
	TopMarginMM  float64 `toml:"top_margin_mm"`
	SideMarginMM float64 `toml:"side_margin_mm"`
	Background   string  `toml:"background"`
	CacheDir     string  `toml:"cache_dir"`
	Quality      string  `toml:"quality"`
	RatePerSec   float64 `toml:"rate_per_sec"`
}

// DefaultConfig returns the built-in defaults: official MTG card
// dimensions on A4 at 300 DPI, with a tiny gap between cards for
// cutting and a top margin for the printer.
func DefaultConfig() *Config {
	return &Config{
		DPI:          300,
		CardWidthMM:  63.5,
		CardHeightMM: 88.9,
		PageWidthMM:  210,
		PageHeightMM: 297,
		GapMM:        0.25,
		TopMarginMM:  5,
		SideMarginMM: 0,
		Background:   "#ffffff",
		CacheDir:     filepath.Join(GetCacheDir(), "images"),
		Quality:      "png",
		RatePerSec:   10,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the application cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "mtgproxy")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "mtgproxy", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if absent
func LoadConfig() (*Config, error) {
	return LoadConfigFile(GetConfigFilePath())
}

// LoadConfigFile loads a config file from an explicit path
func LoadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := DefaultConfig()

	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

// PixelsOf converts a physical length in millimeters to pixels at the
// configured DPI, truncated toward zero.
func (c *Config) PixelsOf(mm float64) int {
	return int(mm / mmPerInch * float64(c.DPI))
}

// BackgroundColor parses the configured page background hex color
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	parsed, err := colorful.Hex(c.Background)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background color %q: %v", c.Background, err)
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
