package viewer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neuroviz/eegview/recording"
	"github.com/neuroviz/eegview/render"
)

// Config holds viewer session settings.
type Config struct {
	// Channels is the known channel set used to classify power columns.
	Channels []string `yaml:"channels"`
	// DefaultColorMap is used when a view request names no palette.
	DefaultColorMap string `yaml:"default_color_map"`
	// Width and Height are the raster dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the standard four-lead viewer configuration.
func DefaultConfig() *Config {
	return &Config{
		Channels:        []string{"LL", "RL", "LP", "RP"},
		DefaultColorMap: render.Viridis.Name,
		Width:           1024,
		Height:          400,
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unusable settings.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("raster dimensions %dx%d must be positive", c.Width, c.Height)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("channel set is empty")
	}
	if _, ok := render.PaletteByName(c.DefaultColorMap); !ok {
		return fmt.Errorf("unknown color map %q (have %v)", c.DefaultColorMap, render.PaletteNames())
	}
	return nil
}

// ChannelIDs returns the configured channel set as typed ids.
func (c *Config) ChannelIDs() []recording.ChannelID {
	ids := make([]recording.ChannelID, len(c.Channels))
	for i, name := range c.Channels {
		ids[i] = recording.ChannelID(name)
	}
	return ids
}
