package viewer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neuroviz/eegview/viewer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eegview.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := viewer.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
default_color_map: jet
width: 640
height: 200
log_level: debug
`)
	cfg, err := viewer.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultColorMap != "jet" {
		t.Errorf("color map = %q, want jet", cfg.DefaultColorMap)
	}
	if cfg.Width != 640 || cfg.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 640x200", cfg.Width, cfg.Height)
	}
	// Unset keys keep their defaults.
	if len(cfg.Channels) != 4 {
		t.Errorf("channels = %v, want default four leads", cfg.Channels)
	}
}

func TestLoadConfigUnknownPalette(t *testing.T) {
	path := writeConfig(t, "default_color_map: plasma\n")
	if _, err := viewer.LoadConfig(path); err == nil {
		t.Fatal("want error for unknown palette")
	}
}

func TestLoadConfigBadDimensions(t *testing.T) {
	path := writeConfig(t, "width: -1\n")
	if _, err := viewer.LoadConfig(path); err == nil {
		t.Fatal("want error for negative width")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := viewer.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
