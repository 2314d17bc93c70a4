package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FrameRate != 30 || cfg.ScrubStep != 5 {
		t.Errorf("defaults wrong: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "frame_rate: 60\nscrub_step: -3\naccent_color: \"#FF00AA\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("frame_rate = %d, want 60", cfg.FrameRate)
	}
	if cfg.ScrubStep != 5 {
		t.Errorf("scrub_step = %d, want normalized default 5", cfg.ScrubStep)
	}
	if cfg.AccentColor != "#FF00AA" {
		t.Errorf("accent = %q", cfg.AccentColor)
	}
	if cfg.DatabasePath == "" {
		t.Error("database path should fall back to default")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("want parse error")
	}
}
