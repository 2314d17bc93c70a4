// Package config loads and saves the application configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// Config holds user-tunable application settings.
type Config struct {
	// Paths
	DatabasePath string `yaml:"database_path"`
	ExportDir    string `yaml:"export_dir"`
	LogPath      string `yaml:"log_path"`

	// Editor
	FrameRate int `yaml:"frame_rate"` // selector samples per second
	ScrubStep int `yaml:"scrub_step"` // position units per key press

	// Theme
	AccentColor string `yaml:"accent_color"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lyrpro", "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DatabasePath:  filepath.Join(home, ".local", "share", "lyrpro", "lyrpro.sqlite"),
		ExportDir:     filepath.Join(home, "lyrics"),
		LogPath:       filepath.Join(home, ".local", "state", "lyrpro", "lyrpro.log"),
		FrameRate:     30,
		ScrubStep:     5,
		AccentColor:   "#00FFFF",
		ConfigVersion: CurrentConfigVersion,
	}
}

// Load reads the config at path, writing defaults on first run.
// Missing fields fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configFilePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	path := c.configFilePath
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalize clamps nonsense values back to usable defaults.
func (c *Config) normalize() {
	def := Default()
	if c.FrameRate < 1 || c.FrameRate > 120 {
		c.FrameRate = def.FrameRate
	}
	if c.ScrubStep < 1 {
		c.ScrubStep = def.ScrubStep
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.AccentColor == "" {
		c.AccentColor = def.AccentColor
	}
	if c.ConfigVersion == 0 {
		c.ConfigVersion = CurrentConfigVersion
	}
}
