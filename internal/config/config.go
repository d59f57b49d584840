// Package config loads pixfx command-line defaults from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gogpu/pixfx/effect"
)

// Config holds the settings of the pixfx tool.
type Config struct {
	OutDir  string `koanf:"out_dir"` // output directory, empty means next to the input
	Suffix  string `koanf:"suffix"`  // appended to the input base name (default: "_fx")
	Format  string `koanf:"format"`  // output format, empty means keep the input extension
	Quality int    `koanf:"quality"` // JPEG quality 1-100 (default: 90)
	Workers int    `koanf:"workers"` // concurrent files, 0 means GOMAXPROCS

	Noise     NoiseConfig     `koanf:"noise"`
	Threshold ThresholdConfig `koanf:"threshold"`
}

// NoiseConfig holds the default noise range.
type NoiseConfig struct {
	Lo *int `koanf:"lo"` // default: -5
	Hi *int `koanf:"hi"` // default: 5
}

// ThresholdConfig holds the default threshold cutoff.
type ThresholdConfig struct {
	Cutoff *int `koanf:"cutoff"` // default: 127
}

// Load reads the default config locations followed by extra, later files
// overriding earlier ones. Default locations that do not exist are skipped;
// an extra path that does not exist is an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	for _, path := range extra {
		if path == "" {
			continue
		}
		path = expandPath(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Suffix == "" {
		c.Suffix = "_fx"
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = 90
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	c.Format = strings.TrimPrefix(strings.ToLower(c.Format), ".")
	if c.OutDir != "" {
		c.OutDir = expandPath(c.OutDir)
	}
}

// EffectSettings returns the registry defaults with config overrides applied.
func (c *Config) EffectSettings() effect.Settings {
	s := effect.DefaultSettings
	if c.Noise.Lo != nil {
		s.NoiseLo = *c.Noise.Lo
	}
	if c.Noise.Hi != nil {
		s.NoiseHi = *c.Noise.Hi
	}
	if c.Threshold.Cutoff != nil {
		s.ThresholdCutoff = *c.Threshold.Cutoff
	}
	return s
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/pixfx/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pixfx", "config.toml"))
	}

	// 2. ./pixfx.toml (pwd, highest priority)
	paths = append(paths, "pixfx.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
