// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration for the timescrub host. Missing or broken
// files degrade to defaults with a log line, never a fatal error.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/timeslices/timescrub/scrub/position"
)

// Strategy names accepted in the config file.
const (
	StrategyTime   = "time"
	StrategyLayout = "layout"
)

// Config holds the host's tunables.
type Config struct {
	SlicesPath  string  `json:"slicesPath"`
	Strategy    string  `json:"strategy"`
	Sensitivity float64 `json:"sensitivity"`
	Interpolate bool    `json:"interpolate"`
	ShowLabels  bool    `json:"showLabels"`
	Haptics     bool    `json:"haptics"`
	Theme       string  `json:"theme"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		SlicesPath:  "slices.json",
		Strategy:    StrategyTime,
		Sensitivity: 0, // auto
		Interpolate: false,
		ShowLabels:  true,
		Haptics:     true,
		Theme:       "dark",
	}
}

// Load reads the config at path, filling gaps with defaults. Any failure is
// logged and the defaults are returned.
func Load(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Config: failed to read %s: %v", path, err)
		}
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: failed to parse %s: %v", path, err)
		return Default()
	}
	if cfg.Strategy != StrategyTime && cfg.Strategy != StrategyLayout {
		log.Printf("Config: unknown strategy %q, using %q", cfg.Strategy, StrategyTime)
		cfg.Strategy = StrategyTime
	}
	return cfg
}

// Save writes the config to path, creating parent directories.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// StrategyValue maps the config string to the position strategy.
func (c Config) StrategyValue() position.Strategy {
	if c.Strategy == StrategyLayout {
		return position.PositionalByLayout
	}
	return position.ProportionalByTime
}
