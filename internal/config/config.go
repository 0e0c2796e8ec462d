// Package config loads the optional faultline.toml file that tunes the
// diagnostic bus: backtrace depth and filter, output color mode, crash-dump
// ring size. A missing file is not an error; every knob has a default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for, walking up from the start
// directory.
const FileName = "faultline.toml"

// Config is the decoded file plus defaults for absent keys.
type Config struct {
	Backtrace BacktraceConfig `toml:"backtrace"`
	Output    OutputConfig    `toml:"output"`
	Crashdump CrashdumpConfig `toml:"crashdump"`
}

type BacktraceConfig struct {
	// Depth caps full-backtrace captures.
	Depth int `toml:"depth"`
	// Filter is the substring used to skip machinery frames in
	// single-frame attribution.
	Filter string `toml:"filter"`
}

type OutputConfig struct {
	// Color is auto, on or off.
	Color string `toml:"color"`
}

type CrashdumpConfig struct {
	Enabled bool `toml:"enabled"`
	// Ring is the recorder capacity.
	Ring int `toml:"ring"`
}

// Defaults returns the configuration used when no file is found.
func Defaults() Config {
	return Config{
		Backtrace: BacktraceConfig{Depth: 25, Filter: "faultline/internal/diag"},
		Output:    OutputConfig{Color: "auto"},
		Crashdump: CrashdumpConfig{Enabled: true, Ring: 128},
	}
}

// Find walks up from startDir looking for FileName. ok is false when no
// file exists anywhere up the tree.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the config, filling defaults for anything the file
// leaves unset. Absence of a file yields pure defaults and no error.
func Load(startDir string) (Config, error) {
	cfg := Defaults()
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Backtrace.Depth < 1 {
		cfg.Backtrace.Depth = Defaults().Backtrace.Depth
	}
	if cfg.Crashdump.Ring < 1 {
		cfg.Crashdump.Ring = Defaults().Crashdump.Ring
	}
	switch cfg.Output.Color {
	case "auto", "on", "off":
	default:
		return cfg, fmt.Errorf("%s: invalid output.color %q (expected: auto|on|off)", path, cfg.Output.Color)
	}
	return cfg, nil
}
