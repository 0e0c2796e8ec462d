package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Defaults()
	if cfg != def {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	src := "[backtrace]\ndepth = 10\n\n[crashdump]\nenabled = false\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(src), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backtrace.Depth != 10 {
		t.Fatalf("depth = %d, want 10", cfg.Backtrace.Depth)
	}
	if cfg.Crashdump.Enabled {
		t.Fatalf("crashdump should be disabled by the file")
	}
	// Unset keys keep defaults.
	if cfg.Output.Color != "auto" || cfg.Crashdump.Ring != 128 {
		t.Fatalf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoadFindsFileInParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[backtrace]\ndepth = 7\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backtrace.Depth != 7 {
		t.Fatalf("walk-up discovery failed: %+v", cfg)
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[output]\ncolor = \"sometimes\"\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("invalid color mode accepted")
	}
}

func TestLoadClampsDepth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[backtrace]\ndepth = -1\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backtrace.Depth != Defaults().Backtrace.Depth {
		t.Fatalf("depth = %d, want default", cfg.Backtrace.Depth)
	}
}
