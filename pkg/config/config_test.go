package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memtop.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != time.Second {
		t.Fatalf("expected 1s default interval, got %v", cfg.Interval)
	}
	if cfg.ProcPath != "/proc" || cfg.Sort != "pss" || cfg.View != "processes" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "interval: 2s\nproc_path: /fakeproc\nsort: rss\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != 2*time.Second {
		t.Fatalf("expected 2s interval, got %v", cfg.Interval)
	}
	if cfg.ProcPath != "/fakeproc" {
		t.Fatalf("expected /fakeproc, got %s", cfg.ProcPath)
	}
	if cfg.Sort != "rss" {
		t.Fatalf("expected rss sort, got %s", cfg.Sort)
	}
	// Unset file keys keep their defaults.
	if cfg.View != "processes" {
		t.Fatalf("expected default view, got %s", cfg.View)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "interval: 2s\nsort: rss\n")
	t.Setenv("MEMTOP_INTERVAL", "3s")
	t.Setenv("MEMTOP_SORT", "shared")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Fatalf("expected env interval 3s, got %v", cfg.Interval)
	}
	if cfg.Sort != "shared" {
		t.Fatalf("expected env sort shared, got %s", cfg.Sort)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}

	path := writeConfig(t, "interval: banana\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed interval")
	}

	t.Setenv("MEMTOP_INTERVAL", "nope")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed MEMTOP_INTERVAL")
	}
}

func TestIntervalFloor(t *testing.T) {
	path := writeConfig(t, "interval: 1ms\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != minInterval {
		t.Fatalf("expected floor %v, got %v", minInterval, cfg.Interval)
	}
}
