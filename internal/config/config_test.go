package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "fieldline" {
		t.Errorf("expected mode fieldline, got %s", cfg.Mode)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Tmax <= 0 {
		t.Error("tmax should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := GetPreset("gc_boozer_vacuum")
	if cfg == nil {
		t.Fatal("expected preset gc_boozer_vacuum")
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Mode != cfg.Mode || loaded.Boozer != cfg.Boozer {
		t.Errorf("round trip mismatch: got %+v, want mode=%s boozer=%s", loaded, cfg.Mode, cfg.Boozer)
	}
	if loaded.InitState.S != cfg.InitState.S {
		t.Errorf("init state s = %v, want %v", loaded.InitState.S, cfg.InitState.S)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(os.TempDir(), "fltrace-does-not-exist.yaml")); err == nil {
		t.Error("expected error loading nonexistent file")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected at least one preset")
	}
}
