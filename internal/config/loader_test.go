package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := parseMerge(defaultMergeYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMergeConfig()) {
		t.Errorf("embedded YAML and DefaultMergeConfig() disagree:\n%+v\n%+v", cfg, DefaultMergeConfig())
	}
}

func TestLoadMergeFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadMerge("")
	if err != nil {
		t.Fatalf("LoadMerge() failed: %v", err)
	}
	if cfg.Spawn.Y != 80 {
		t.Errorf("Spawn.Y = %g, want 80", cfg.Spawn.Y)
	}
	if !reflect.DeepEqual(cfg.Balls.Values, []int{2, 4, 8}) {
		t.Errorf("Balls.Values = %v, want [2 4 8]", cfg.Balls.Values)
	}
}

func TestLoadMergeCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge.yaml")
	data := []byte("balls:\n  values: [2]\nphysics:\n  gravity: 500\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMerge(path)
	if err != nil {
		t.Fatalf("LoadMerge(%s) failed: %v", path, err)
	}
	if !reflect.DeepEqual(cfg.Balls.Values, []int{2}) {
		t.Errorf("Balls.Values = %v, want [2]", cfg.Balls.Values)
	}
	if cfg.Physics.Gravity != 500 {
		t.Errorf("Gravity = %g, want 500", cfg.Physics.Gravity)
	}
	// Keys absent from the file keep their defaults
	if cfg.Physics.Restitution != 0.6 || cfg.Balls.RadiusBase != 30 {
		t.Errorf("defaults not preserved: restitution=%g radius_base=%g", cfg.Physics.Restitution, cfg.Balls.RadiusBase)
	}
}

func TestLoadMergeUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "merge.yaml"), []byte("spawn:\n  cooldown_ticks: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMerge("")
	if err != nil {
		t.Fatalf("LoadMerge() failed: %v", err)
	}
	if cfg.Spawn.CooldownTicks != 3 {
		t.Errorf("CooldownTicks = %d, want 3", cfg.Spawn.CooldownTicks)
	}
}

func TestLoadMergeErrors(t *testing.T) {
	if _, err := LoadMerge(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("balls:\n  values: [3]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMerge(path)
	if err == nil {
		t.Fatal("expected validation error for value 3")
	}
	if !strings.Contains(err.Error(), "power of two") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MergeConfig)
		wantErr bool
	}{
		{"defaults", func(*MergeConfig) {}, false},
		{"empty values", func(c *MergeConfig) { c.Balls.Values = nil }, true},
		{"value one", func(c *MergeConfig) { c.Balls.Values = []int{1, 2} }, true},
		{"large power of two", func(c *MergeConfig) { c.Balls.Values = []int{2, 1024} }, false},
		{"restitution above one", func(c *MergeConfig) { c.Physics.Restitution = 1.5 }, true},
		{"zero substeps", func(c *MergeConfig) { c.Physics.Substeps = 0 }, true},
		{"spawn below field", func(c *MergeConfig) { c.Spawn.Y = 700 }, true},
		{"zero image size", func(c *MergeConfig) { c.Balls.ImageSize = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMergeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInnerFaces(t *testing.T) {
	cfg := DefaultMergeConfig()
	if cfg.InnerLeft() != 10 || cfg.InnerRight() != 490 {
		t.Errorf("inner faces = (%g, %g), want (10, 490)", cfg.InnerLeft(), cfg.InnerRight())
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("merge")) == 0 {
		t.Error("GetDefaultYAML(merge) should return the embedded file")
	}
	if GetDefaultYAML("flappy") != nil {
		t.Error("GetDefaultYAML should return nil for unknown games")
	}
}
