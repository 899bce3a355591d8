package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies != 65536 {
		t.Errorf("expected 65536 bodies, got %d", cfg.Bodies)
	}
	if cfg.Steps != 100 {
		t.Errorf("expected 100 steps, got %d", cfg.Steps)
	}
	if cfg.Params() != dynamo.DefaultParams() {
		t.Errorf("default physics differ from dynamo defaults: %+v", cfg.Params())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "bodies: 256\nworkers: 3\nphysics:\n  dt: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Bodies != 256 || cfg.Workers != 3 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Steps != DefaultSteps {
		t.Errorf("expected default steps, got %d", cfg.Steps)
	}
	if cfg.Physics.Dt != 0.5 {
		t.Errorf("expected dt 0.5, got %g", cfg.Physics.Dt)
	}
	if cfg.Physics.Mass != dynamo.DefaultMass {
		t.Errorf("expected default mass, got %g", cfg.Physics.Mass)
	}
}

func TestLoadOver_PresetKeepsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("steps: 7\nphysics:\n  dt: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("reference-fast")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("LoadOver failed: %v", err)
	}

	if !cfg.FastMath {
		t.Error("fast_math from the preset was dropped")
	}
	if cfg.Steps != 7 || cfg.Physics.Dt != 2 {
		t.Errorf("file values not applied: steps=%d dt=%g", cfg.Steps, cfg.Physics.Dt)
	}
	if cfg.Physics.Mass != dynamo.DefaultMass {
		t.Errorf("unset physics key lost: mass=%g", cfg.Physics.Mass)
	}
	if base.Steps != 100 {
		t.Error("LoadOver modified its base")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Bodies = 12
	cfg.FastMath = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("bodies: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative bodies", func(c *Config) { c.Bodies = -1 }, dynamo.ErrInvalidBodyCount},
		{"negative steps", func(c *Config) { c.Steps = -5 }, dynamo.ErrNegativeSteps},
		{"negative workers", func(c *Config) { c.Workers = -2 }, dynamo.ErrParameterBounds},
		{"zero mass", func(c *Config) { c.Physics.Mass = 0 }, dynamo.ErrParameterBounds},
		{"negative softening", func(c *Config) { c.Physics.Softening = -1 }, dynamo.ErrParameterBounds},
		{"zero dt", func(c *Config) { c.Physics.Dt = 0 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 6
	cfg.FastMath = true
	cfg.ValidateState = true

	ec := cfg.EngineConfig()
	if ec.Workers != 6 || !ec.FastMath || !ec.ValidateState {
		t.Errorf("engine config not carried over: %+v", ec)
	}
	if ec.Params != cfg.Params() {
		t.Error("engine params differ")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("grid4")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies != 4 || cfg.Steps != 1 {
		t.Errorf("unexpected grid4 preset: %+v", cfg)
	}

	cfg.Bodies = 99
	if Presets["grid4"].Bodies != 4 {
		t.Error("GetPreset returned shared preset")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
