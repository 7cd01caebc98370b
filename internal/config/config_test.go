package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxParticles <= 0 {
		t.Error("max particles should be positive")
	}
	if cfg.MinSpeed > cfg.MaxSpeed {
		t.Error("min speed should not exceed max speed")
	}
	if cfg.ConnectionDistance <= 0 {
		t.Error("connection distance should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative particles", func(c *Config) { c.MaxParticles = -1 }},
		{"negative connections", func(c *Config) { c.MaxConnections = -1 }},
		{"speed range inverted", func(c *Config) { c.MinSpeed = 1.0; c.MaxSpeed = 0.5 }},
		{"size range inverted", func(c *Config) { c.MinSize = 5.0; c.MaxSize = 1.0 }},
		{"opacity range inverted", func(c *Config) { c.MinOpacity = 0.9; c.MaxOpacity = 0.3 }},
		{"negative distance", func(c *Config) { c.ConnectionDistance = -10 }},
		{"zero pixel ratio", func(c *Config) { c.PixelRatio = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()

	n := 10
	d := 99.0
	drift := true
	merged := base.Merge(Partial{
		MaxParticles:       &n,
		ConnectionDistance: &d,
		Drift:              &drift,
	})

	if merged.MaxParticles != 10 {
		t.Errorf("expected 10 particles, got %d", merged.MaxParticles)
	}
	if merged.ConnectionDistance != 99.0 {
		t.Errorf("expected distance 99, got %f", merged.ConnectionDistance)
	}
	if !merged.Drift {
		t.Error("expected drift enabled")
	}
	if merged.MinSpeed != base.MinSpeed {
		t.Error("untouched field changed")
	}
	if base.MaxParticles == 10 {
		t.Error("merge mutated the receiver")
	}
}

func TestMergeEmptyPartial(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(Partial{})
	if merged != base {
		t.Error("empty partial should leave config unchanged")
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driftfield.yaml")

	cfg := DefaultConfig()
	cfg.MaxParticles = 25
	cfg.ResizeDebounce = 100 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.MaxParticles != 25 {
		t.Errorf("expected 25 particles, got %d", loaded.MaxParticles)
	}
	if loaded.ResizeDebounce != 100*time.Millisecond {
		t.Errorf("expected 100ms debounce, got %v", loaded.ResizeDebounce)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	cfg := DefaultConfig()
	cfg.MaxParticles = -5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error loading invalid config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg, ok := GetPreset("calm")
	if !ok {
		t.Fatal("expected calm preset")
	}
	if cfg.MaxParticles != 30 {
		t.Errorf("expected 30 particles, got %d", cfg.MaxParticles)
	}

	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected miss for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestParticleBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxParticles = 50

	tests := []struct {
		w, h     float64
		expected int
	}{
		{100, 100, 0},          // below one particle's worth of area
		{300, 150, 3},          // 45000 / 15000
		{15000, 100, 50},       // floor term over the cap
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := cfg.ParticleBudget(tt.w, tt.h); got != tt.expected {
			t.Errorf("budget(%v, %v): expected %d, got %d", tt.w, tt.h, tt.expected, got)
		}
	}
}
