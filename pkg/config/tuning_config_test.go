package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestShippedTuningMatchesDefaults(t *testing.T) {
	cfg, err := LoadTuning(filepath.Join("..", "..", TuningPath))
	if err != nil {
		t.Fatalf("LoadTuning failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTuning()) {
		t.Errorf("data/tuning.yaml differs from DefaultTuning():\n got %+v\nwant %+v", cfg, DefaultTuning())
	}
}

func TestParseTuningOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := ParseTuning([]byte("combat:\n  areaBlastRadius: 200\n"))
	if err != nil {
		t.Fatalf("ParseTuning failed: %v", err)
	}
	if cfg.Combat.AreaBlastRadius != 200 {
		t.Errorf("AreaBlastRadius = %v, want 200", cfg.Combat.AreaBlastRadius)
	}
	if cfg.Combat.DetonationRadius != 360 {
		t.Errorf("DetonationRadius should keep default 360, got %v", cfg.Combat.DetonationRadius)
	}
	if cfg.Ledger.StartingBullets != 50 {
		t.Errorf("StartingBullets should keep default 50, got %d", cfg.Ledger.StartingBullets)
	}
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*TuningConfig)
		errContains string
	}{
		{"zero canvas", func(c *TuningConfig) { c.Canvas.Width = 0 }, "canvas size"},
		{"zero blast radius", func(c *TuningConfig) { c.Combat.AreaBlastRadius = 0 }, "areaBlastRadius"},
		{"inverted bonus range", func(c *TuningConfig) { c.Combat.BossHitBonusMax = 0 }, "bossHitBonus"},
		{"inverted penalty range", func(c *TuningConfig) { c.Interaction.PenaltyMin = 5 }, "penalty"},
		{"negative bullets", func(c *TuningConfig) { c.Ledger.StartingBullets = -1 }, "ammunition"},
		{"zero cadence", func(c *TuningConfig) { c.Ledger.FullAutoCadenceMillis = 0 }, "fullAutoCadenceMillis"},
		{"roar chance", func(c *TuningConfig) { c.Boss.RoarChance = 2 }, "roarChance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTuning()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}

	if err := DefaultTuning().Validate(); err != nil {
		t.Errorf("default tuning should be valid: %v", err)
	}
}
