package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Width != 960 || cfg.Field.Height != 540 {
		t.Errorf("field = %dx%d, want 960x540", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Genome.Synapses != 30 {
		t.Errorf("synapses = %d, want 30", cfg.Genome.Synapses)
	}
	if cfg.Render.SleepColor != 0x808080 {
		t.Errorf("sleep_color = %#x, want 0x808080", cfg.Render.SleepColor)
	}

	wantCap := 960*540 + 10
	if cfg.Derived.Capacity != wantCap {
		t.Errorf("derived capacity = %d, want %d", cfg.Derived.Capacity, wantCap)
	}
	if cfg.Derived.TickDuration <= 0 {
		t.Errorf("derived tick duration = %v, want positive", cfg.Derived.TickDuration)
	}
}

func TestLoadOverridesSubset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := "field:\n  width: 4\n  height: 4\nschedule:\n  mode: population\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Field.Width != 4 || cfg.Field.Height != 4 {
		t.Errorf("field = %dx%d, want 4x4", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Schedule.Mode != ModePopulation {
		t.Errorf("mode = %q, want %q", cfg.Schedule.Mode, ModePopulation)
	}
	// Untouched keys keep their defaults
	if cfg.Genome.Synapses != 30 {
		t.Errorf("synapses = %d, want default 30", cfg.Genome.Synapses)
	}
	if cfg.Derived.Capacity != 16+10 {
		t.Errorf("capacity = %d, want 26", cfg.Derived.Capacity)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Field.Width = 0 }, "field size"},
		{"no synapses", func(c *Config) { c.Genome.Synapses = 0 }, "genome.synapses"},
		{"split above one", func(c *Config) { c.Reproduction.EnergySplit = 1.5 }, "energy_split"},
		{"split zero", func(c *Config) { c.Reproduction.EnergySplit = 0 }, "energy_split"},
		{"chance negative", func(c *Config) { c.Mutation.Chance = -0.1 }, "mutation.chance"},
		{"bad combining", func(c *Config) { c.Brain.Combining = "relu" }, "brain.combining"},
		{"bad mode", func(c *Config) { c.Schedule.Mode = "batch" }, "schedule.mode"},
		{"tps bounds", func(c *Config) { c.Schedule.MaxTPS = 0.5 }, "tps bounds"},
		{"retries", func(c *Config) { c.Population.SpawnRetries = 0 }, "spawn_retries"},
		{"negative min metabolism", func(c *Config) {
			c.Genome.MinMetabolism = -0.5
			c.Genome.MetabolismRange = 0.1
		}, "genome.min_metabolism"},
		{"negative metabolism range", func(c *Config) { c.Genome.MetabolismRange = -0.1 }, "metabolism_range"},
		{"no metabolism", func(c *Config) {
			c.Genome.MinMetabolism = 0
			c.Genome.MetabolismRange = 0
		}, "positive drain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestComputeDerivedExplicitCapacity(t *testing.T) {
	cfg := Default()
	cfg.Population.Capacity = 50
	cfg.ComputeDerived()
	if cfg.Derived.Capacity != 50 {
		t.Errorf("capacity = %d, want 50", cfg.Derived.Capacity)
	}
}

func TestTickDuration(t *testing.T) {
	if got := TickDuration(1000); got != time.Millisecond {
		t.Errorf("TickDuration(1000) = %v, want 1ms", got)
	}
	if got := TickDuration(1e12); got != time.Nanosecond {
		t.Errorf("TickDuration(1e12) = %v, want 1ns floor", got)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Mutation.Chance = 0.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written config failed: %v", err)
	}
	if loaded.Mutation.Chance != 0.25 {
		t.Errorf("mutation chance = %v, want 0.25", loaded.Mutation.Chance)
	}
}
