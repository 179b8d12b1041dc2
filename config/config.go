// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scheduling modes.
const (
	ModeRoundRobin = "round_robin" // one cell per tick, persistent cursor
	ModePopulation = "population"  // whole live list per tick
)

// Combining modes.
const (
	CombiningEvolved = "evolved" // per-neuron combiner is heritable
	CombiningSigmoid = "sigmoid" // every neuron uses the sigmoid
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Field        FieldConfig        `yaml:"field"`
	Population   PopulationConfig   `yaml:"population"`
	Genome       GenomeConfig       `yaml:"genome"`
	Brain        BrainConfig        `yaml:"brain"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Schedule     ScheduleConfig     `yaml:"schedule"`
	Render       RenderConfig       `yaml:"render"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds the toroidal grid dimensions in cells.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial       int `yaml:"initial"`
	Capacity      int `yaml:"capacity"`       // Pool slots (0 = field area + slack)
	CapacitySlack int `yaml:"capacity_slack"` // Extra slots beyond the field area
	SpawnRetries  int `yaml:"spawn_retries"`  // Attempts to find an empty cell for a spawn
}

// GenomeConfig holds the shape of a freshly drawn genome.
type GenomeConfig struct {
	Synapses        int     `yaml:"synapses"`
	MinMetabolism   float64 `yaml:"min_metabolism"`
	MetabolismRange float64 `yaml:"metabolism_range"` // metabolism = min + U[0, range)
}

// BrainConfig holds brain evaluation parameters.
type BrainConfig struct {
	Combining        string `yaml:"combining"`         // evolved | sigmoid
	CarryActivations bool   `yaml:"carry_activations"` // keep prior activations as synapse sources
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Chance float64 `yaml:"chance"` // Per-field Bernoulli probability on birth
}

// ReproductionConfig holds mitosis parameters.
type ReproductionConfig struct {
	EnergySplit float64 `yaml:"energy_split"` // Parent and child energy multiplier
}

// ScheduleConfig holds tick cadence parameters.
type ScheduleConfig struct {
	Mode               string  `yaml:"mode"` // round_robin | population
	TicksPerSecond     float64 `yaml:"ticks_per_second"`
	MinTPS             float64 `yaml:"min_tps"`
	MaxTPS             float64 `yaml:"max_tps"`
	MaxTicksPerAdvance int     `yaml:"max_ticks_per_advance"`
	SpawnOnWrap        bool    `yaml:"spawn_on_wrap"`
}

// RenderConfig holds colors handed to renderers.
type RenderConfig struct {
	SleepColor      uint32 `yaml:"sleep_color"`
	BackgroundColor uint32 `yaml:"background_color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowTicks    int `yaml:"stats_window_ticks"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Area         int           // Field.Width * Field.Height
	Capacity     int           // Effective pool capacity
	TickDuration time.Duration // Initial wall-clock duration of one tick
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %dx%d", c.Field.Width, c.Field.Height))
	}
	if c.Population.Initial < 0 {
		errs = append(errs, fmt.Errorf("population.initial must not be negative, got %d", c.Population.Initial))
	}
	if c.Population.Capacity < 0 || c.Population.CapacitySlack < 0 {
		errs = append(errs, errors.New("population capacity and slack must not be negative"))
	}
	if c.Population.SpawnRetries < 1 {
		errs = append(errs, fmt.Errorf("population.spawn_retries must be at least 1, got %d", c.Population.SpawnRetries))
	}
	if c.Genome.Synapses < 1 {
		errs = append(errs, fmt.Errorf("genome.synapses must be at least 1, got %d", c.Genome.Synapses))
	}
	if c.Genome.MinMetabolism < 0 {
		errs = append(errs, fmt.Errorf("genome.min_metabolism must not be negative, got %g", c.Genome.MinMetabolism))
	}
	if c.Genome.MetabolismRange < 0 {
		errs = append(errs, fmt.Errorf("genome.metabolism_range must not be negative, got %g", c.Genome.MetabolismRange))
	}
	if c.Genome.MinMetabolism+c.Genome.MetabolismRange <= 0 {
		errs = append(errs, errors.New("genome metabolism must allow a positive drain: min_metabolism + metabolism_range > 0"))
	}
	if c.Mutation.Chance < 0 || c.Mutation.Chance > 1 {
		errs = append(errs, fmt.Errorf("mutation.chance must be in [0,1], got %g", c.Mutation.Chance))
	}
	if c.Reproduction.EnergySplit <= 0 || c.Reproduction.EnergySplit > 1 {
		errs = append(errs, fmt.Errorf("reproduction.energy_split must be in (0,1], got %g", c.Reproduction.EnergySplit))
	}
	switch c.Brain.Combining {
	case CombiningEvolved, CombiningSigmoid:
	default:
		errs = append(errs, fmt.Errorf("brain.combining: unknown mode %q", c.Brain.Combining))
	}
	switch c.Schedule.Mode {
	case ModeRoundRobin, ModePopulation:
	default:
		errs = append(errs, fmt.Errorf("schedule.mode: unknown mode %q", c.Schedule.Mode))
	}
	if c.Schedule.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("schedule.ticks_per_second must be positive, got %g", c.Schedule.TicksPerSecond))
	}
	if c.Schedule.MinTPS <= 0 || c.Schedule.MaxTPS < c.Schedule.MinTPS {
		errs = append(errs, fmt.Errorf("schedule tps bounds invalid: min=%g max=%g", c.Schedule.MinTPS, c.Schedule.MaxTPS))
	}
	if c.Schedule.MaxTicksPerAdvance < 1 {
		errs = append(errs, fmt.Errorf("schedule.max_ticks_per_advance must be at least 1, got %d", c.Schedule.MaxTicksPerAdvance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating a loaded Config in place.
func (c *Config) ComputeDerived() {
	c.Derived.Area = c.Field.Width * c.Field.Height

	c.Derived.Capacity = c.Population.Capacity
	if c.Derived.Capacity == 0 {
		c.Derived.Capacity = c.Derived.Area + c.Population.CapacitySlack
	}

	tps := c.Schedule.TicksPerSecond
	if tps < c.Schedule.MinTPS {
		tps = c.Schedule.MinTPS
	} else if tps > c.Schedule.MaxTPS {
		tps = c.Schedule.MaxTPS
	}
	c.Derived.TickDuration = TickDuration(tps)
}

// TickDuration converts a tick rate to the wall-clock length of one tick.
// Rates above one tick per nanosecond saturate at 1ns.
func TickDuration(tps float64) time.Duration {
	d := time.Duration(float64(time.Second) / tps)
	if d < 1 {
		d = 1
	}
	return d
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
