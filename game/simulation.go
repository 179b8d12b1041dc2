// Package game owns the simulation context: cell lifecycle, action
// resolution, the tick scheduler and its wall-clock cadence.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// seedStream is xored into the seed to form the second PCG word.
const seedStream = 0x9e3779b97f4a7c15

// Options holds optional parameters for simulation setup.
type Options struct {
	Seed uint64     // generator seed, used when Rand is nil
	Rand *rand.Rand // injected generator; snapshots then carry no generator state

	Logger        *slog.Logger // nil = slog.Default()
	LogStats      bool         // log each stats window
	OutputDir     string       // CSV output directory ("" = disabled)
	SnapshotDir   string       // snapshot directory written on bookmarks ("" = disabled)
	StatsCallback func(telemetry.WindowStats)
}

// Simulation is the complete world state. It is single-threaded; separate
// Simulations share nothing and may run on separate goroutines.
type Simulation struct {
	cfg    *config.Config
	logger *slog.Logger

	rng  *rand.Rand
	pcg  *rand.PCG // nil when the generator was injected
	seed uint64

	pool  *systems.Pool
	field *systems.Field

	// Rules resolved from config
	mutation     systems.Mutation
	carry        bool
	split        float32
	synapses     int
	spawnRetries int
	roundRobin   bool
	spawnOnWrap  bool
	sleepColor   components.Color

	cursor systems.Handle // next cell in round-robin mode
	tick   uint64
	clock  clock

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	snapshotDir   string
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	extinct       bool
}

// New creates a simulation and spawns the initial population.
// A nil cfg uses the global configuration.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Derived.Capacity == 0 {
		cfg.ComputeDerived()
	}

	s := &Simulation{
		cfg:    cfg,
		logger: opts.Logger,
		seed:   opts.Seed,
		pool:   systems.NewPool(cfg.Derived.Capacity),
		field:  systems.NewField(cfg.Field.Width, cfg.Field.Height),

		mutation: systems.Mutation{
			Chance:          float32(cfg.Mutation.Chance),
			Evolved:         cfg.Brain.Combining == config.CombiningEvolved,
			MinMetabolism:   float32(cfg.Genome.MinMetabolism),
			MetabolismRange: float32(cfg.Genome.MetabolismRange),
		},
		carry:        cfg.Brain.CarryActivations,
		split:        float32(cfg.Reproduction.EnergySplit),
		synapses:     cfg.Genome.Synapses,
		spawnRetries: cfg.Population.SpawnRetries,
		roundRobin:   cfg.Schedule.Mode == config.ModeRoundRobin,
		spawnOnWrap:  cfg.Schedule.SpawnOnWrap,
		sleepColor:   components.Color(cfg.Render.SleepColor) & components.ColorMask,

		clock: newClock(cfg.Schedule),

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindowTicks),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		snapshotDir:   opts.SnapshotDir,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if opts.Rand != nil {
		s.rng = opts.Rand
	} else {
		s.pcg = rand.NewPCG(opts.Seed, opts.Seed^seedStream)
		s.rng = rand.New(s.pcg)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	s.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	s.spawnInitialPopulation()

	s.logger.Info("simulation initialized",
		"seed", s.seed,
		"injected_rng", s.pcg == nil,
		"field", fmt.Sprintf("%dx%d", cfg.Field.Width, cfg.Field.Height),
		"capacity", s.pool.Cap(),
		"population", s.pool.Len(),
		"mode", cfg.Schedule.Mode,
		"ticks_per_second", s.clock.tps,
	)

	return s, nil
}

// Close flushes and closes telemetry output.
func (s *Simulation) Close() error {
	return s.outputManager.Close()
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Seed returns the generator seed.
func (s *Simulation) Seed() uint64 { return s.seed }

// Tick returns the number of ticks run so far.
func (s *Simulation) Tick() uint64 { return s.tick }

// Population returns the number of live cells.
func (s *Simulation) Population() int { return s.pool.Len() }

// Capacity returns the pool capacity.
func (s *Simulation) Capacity() int { return s.pool.Cap() }

// FieldSize returns the field dimensions in cells.
func (s *Simulation) FieldSize() (width, height int) {
	return s.field.Width(), s.field.Height()
}

// Collector exposes the event counters.
func (s *Simulation) Collector() *telemetry.Collector { return s.collector }

// PerfStats returns throughput over recent Advance calls.
func (s *Simulation) PerfStats() telemetry.PerfStats { return s.perfCollector.Stats() }

// RecordFrame marks a rendered frame for FPS reporting.
func (s *Simulation) RecordFrame() { s.perfCollector.RecordFrame() }
