package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    uint64
	warmupTicks uint64 // ticks before population sampling starts
	sampleEvery uint64
	seeds       []uint64
	baseConfig  *config.Config
	logger      *slog.Logger

	mu          sync.Mutex
	lastSummary runSummary // aggregate from the most recent Evaluate call
}

// runSummary describes one evaluation across all seeds.
type runSummary struct {
	MeanPopulation float64
	MinPopulation  float64 // lowest seed mean
	MaxGeneration  uint32
}

// runResult holds the results from a single simulation run.
type runResult struct {
	meanPopulation float64
	maxGeneration  uint32
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		warmupTicks: maxTicks / 10,
		sampleEvery: max(maxTicks/1000, 1),
		seeds:       seeds,
		baseConfig:  baseCfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LastSummary returns the aggregate from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negative mean live population, averaged over seeds.
// A run that fails to start scores +Inf.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) float64 {
	results := make([]runResult, len(fe.seeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range fe.seeds {
		g.Go(func() error {
			r, err := fe.runSimulation(gctx, x, seed)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fe.logger.Warn("evaluation failed", "error", err)
		return math.Inf(1)
	}

	summary := runSummary{MinPopulation: math.Inf(1)}
	for _, r := range results {
		summary.MeanPopulation += r.meanPopulation
		summary.MinPopulation = min(summary.MinPopulation, r.meanPopulation)
		summary.MaxGeneration = max(summary.MaxGeneration, r.maxGeneration)
	}
	summary.MeanPopulation /= float64(len(results))

	fe.mu.Lock()
	fe.lastSummary = summary
	fe.mu.Unlock()

	return -summary.MeanPopulation
}

// runSimulation executes a single headless run of maxTicks ticks and
// averages the population sampled after warmup.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, x []float64, seed uint64) (runResult, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	sim, err := game.New(cfg, game.Options{Seed: seed, Logger: fe.logger})
	if err != nil {
		return runResult{}, err
	}
	defer sim.Close()

	var sum float64
	var samples int
	for sim.Tick() < fe.maxTicks {
		sim.Step()

		tick := sim.Tick()
		if tick%65536 == 0 && ctx.Err() != nil {
			return runResult{}, ctx.Err()
		}
		if tick < fe.warmupTicks || tick%fe.sampleEvery != 0 {
			continue
		}
		sum += float64(sim.Population())
		samples++
	}

	r := runResult{}
	if samples > 0 {
		r.meanPopulation = sum / float64(samples)
	}
	for _, c := range sim.State() {
		r.maxGeneration = max(r.maxGeneration, c.Generation)
	}
	return r, nil
}

// copyConfig returns an independent copy of the base config. Config holds
// only value fields, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
