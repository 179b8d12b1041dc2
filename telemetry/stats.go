package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`

	// Population at window end
	Population   int `csv:"population"`
	Sleeping     int `csv:"sleeping"`
	DistinctHues int `csv:"distinct_hues"`

	// Events during window
	Spawns       int    `csv:"spawns"`
	Births       int    `csv:"births"`
	Stillbirths  int    `csv:"stillbirths"`
	Starvations  int    `csv:"starvations"`
	Predations   int    `csv:"predations"`
	Repelled     int    `csv:"repelled"`
	SpawnsFailed int    `csv:"spawns_failed"`
	PoolFull     int    `csv:"pool_full"`
	Sleeps       int    `csv:"sleeps"`
	Wakes        int    `csv:"wakes"`
	DroppedTicks uint64 `csv:"dropped_ticks"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Heritable traits
	MetabolismMean float64 `csv:"metabolism_mean"`
	MetabolismStd  float64 `csv:"metabolism_std"`
	GenerationMean float64 `csv:"generation_mean"`
	GenerationMax  float64 `csv:"generation_max"`
}

// Deaths returns the number of cells that died during the window.
func (s WindowStats) Deaths() int {
	return s.Stillbirths + s.Starvations + s.Predations + s.Repelled
}

// Summary is the location and spread of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes mean, standard deviation, empirical deciles and max.
// values is not modified. An empty sample yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	if n < 2 || math.IsNaN(s.Std) {
		s.Std = 0
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	s.Max = floats.Max(sorted)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("sleeping", s.Sleeping),
		slog.Int("distinct_hues", s.DistinctHues),
		slog.Int("spawns", s.Spawns),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths()),
		slog.Int("pool_full", s.PoolFull),
		slog.Uint64("dropped_ticks", s.DroppedTicks),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("metabolism_mean", s.MetabolismMean),
		slog.Float64("generation_mean", s.GenerationMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"population", s.Population,
		"sleeping", s.Sleeping,
		"distinct_hues", s.DistinctHues,
		"spawns", s.Spawns,
		"births", s.Births,
		"stillbirths", s.Stillbirths,
		"starvations", s.Starvations,
		"predations", s.Predations,
		"repelled", s.Repelled,
		"spawns_failed", s.SpawnsFailed,
		"pool_full", s.PoolFull,
		"sleeps", s.Sleeps,
		"wakes", s.Wakes,
		"dropped_ticks", s.DroppedTicks,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"metabolism_mean", s.MetabolismMean,
		"metabolism_std", s.MetabolismStd,
		"generation_mean", s.GenerationMean,
		"generation_max", s.GenerationMax,
	)
}
