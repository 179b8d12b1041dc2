// Package main provides CMA-ES optimization for mitosis simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/mitosis/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_chance", Path: "mutation.chance", Min: 0, Max: 0.01},
			{Name: "energy_split", Path: "reproduction.energy_split", Min: 0.2, Max: 0.7},
			{Name: "metabolism_range", Path: "genome.metabolism_range", Min: 0.05, Max: 1.0},
			{Name: "initial_population", Path: "population.initial", Min: 1, Max: 0, Integer: true},
		},
	}
}

// Bound sets the upper limit of initial_population to the field area.
func (pv *ParamVector) Bound(cfg *config.Config) {
	for i := range pv.Specs {
		if pv.Specs[i].Path == "population.initial" {
			pv.Specs[i].Max = float64(cfg.Field.Width * cfg.Field.Height)
		}
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Mutation.Chance = clamped[0]
	cfg.Reproduction.EnergySplit = clamped[1]
	cfg.Genome.MetabolismRange = clamped[2]
	cfg.Population.Initial = int(clamped[3])
	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.Clamp([]float64{
		cfg.Mutation.Chance,
		cfg.Reproduction.EnergySplit,
		cfg.Genome.MetabolismRange,
		float64(cfg.Population.Initial),
	})
}
