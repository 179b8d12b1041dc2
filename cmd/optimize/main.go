// Package main provides CMA-ES optimization for finding simulation parameters
// that sustain a large living population.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/mitosis/config"
)

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	MeanPopulation    float64 `csv:"mean_population"`
	MinSeedPopulation float64 `csv:"min_seed_population"`
	MaxGeneration     uint32  `csv:"max_generation"`
	MutationChance    float64 `csv:"mutation_chance"`
	EnergySplit       float64 `csv:"energy_split"`
	MetabolismRange   float64 `csv:"metabolism_range"`
	InitialPopulation int     `csv:"initial_population"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	fieldW := flag.Int("field-width", 128, "Field width for evaluation runs (0 = keep config)")
	fieldH := flag.Int("field-height", 72, "Field height for evaluation runs (0 = keep config)")
	maxTicks := flag.Uint64("max-ticks", 2000000, "Ticks per evaluation run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *seeds < 1 {
		log.Fatal("--seeds must be at least 1")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	if *fieldW > 0 && *fieldH > 0 {
		baseCfg.Field.Width = *fieldW
		baseCfg.Field.Height = *fieldH
		baseCfg.Population.Capacity = 0
	}
	baseCfg.ComputeDerived()

	params := NewParamVector()
	params.Bound(baseCfg)

	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		// 4 + floor(3 ln n)
		popSize = 4 + int(3*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if ctx.Err() != nil {
				return math.Inf(1)
			}
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(ctx, clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			summary := evaluator.LastSummary()
			record := evalRecord{
				Eval:              evalCount,
				Fitness:           fitness,
				MeanPopulation:    summary.MeanPopulation,
				MinSeedPopulation: summary.MinPopulation,
				MaxGeneration:     summary.MaxGeneration,
				MutationChance:    clamped[0],
				EnergySplit:       clamped[1],
				MetabolismRange:   clamped[2],
				InitialPopulation: int(clamped[3]),
			}
			if err := writeRecord(logFile, record, evalCount == 1); err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: population=%.1f (worst seed %.1f, best %.1f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, summary.MeanPopulation, summary.MinPopulation, -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Field %dx%d, seeds per evaluation: %d, ticks per run: %d\n",
		baseCfg.Field.Width, baseCfg.Field.Height, *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil {
		if result == nil {
			log.Fatal("no evaluations completed")
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best mean population: %.1f\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// writeRecord appends one evaluation row, with the header on the first.
func writeRecord(f *os.File, record evalRecord, header bool) error {
	records := []evalRecord{record}
	if header {
		return gocsv.Marshal(records, f)
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}
