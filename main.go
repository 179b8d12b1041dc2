package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
	"github.com/pthm-cable/mitosis/telemetry"
	"github.com/pthm-cable/mitosis/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logEvery := flag.Uint64("log-every", 0, "Headless: print a world summary every N ticks (0 = off)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files written on bookmarks")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	restore := flag.String("restore", "", "Resume from a snapshot file")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	// The terminal owns stdout in tui mode.
	logOut := os.Stdout
	if *tui {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)
	game.SetLogWriter(logOut)

	if err := run(cfg, options{
		headless:    *headless,
		tui:         *tui,
		restore:     *restore,
		maxTicks:    *maxTicks,
		logEvery:    *logEvery,
		gameOptions: game.Options{
			Seed:        rngSeed,
			Logger:      logger,
			LogStats:    *logStats,
			SnapshotDir: *snapshotDir,
			OutputDir:   *outputDir,
		},
	}); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// options collects the flags run needs.
type options struct {
	headless    bool
	tui         bool
	restore     string
	maxTicks    uint64
	logEvery    uint64
	gameOptions game.Options
}

// run owns the Simulation so telemetry output is closed on every path.
func run(cfg *config.Config, opts options) (err error) {
	sim, err := game.New(cfg, opts.gameOptions)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer func() {
		if cerr := sim.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing output: %w", cerr))
		}
	}()

	if opts.restore != "" {
		snap, err := telemetry.LoadSnapshot(opts.restore)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		if err := sim.Restore(snap); err != nil {
			return fmt.Errorf("restoring %s: %w", opts.restore, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case opts.headless:
		runHeadless(ctx, sim, opts.maxTicks, opts.logEvery)
	case opts.tui:
		if err := runTerminal(ctx, sim, cfg, opts.maxTicks); err != nil {
			return fmt.Errorf("terminal front end: %w", err)
		}
	default:
		runWindow(sim, cfg, opts.maxTicks)
	}
	return nil
}

// runHeadless steps as fast as possible, ignoring the wall-clock rate.
func runHeadless(ctx context.Context, sim *game.Simulation, maxTicks, logEvery uint64) {
	slog.Info("starting headless simulation",
		"seed", sim.Seed(),
		"max_ticks", maxTicks,
		"log_every", logEvery,
	)

	const batch = 4096
	start := time.Now()
	for ctx.Err() == nil {
		for i := 0; i < batch; i++ {
			sim.Step()
			tick := sim.Tick()
			if logEvery > 0 && tick%logEvery == 0 {
				sim.LogWorldState()
			}
			if maxTicks > 0 && tick >= maxTicks {
				slog.Info("max ticks reached", "tick", tick, "elapsed", time.Since(start).String())
				return
			}
		}
	}
	slog.Info("interrupted", "tick", sim.Tick())
}

func runTerminal(ctx context.Context, sim *game.Simulation, cfg *config.Config, maxTicks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	frame := time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	term := terminal.New(screen, sim, components.Color(cfg.Render.BackgroundColor))
	if err := term.Run(ctx, frame, maxTicks); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
