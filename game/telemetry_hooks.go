package game

import (
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// hueMask buckets colors by the high nibble of each channel.
const hueMask components.Color = 0xf0f0f0

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.clock.dropped, s.samplePopulation())
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteTelemetry(stats); err != nil {
		s.logger.Error("failed to write telemetry", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		s.logger.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.outputManager.WriteBookmark(bm); err != nil {
			s.logger.Error("failed to write bookmark", "error", err)
		}
		if s.snapshotDir != "" {
			s.saveSnapshot(&bm)
		}
	}

	extinct := stats.Population == 0
	if extinct && !s.extinct {
		s.logger.Warn("population extinct", "tick", s.tick, "spawn_on_wrap", s.spawnOnWrap)
	}
	s.extinct = extinct
}

// samplePopulation gathers the per-cell distributions for one window.
func (s *Simulation) samplePopulation() telemetry.PopulationSample {
	n := s.pool.Len()
	sample := telemetry.PopulationSample{
		Population:  n,
		Energies:    make([]float64, 0, n),
		Metabolisms: make([]float64, 0, n),
		Generations: make([]float64, 0, n),
	}
	hues := make(map[components.Color]struct{})

	s.pool.Each(func(_ systems.Handle, c *components.Cell) bool {
		sample.Energies = append(sample.Energies, float64(c.Energy))
		sample.Metabolisms = append(sample.Metabolisms, float64(c.Metabolism))
		sample.Generations = append(sample.Generations, float64(c.Generation))
		if c.Sleeping {
			sample.Sleeping++
		}
		hues[c.Color&hueMask] = struct{}{}
		return true
	})
	sample.DistinctHues = len(hues)
	return sample
}

// saveSnapshot creates and saves a snapshot to disk.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	snap, err := s.CreateSnapshot(bookmark)
	if err != nil {
		s.logger.Error("failed to create snapshot", "error", err)
		return
	}

	path, err := telemetry.SaveSnapshot(snap, s.snapshotDir)
	if err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
		return
	}

	s.logger.Info("snapshot saved", "path", path, "tick", s.tick)
}
