package game

import (
	"time"

	"github.com/pthm-cable/mitosis/config"
)

// clock converts wall time into a tick count.
type clock struct {
	tps          float64
	tickDuration time.Duration
	minTPS       float64
	maxTPS       float64
	maxTicks     int

	accum   time.Duration // wall time not yet spent on ticks
	dropped uint64        // ticks discarded by the per-call cap
	paused  bool
}

func newClock(cfg config.ScheduleConfig) clock {
	c := clock{
		minTPS:   cfg.MinTPS,
		maxTPS:   cfg.MaxTPS,
		maxTicks: cfg.MaxTicksPerAdvance,
	}
	c.setTPS(cfg.TicksPerSecond)
	return c
}

func (c *clock) setTPS(tps float64) {
	c.tps = min(max(tps, c.minTPS), c.maxTPS)
	c.tickDuration = config.TickDuration(c.tps)
}

// due adds elapsed to the accumulator and returns how many ticks to run.
func (c *clock) due(elapsed time.Duration) int {
	c.accum += elapsed
	n := c.accum / c.tickDuration
	c.accum -= n * c.tickDuration

	if n > time.Duration(c.maxTicks) {
		c.dropped += uint64(n) - uint64(c.maxTicks)
		n = time.Duration(c.maxTicks)
	}
	return int(n)
}

// Advance runs as many ticks as fit in elapsed wall time plus the carried
// remainder, bounded by schedule.max_ticks_per_advance. It is the only way
// the world changes outside tests. Returns the number of ticks run.
func (s *Simulation) Advance(elapsed time.Duration) int {
	if s.clock.paused || elapsed <= 0 {
		return 0
	}

	s.perfCollector.Start()
	n := s.clock.due(elapsed)
	for i := 0; i < n; i++ {
		s.Step()
	}
	s.perfCollector.End(n)
	return n
}

// SpeedUp doubles the tick rate up to schedule.max_tps.
func (s *Simulation) SpeedUp() {
	s.setTPS(s.clock.tps * 2)
}

// SlowDown halves the tick rate down to schedule.min_tps.
func (s *Simulation) SlowDown() {
	s.setTPS(s.clock.tps / 2)
}

func (s *Simulation) setTPS(tps float64) {
	before := s.clock.tps
	s.clock.setTPS(tps)
	if s.clock.tps != before {
		s.logger.Info("tick rate changed", "ticks_per_second", s.clock.tps)
	}
}

// TicksPerSecond returns the current tick rate.
func (s *Simulation) TicksPerSecond() float64 { return s.clock.tps }

// DroppedTicks returns the number of ticks discarded because a single
// Advance call fell too far behind.
func (s *Simulation) DroppedTicks() uint64 { return s.clock.dropped }

// Paused reports whether Advance is suspended.
func (s *Simulation) Paused() bool { return s.clock.paused }

// SetPaused suspends or resumes Advance. Time elapsed while paused is discarded.
func (s *Simulation) SetPaused(paused bool) {
	s.clock.paused = paused
	s.clock.accum = 0
}

// TogglePause flips the paused state.
func (s *Simulation) TogglePause() { s.SetPaused(!s.clock.paused) }
