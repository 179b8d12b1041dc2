package game

import (
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// Step runs exactly one tick.
func (s *Simulation) Step() {
	if s.roundRobin {
		s.stepRoundRobin()
	} else {
		s.stepPopulation()
	}
	s.tick++
	s.flushTelemetry()
}

// stepRoundRobin advances the single cell under the cursor. When the cursor
// runs off the end of the live list a random cell is spawned and the cursor
// restarts at the head.
func (s *Simulation) stepRoundRobin() {
	if !s.pool.Alive(s.cursor) {
		if s.spawnOnWrap {
			s.spawnRandom()
		}
		s.cursor = s.pool.Head()
		if s.cursor.IsZero() {
			return
		}
	}
	s.cursor = s.update(s.cursor)
}

// stepPopulation advances every live cell once, in link order. Children born
// during the pass are prepended and wait for the next tick.
func (s *Simulation) stepPopulation() {
	if s.spawnOnWrap {
		s.spawnRandom()
	}
	for h := s.pool.Head(); !h.IsZero(); {
		h = s.update(h)
	}
}

// update runs one cell's tick and returns the cell to run after it.
func (s *Simulation) update(h systems.Handle) systems.Handle {
	next := s.pool.Next(h)
	c, ok := s.pool.Get(h)
	if !ok {
		return next
	}

	switch systems.Metabolize(c) {
	case systems.Dozing:
	case systems.Woke:
		s.collector.Record(telemetry.EventWake)
	case systems.Starved:
		s.kill(h, c)
		s.collector.Record(telemetry.EventStarvation)
	case systems.Awake:
		s.field.Clear(c.Pos)
		systems.Sense(c, s.pool, s.field)
		s.act(c, c.Brain.Think(s.carry))
		s.placeOrDie(h, c, false)
	}

	return s.successor(h, next)
}

// successor picks the cell after h once h's tick is done. A surviving cell's
// link is re-read since its neighbours may have died; a dead cell falls back
// to the successor captured before it ran.
func (s *Simulation) successor(h, captured systems.Handle) systems.Handle {
	if s.pool.Alive(h) {
		return s.pool.Next(h)
	}
	if s.pool.Alive(captured) {
		return captured
	}
	return systems.Handle{}
}
