package game

import (
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// spawnInitialPopulation creates the starting cells.
func (s *Simulation) spawnInitialPopulation() {
	for i := 0; i < s.cfg.Population.Initial; i++ {
		s.spawnRandom()
	}
}

// spawnRandom places a fresh random cell on an empty grid cell.
// It gives up silently when no empty cell turns up or the pool is full.
func (s *Simulation) spawnRandom() (systems.Handle, bool) {
	pos, ok := s.findEmpty()
	if !ok {
		s.collector.Record(telemetry.EventSpawnFailed)
		return systems.Handle{}, false
	}

	h, c, ok := s.pool.Allocate()
	if !ok {
		s.collector.Record(telemetry.EventPoolFull)
		return systems.Handle{}, false
	}

	s.randomCell(c, pos)
	s.field.Place(h, pos)
	s.collector.Record(telemetry.EventSpawn)
	return h, true
}

// findEmpty draws random positions until one is unoccupied.
func (s *Simulation) findEmpty() (components.Position, bool) {
	for i := 0; i < s.spawnRetries; i++ {
		pos := components.Position{
			X: s.rng.IntN(s.field.Width()),
			Y: s.rng.IntN(s.field.Height()),
		}
		if s.field.At(pos).IsZero() {
			return pos, true
		}
	}
	return components.Position{}, false
}

// randomCell overwrites c with a fresh genome at full energy.
func (s *Simulation) randomCell(c *components.Cell, pos components.Position) {
	buf := c.Brain.Synapses
	*c = components.Cell{
		Pos:        pos,
		Facing:     components.Compass[s.rng.IntN(len(components.Compass))],
		Color:      components.Color(s.rng.Uint32()) & components.ColorMask,
		Energy:     1,
		Metabolism: s.mutation.RandomMetabolism(s.rng),
	}
	c.Brain.Synapses = buf
	c.Brain.Randomize(s.rng, s.synapses, s.mutation.Evolved)
}

// kill removes a cell from the field, if it is standing there, and the pool.
// It is the only place cells are released.
func (s *Simulation) kill(h systems.Handle, c *components.Cell) {
	if s.field.At(c.Pos) == h {
		s.field.Clear(c.Pos)
	}
	s.pool.Release(h)
}

// placeOrDie puts a cell that is not on the field onto its position.
// An occupant is eaten if edible; otherwise the arriving cell dies and the
// occupant absorbs its energy. Returns whether the arriving cell survived.
func (s *Simulation) placeOrDie(h systems.Handle, c *components.Cell, newborn bool) bool {
	occ := s.field.At(c.Pos)
	other, ok := s.pool.Get(occ)
	if !ok {
		s.field.Place(h, c.Pos)
		return true
	}

	out := systems.Resolve(c, other)
	if out.MoverWins {
		s.kill(occ, other)
		s.collector.Record(telemetry.EventPredation)
		c.Energy = out.Energy
		s.field.Place(h, c.Pos)
		return true
	}

	other.Energy = out.Energy
	s.kill(h, c)
	if newborn {
		s.collector.Record(telemetry.EventStillbirth)
	} else {
		s.collector.Record(telemetry.EventRepelled)
	}
	return false
}
