package game

import (
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/neural"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// act carries out a decision. The acting cell is off the field; the caller
// re-places it afterwards.
func (s *Simulation) act(c *components.Cell, a neural.Action) {
	switch a.Kind {
	case neural.ActMove:
		d := c.Facing.Turn(a.Dir)
		c.Pos = s.field.Step(c.Pos, d)
		c.Facing = d
	case neural.ActMitose:
		s.mitose(c, c.Facing.Turn(a.Dir))
	case neural.ActSleep:
		c.Sleeping = true
		s.collector.Record(telemetry.EventSleep)
	}
}

// mitose splits parent into itself and a mutated child one step along d.
// The parent stays put and turns away from the child.
func (s *Simulation) mitose(parent *components.Cell, d components.Direction) {
	h, child, ok := s.pool.Allocate()
	if !ok {
		s.collector.Record(telemetry.EventPoolFull)
		return
	}

	child.CopyFrom(parent)
	systems.Mutate(child, s.rng, s.mutation)
	child.Generation++

	child.Pos = s.field.Step(parent.Pos, d)
	child.Facing = d
	parent.Facing = d.Back()

	child.Energy *= s.split
	parent.Energy *= s.split

	s.collector.Record(telemetry.EventBirth)
	s.placeOrDie(h, child, true)
}
