package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/neural"
	"github.com/pthm-cable/mitosis/systems"
	"github.com/pthm-cable/mitosis/telemetry"
)

// Sprite is the render view of one live cell.
type Sprite struct {
	X, Y  int
	Color components.Color
}

// Snapshot appends a sprite per live cell to dst[:0] and returns it.
// Sleeping cells are drawn in render.sleep_color.
func (s *Simulation) Snapshot(dst []Sprite) []Sprite {
	dst = dst[:0]
	s.pool.Each(func(_ systems.Handle, c *components.Cell) bool {
		color := c.Color
		if c.Sleeping {
			color = s.sleepColor
		}
		dst = append(dst, Sprite{X: c.Pos.X, Y: c.Pos.Y, Color: color})
		return true
	})
	return dst
}

// State returns a deep copy of every live cell in scheduling order.
func (s *Simulation) State() []telemetry.CellState {
	cells := make([]telemetry.CellState, 0, s.pool.Len())
	s.pool.Each(func(_ systems.Handle, c *components.Cell) bool {
		cells = append(cells, cellState(c))
		return true
	})
	return cells
}

func cellState(c *components.Cell) telemetry.CellState {
	st := telemetry.CellState{
		X:          c.Pos.X,
		Y:          c.Pos.Y,
		DX:         c.Facing.DX,
		DY:         c.Facing.DY,
		Color:      uint32(c.Color),
		Energy:     c.Energy,
		Metabolism: c.Metabolism,
		Sleeping:   c.Sleeping,
		Generation: c.Generation,
		Neurons:    make([]float32, neural.NumNeurons),
		Combiners:  make([]uint8, neural.NumNeurons),
		Synapses:   make([]telemetry.SynapseState, len(c.Brain.Synapses)),
	}
	copy(st.Neurons, c.Brain.Neurons[:])
	for i, comb := range c.Brain.Combiners {
		st.Combiners[i] = uint8(comb)
	}
	for i, syn := range c.Brain.Synapses {
		st.Synapses[i] = telemetry.SynapseState{Src: uint8(syn.Src), Dst: uint8(syn.Dst), Weight: syn.Weight}
	}
	return st
}

// CreateSnapshot captures everything needed to resume the run.
func (s *Simulation) CreateSnapshot(bookmark *telemetry.Bookmark) (*telemetry.Snapshot, error) {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		Seed:        s.seed,
		FieldWidth:  s.field.Width(),
		FieldHeight: s.field.Height(),
		Tick:        s.tick,
		Cursor:      -1,
		Cells:       make([]telemetry.CellState, 0, s.pool.Len()),
		Bookmark:    bookmark,
	}

	if s.pcg != nil {
		state, err := s.pcg.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal rng: %w", err)
		}
		snap.RNGState = state
	}

	s.pool.Each(func(h systems.Handle, c *components.Cell) bool {
		if h == s.cursor {
			snap.Cursor = len(snap.Cells)
		}
		snap.Cells = append(snap.Cells, cellState(c))
		return true
	})

	return snap, nil
}

// Restore replaces the population with the one in snap. The field size must
// match; cells keep their scheduling order.
func (s *Simulation) Restore(snap *telemetry.Snapshot) error {
	if snap.FieldWidth != s.field.Width() || snap.FieldHeight != s.field.Height() {
		return fmt.Errorf("snapshot field %dx%d does not match %dx%d",
			snap.FieldWidth, snap.FieldHeight, s.field.Width(), s.field.Height())
	}
	if len(snap.Cells) > s.pool.Cap() {
		return fmt.Errorf("snapshot holds %d cells, pool capacity is %d", len(snap.Cells), s.pool.Cap())
	}
	if err := validateCells(snap.Cells, s.field); err != nil {
		return err
	}

	if len(snap.RNGState) > 0 && s.pcg != nil {
		if err := s.pcg.UnmarshalBinary(snap.RNGState); err != nil {
			return fmt.Errorf("restore rng: %w", err)
		}
	}

	s.pool.Reset()
	s.field.Reset()
	s.cursor = systems.Handle{}

	// Allocation prepends, so walk backwards to rebuild the same order.
	for i := len(snap.Cells) - 1; i >= 0; i-- {
		h, c, _ := s.pool.Allocate()
		restoreCell(c, &snap.Cells[i])
		s.field.Place(h, c.Pos)
		if i == snap.Cursor {
			s.cursor = h
		}
	}

	s.seed = snap.Seed
	s.tick = snap.Tick
	s.logger.Info("snapshot restored", "tick", s.tick, "population", s.pool.Len())
	return nil
}

func validateCells(cells []telemetry.CellState, field *systems.Field) error {
	occupied := make(map[components.Position]bool, len(cells))
	for i := range cells {
		st := &cells[i]
		pos := components.Position{X: st.X, Y: st.Y}
		if st.X < 0 || st.X >= field.Width() || st.Y < 0 || st.Y >= field.Height() {
			return fmt.Errorf("cell %d: position (%d,%d) outside field", i, st.X, st.Y)
		}
		if occupied[pos] {
			return fmt.Errorf("cell %d: position (%d,%d) already occupied", i, st.X, st.Y)
		}
		occupied[pos] = true

		if !(components.Direction{DX: st.DX, DY: st.DY}).Valid() {
			return fmt.Errorf("cell %d: invalid facing (%d,%d)", i, st.DX, st.DY)
		}
		if st.Energy <= 0 {
			return fmt.Errorf("cell %d: non-positive energy %g", i, st.Energy)
		}
		if st.Energy > 1 {
			return fmt.Errorf("cell %d: energy %g above 1", i, st.Energy)
		}
		if st.Metabolism < 0 {
			return fmt.Errorf("cell %d: negative metabolism %g", i, st.Metabolism)
		}
		if len(st.Neurons) > neural.NumNeurons || len(st.Combiners) > neural.NumNeurons {
			return fmt.Errorf("cell %d: too many neurons", i)
		}
		for _, comb := range st.Combiners {
			if int(comb) >= neural.NumCombiners {
				return fmt.Errorf("cell %d: unknown combiner %d", i, comb)
			}
		}
		for _, syn := range st.Synapses {
			if !neural.NeuronID(syn.Src).Valid() || !neural.NeuronID(syn.Dst).Valid() {
				return errors.New("synapse endpoint out of range")
			}
		}
	}
	return nil
}

func restoreCell(c *components.Cell, st *telemetry.CellState) {
	buf := c.Brain.Synapses[:0]
	*c = components.Cell{
		Pos:        components.Position{X: st.X, Y: st.Y},
		Facing:     components.Direction{DX: st.DX, DY: st.DY},
		Color:      components.Color(st.Color) & components.ColorMask,
		Energy:     st.Energy,
		Metabolism: st.Metabolism,
		Sleeping:   st.Sleeping,
		Generation: st.Generation,
	}
	copy(c.Brain.Neurons[:], st.Neurons)
	for i, comb := range st.Combiners {
		c.Brain.Combiners[i] = neural.Combiner(comb)
	}
	for _, syn := range st.Synapses {
		buf = append(buf, neural.Synapse{Src: neural.NeuronID(syn.Src), Dst: neural.NeuronID(syn.Dst), Weight: syn.Weight})
	}
	c.Brain.Synapses = buf
}

// CellAt returns a copy of the cell standing on grid cell (x, y).
func (s *Simulation) CellAt(x, y int) (telemetry.CellState, bool) {
	h, ok := s.field.Occupant(x, y)
	if !ok {
		return telemetry.CellState{}, false
	}
	c, ok := s.pool.Get(h)
	if !ok {
		return telemetry.CellState{}, false
	}
	return cellState(c), true
}

// Sleeping returns the number of sleeping cells.
func (s *Simulation) Sleeping() int {
	n := 0
	s.pool.Each(func(_ systems.Handle, c *components.Cell) bool {
		if c.Sleeping {
			n++
		}
		return true
	})
	return n
}
