package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/neural"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-5, 4, 3},
		{9, 4, 1},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		if got := Wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestFieldToroidal(t *testing.T) {
	f := NewField(4, 3)
	p := components.Position{X: 0, Y: 0}

	if got := f.Step(p, components.North); got != (components.Position{X: 0, Y: 2}) {
		t.Errorf("north of origin: got %+v", got)
	}
	if got := f.Step(p, components.West); got != (components.Position{X: 3, Y: 0}) {
		t.Errorf("west of origin: got %+v", got)
	}

	h := Handle{index: 1, gen: 1}
	f.Place(h, components.Position{X: 3, Y: 2})
	if got, ok := f.Occupant(-1, -1); !ok || got != h {
		t.Errorf("Occupant(-1,-1) = %+v, %v", got, ok)
	}
	if f.Count() != 1 {
		t.Errorf("expected 1 occupant, got %d", f.Count())
	}

	f.Clear(components.Position{X: 3, Y: 2})
	if _, ok := f.Occupant(3, 2); ok {
		t.Error("expected empty after Clear")
	}
}

func TestDirectionRotation(t *testing.T) {
	tests := []struct {
		d                 components.Direction
		left, right, back components.Direction
	}{
		{components.North, components.West, components.East, components.South},
		{components.East, components.North, components.South, components.West},
		{components.South, components.East, components.West, components.North},
		{components.West, components.South, components.North, components.East},
	}

	for _, tt := range tests {
		if tt.d.Left() != tt.left {
			t.Errorf("%+v.Left() = %+v, want %+v", tt.d, tt.d.Left(), tt.left)
		}
		if tt.d.Right() != tt.right {
			t.Errorf("%+v.Right() = %+v, want %+v", tt.d, tt.d.Right(), tt.right)
		}
		if tt.d.Back() != tt.back {
			t.Errorf("%+v.Back() = %+v, want %+v", tt.d, tt.d.Back(), tt.back)
		}
		if tt.d.Turn(neural.Right) != tt.right {
			t.Errorf("%+v.Turn(right) mismatch", tt.d)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		mover      components.Cell
		occupant   components.Cell
		moverWins  bool
		wantEnergy float32
	}{
		{"stronger mover", components.Cell{Energy: 0.9}, components.Cell{Energy: 0.1}, true, 1},
		{"weaker mover", components.Cell{Energy: 0.1}, components.Cell{Energy: 0.9}, false, 1},
		{"tie goes to occupant", components.Cell{Energy: 0.3}, components.Cell{Energy: 0.3}, false, 0.6},
		{"sleeper is edible", components.Cell{Energy: 0.1}, components.Cell{Energy: 0.5, Sleeping: true}, true, 0.6},
		{"sum below cap", components.Cell{Energy: 0.4}, components.Cell{Energy: 0.2}, true, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(&tt.mover, &tt.occupant)
			if out.MoverWins != tt.moverWins {
				t.Errorf("MoverWins = %v, want %v", out.MoverWins, tt.moverWins)
			}
			if diff := out.Energy - tt.wantEnergy; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("Energy = %v, want %v", out.Energy, tt.wantEnergy)
			}
		})
	}
}

func TestKinship(t *testing.T) {
	tests := []struct {
		a, b components.Color
		want float32
	}{
		{0x123456, 0x123456, 1},
		{0x000000, 0x000001, 1 - 1.0/128},
		{0x000000, 0x400000, 0.5},
		{0x000000, 0x800000, 0},
		{0x000000, 0xff0000, 1 - 255.0/128},
		{0x010203, 0x000000, 1 - 3.0/128},
	}

	for _, tt := range tests {
		if got := Kinship(tt.a, tt.b); got != tt.want {
			t.Errorf("Kinship(%06x, %06x) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSense(t *testing.T) {
	pool := NewPool(4)
	field := NewField(5, 5)

	place := func(x, y int, setup func(c *components.Cell)) *components.Cell {
		h, c, _ := pool.Allocate()
		*c = components.Cell{Pos: components.Position{X: x, Y: y}}
		setup(c)
		field.Place(h, c.Pos)
		return c
	}

	_, self, _ := pool.Allocate()
	*self = components.Cell{
		Pos:    components.Position{X: 2, Y: 2},
		Facing: components.East,
		Color:  0x101010,
		Energy: 0.75,
	}

	// East of self is forward; south of self is right when facing east.
	place(3, 2, func(c *components.Cell) { c.Color = 0x101010; c.Energy = 0.5 })
	place(2, 3, func(c *components.Cell) { c.Color = 0x111010; c.Energy = 0.9 })

	Sense(self, pool, field)
	in := self.Brain.Neurons

	checks := []struct {
		n    neural.NeuronID
		want float32
	}{
		{neural.InBias, 1},
		{neural.InEnergy, 0.5},
		{neural.InCompassN, -1},
		{neural.InCompassE, 1},
		{neural.InCompassS, -1},
		{neural.InCompassW, -1},
		{neural.InLikeFwd, 1},
		{neural.InEdibleFwd, 1},
		{neural.InLikeRight, 1 - 1.0/128},
		{neural.InEdibleRight, -1},
		{neural.InLikeBack, 0},
		{neural.InEdibleBack, 0},
		{neural.InLikeLeft, 0},
		{neural.InEdibleLeft, 0},
	}
	for _, c := range checks {
		if in[c.n] != c.want {
			t.Errorf("%s = %v, want %v", c.n, in[c.n], c.want)
		}
	}
}

func TestMetabolize(t *testing.T) {
	tests := []struct {
		name       string
		cell       components.Cell
		want       Metabolic
		wantEnergy float32
		sleeping   bool
	}{
		{"awake drains", components.Cell{Energy: 0.5, Metabolism: 0.25}, Awake, 0.25, false},
		{"awake starves", components.Cell{Energy: 0.25, Metabolism: 0.25}, Starved, 0, false},
		{"sleep regains", components.Cell{Energy: 0.5, Metabolism: 0.25, Sleeping: true}, Dozing, 0.75, true},
		{"sleep wakes clamped", components.Cell{Energy: 0.875, Metabolism: 0.25, Sleeping: true}, Woke, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cell
			if got := Metabolize(&c); got != tt.want {
				t.Errorf("Metabolize = %s, want %s", got, tt.want)
			}
			if c.Energy != tt.wantEnergy {
				t.Errorf("energy = %v, want %v", c.Energy, tt.wantEnergy)
			}
			if c.Sleeping != tt.sleeping {
				t.Errorf("sleeping = %v, want %v", c.Sleeping, tt.sleeping)
			}
		})
	}
}

func TestSimilarColorMasks(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[uint32]int{}

	for i := 0; i < 10000; i++ {
		m := lowMask(rng)
		switch m {
		case 0x0f, 0x1f, 0x3f, 0x7f, 0xff:
		default:
			t.Fatalf("unexpected mask %#x", m)
		}
		seen[m]++
	}
	if seen[0x0f] < seen[0x1f] || seen[0x1f] < seen[0x3f] {
		t.Errorf("narrow masks should dominate: %v", seen)
	}
	t.Logf("mask histogram: %v", seen)

	c := SimilarColor(rng, 0xabcdef)
	if c&^components.ColorMask != 0 {
		t.Errorf("color escaped 24 bits: %#x", c)
	}
	if c == 0xabcdef {
		t.Error("SimilarColor must change every channel")
	}
}

func TestMutateCell(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := Mutation{Chance: 1, Evolved: true, MinMetabolism: 0.5, MetabolismRange: 0.25}

	var c components.Cell
	c.Brain.Randomize(rng, 10, true)
	c.Metabolism = 0
	c.Color = 0x808080

	hits := Mutate(&c, rng, m)
	if want := 1 + 10 + neural.NumNeurons; hits != want {
		t.Errorf("expected %d hits, got %d", want, hits)
	}
	if c.Metabolism < 0.5 || c.Metabolism >= 0.75 {
		t.Errorf("metabolism %v outside [0.5, 0.75)", c.Metabolism)
	}

	m.Chance = 0
	before := c
	if hits := Mutate(&c, rng, m); hits != 0 {
		t.Errorf("chance 0: expected no hits, got %d", hits)
	}
	if c.Color != before.Color || c.Metabolism != before.Metabolism {
		t.Error("chance 0 changed the cell")
	}
}
