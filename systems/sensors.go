package systems

import (
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/neural"
)

// Kinship returns 1 - d/128 where d is the OR of the three per-channel XOR
// differences of a and b. Identical colors give 1.
func Kinship(a, b components.Color) float32 {
	x := (a ^ b) & components.ColorMask
	d := uint8(x>>16) | uint8(x>>8) | uint8(x)
	return 1 - float32(d)/128
}

// Sense writes the input neurons of c from its own state and the four grid
// cells around it. c must already be removed from the field so it never
// observes itself.
func Sense(c *components.Cell, pool *Pool, field *Field) {
	in := &c.Brain.Neurons

	in[neural.InBias] = 1
	in[neural.InEnergy] = 2*c.Energy - 1

	for i, d := range components.Compass {
		var v float32 = -1
		if c.Facing == d {
			v = 1
		}
		in[neural.InCompassN+neural.NeuronID(i)] = v
	}

	for r := neural.Forward; r <= neural.Left; r++ {
		like, edible := neighbor(c, c.Facing.Turn(r), pool, field)
		in[neural.InLikeFwd+neural.NeuronID(r)] = like
		in[neural.InEdibleFwd+neural.NeuronID(r)] = edible
	}
}

// neighbor reads kin-likeness and edibility of the cell one step along d.
// Both are 0 for an empty grid cell.
func neighbor(c *components.Cell, d components.Direction, pool *Pool, field *Field) (like, edible float32) {
	p := field.Step(c.Pos, d)
	other, ok := pool.Get(field.At(p))
	if !ok {
		return 0, 0
	}

	edible = -1
	if Edible(c, other) {
		edible = 1
	}
	return Kinship(c.Color, other.Color), edible
}
