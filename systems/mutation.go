package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/mitosis/components"
)

// Mutation holds the per-birth mutation parameters.
type Mutation struct {
	Chance          float32 // Bernoulli probability per field
	Evolved         bool    // combiners are heritable
	MinMetabolism   float32
	MetabolismRange float32
}

// RandomMetabolism draws min + U[0, range).
func (m Mutation) RandomMetabolism(rng *rand.Rand) float32 {
	return m.MinMetabolism + rng.Float32()*m.MetabolismRange
}

// Mutate applies independent Bernoulli draws to the metabolism and color
// pair and to every brain field. Each success also drifts the color, so
// color distance tracks genetic distance. Returns the number of hits.
func Mutate(c *components.Cell, rng *rand.Rand, m Mutation) int {
	hits := 0

	if rng.Float32() < m.Chance {
		c.Metabolism = m.RandomMetabolism(rng)
		hits++
	}
	hits += c.Brain.Mutate(rng, m.Chance, m.Evolved)

	for i := 0; i < hits; i++ {
		c.Color = SimilarColor(rng, c.Color)
	}
	return hits
}

// SimilarColor flips a random run of low bits in each channel. The run is
// 4 bits wide half of the time and each extra bit halves the odds, up to a
// full-channel flip at 1/16.
func SimilarColor(rng *rand.Rand, c components.Color) components.Color {
	var mask components.Color
	for shift := 0; shift < 24; shift += 8 {
		mask |= components.Color(lowMask(rng)) << shift
	}
	return (c ^ mask) & components.ColorMask
}

// lowMask returns one of 0x0f, 0x1f, 0x3f, 0x7f, 0xff.
func lowMask(rng *rand.Rand) uint32 {
	v := rng.Uint32()&0xf0 | 0x100
	return v&-v - 1
}
