// Package components defines the plain data records of the simulation.
package components

import "github.com/pthm-cable/mitosis/neural"

// Color is a 24-bit 0xRRGGBB value. It is both the display color and a
// heritable trait that neighbors read for kin recognition.
type Color uint32

// ColorMask keeps the low 24 bits.
const ColorMask Color = 0xffffff

// RGB splits the color into channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Cell is one agent. Storage is owned by the pool; everything else refers to
// a cell through its handle.
type Cell struct {
	Pos    Position
	Facing Direction
	Color  Color

	Energy     float32 // Vital resource, at most 1
	Metabolism float32 // Per-tick drain, inverted while sleeping
	Sleeping   bool

	Brain neural.Brain

	// Lineage (telemetry only)
	Generation uint32
}

// CopyFrom makes c a deep copy of src, reusing c's synapse buffer.
func (c *Cell) CopyFrom(src *Cell) {
	buf := c.Brain.Synapses
	*c = *src
	c.Brain.Synapses = append(buf[:0], src.Brain.Synapses...)
}
