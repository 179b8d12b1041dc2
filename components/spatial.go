package components

import "github.com/pthm-cable/mitosis/neural"

// Position is a grid coordinate. Values are always reduced modulo the field size.
type Position struct {
	X, Y int
}

// Direction is a unit step along one grid axis.
// Screen coordinates: Y grows downward, so North is (0,-1).
type Direction struct {
	DX, DY int8
}

// Compass directions.
var (
	North = Direction{DX: 0, DY: -1}
	East  = Direction{DX: 1, DY: 0}
	South = Direction{DX: 0, DY: 1}
	West  = Direction{DX: -1, DY: 0}
)

// Compass lists the four facings in clockwise order starting at North.
var Compass = [4]Direction{North, East, South, West}

// Left returns the direction 90 degrees counter-clockwise.
func (d Direction) Left() Direction {
	return Direction{DX: d.DY, DY: -d.DX}
}

// Right returns the direction 90 degrees clockwise.
func (d Direction) Right() Direction {
	return Direction{DX: -d.DY, DY: d.DX}
}

// Back returns the opposite direction.
func (d Direction) Back() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Turn resolves a direction relative to this facing.
func (d Direction) Turn(r neural.Relative) Direction {
	switch r {
	case neural.Forward:
		return d
	case neural.Right:
		return d.Right()
	case neural.Back:
		return d.Back()
	case neural.Left:
		return d.Left()
	}
	panic("components: unknown relative direction")
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return d == North || d == East || d == South || d == West
}
