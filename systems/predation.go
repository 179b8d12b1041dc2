package systems

import "github.com/pthm-cable/mitosis/components"

// Edible reports whether mover may eat other: sleepers are always edible,
// otherwise strictly more energy wins.
func Edible(mover, other *components.Cell) bool {
	return other.Sleeping || mover.Energy > other.Energy
}

// Outcome is the result of a contested grid cell.
type Outcome struct {
	MoverWins bool
	Energy    float32 // Survivor's energy, capped at 1
}

// Resolve decides a contest between a cell entering a grid cell and the cell
// already standing there. The survivor absorbs the loser's energy.
func Resolve(mover, occupant *components.Cell) Outcome {
	return Outcome{
		MoverWins: Edible(mover, occupant),
		Energy:    minf(1, mover.Energy+occupant.Energy),
	}
}
