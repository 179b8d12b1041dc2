package systems

import "github.com/pthm-cable/mitosis/components"

// Metabolic is the result of one metabolism step.
type Metabolic uint8

const (
	Dozing  Metabolic = iota // still sleeping, regained energy
	Woke                     // reached full energy and woke up
	Awake                    // paid the drain and may act
	Starved                  // energy exhausted, cell must die
)

// String returns the state name.
func (m Metabolic) String() string {
	switch m {
	case Dozing:
		return "dozing"
	case Woke:
		return "woke"
	case Awake:
		return "awake"
	case Starved:
		return "starved"
	}
	return "invalid"
}

// Metabolize applies one tick of metabolism. Sleeping cells regain
// Metabolism energy and wake, clamped to 1, once full. Awake cells pay
// Metabolism and starve at zero or below.
func Metabolize(c *components.Cell) Metabolic {
	if c.Sleeping {
		c.Energy += c.Metabolism
		if c.Energy >= 1 {
			c.Energy = 1
			c.Sleeping = false
			return Woke
		}
		return Dozing
	}

	c.Energy -= c.Metabolism
	if c.Energy <= 0 {
		return Starved
	}
	return Awake
}
