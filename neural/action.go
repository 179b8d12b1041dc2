package neural

import "fmt"

// Relative is a direction in a cell's own frame.
type Relative uint8

const (
	Forward Relative = iota
	Right
	Back
	Left
)

// String returns the direction name.
func (r Relative) String() string {
	switch r {
	case Forward:
		return "forward"
	case Right:
		return "right"
	case Back:
		return "back"
	case Left:
		return "left"
	}
	return "invalid"
}

// ActionKind is the discrete behavior chosen by an output neuron.
type ActionKind uint8

const (
	ActMove ActionKind = iota
	ActMitose
	ActSleep
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActMove:
		return "move"
	case ActMitose:
		return "mitose"
	case ActSleep:
		return "sleep"
	}
	return "invalid"
}

// Action is a resolved brain decision. Dir is ignored for ActSleep.
type Action struct {
	Kind ActionKind
	Dir  Relative
}

// String formats the action for logs.
func (a Action) String() string {
	if a.Kind == ActSleep {
		return a.Kind.String()
	}
	return a.Kind.String() + "_" + a.Dir.String()
}

// ActionFor maps an output neuron to its action.
func ActionFor(n NeuronID) Action {
	switch n {
	case OutMoveFwd, OutMoveRight, OutMoveBack, OutMoveLeft:
		return Action{Kind: ActMove, Dir: Relative(n - OutMoveFwd)}
	case OutMitoseFwd, OutMitoseRight, OutMitoseBack, OutMitoseLeft:
		return Action{Kind: ActMitose, Dir: Relative(n - OutMitoseFwd)}
	case OutSleep:
		return Action{Kind: ActSleep}
	}
	panic(fmt.Sprintf("neural: %s is not an output neuron", n))
}
