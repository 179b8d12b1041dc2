package neural

// NeuronID indexes the fixed neuron vector shared by every brain.
// Inputs come first, then free internal units, then one output per action.
type NeuronID uint8

// Relative sensor and actuator groups are laid out Forward, Right, Back, Left
// so that group + Relative addresses a member.
const (
	InBias NeuronID = iota

	InLikeFwd
	InLikeRight
	InLikeBack
	InLikeLeft

	InEdibleFwd
	InEdibleRight
	InEdibleBack
	InEdibleLeft

	InCompassN
	InCompassE
	InCompassS
	InCompassW

	InEnergy

	InternalA
	InternalB
	InternalC
	InternalD
	InternalE

	OutMoveFwd
	OutMoveRight
	OutMoveBack
	OutMoveLeft

	OutMitoseFwd
	OutMitoseRight
	OutMitoseBack
	OutMitoseLeft

	OutSleep

	NumNeurons int = iota
)

// Layer boundaries.
const (
	FirstInternal = InternalA
	FirstOutput   = OutMoveFwd

	NumInputs   = int(FirstInternal)
	NumInternal = int(FirstOutput - FirstInternal)
	NumOutputs  = NumNeurons - int(FirstOutput)
)

var neuronNames = [NumNeurons]string{
	InBias:         "in_bias",
	InLikeFwd:      "in_like_fwd",
	InLikeRight:    "in_like_right",
	InLikeBack:     "in_like_back",
	InLikeLeft:     "in_like_left",
	InEdibleFwd:    "in_edible_fwd",
	InEdibleRight:  "in_edible_right",
	InEdibleBack:   "in_edible_back",
	InEdibleLeft:   "in_edible_left",
	InCompassN:     "in_compass_n",
	InCompassE:     "in_compass_e",
	InCompassS:     "in_compass_s",
	InCompassW:     "in_compass_w",
	InEnergy:       "in_energy",
	InternalA:      "internal_a",
	InternalB:      "internal_b",
	InternalC:      "internal_c",
	InternalD:      "internal_d",
	InternalE:      "internal_e",
	OutMoveFwd:     "out_move_fwd",
	OutMoveRight:   "out_move_right",
	OutMoveBack:    "out_move_back",
	OutMoveLeft:    "out_move_left",
	OutMitoseFwd:   "out_mitose_fwd",
	OutMitoseRight: "out_mitose_right",
	OutMitoseBack:  "out_mitose_back",
	OutMitoseLeft:  "out_mitose_left",
	OutSleep:       "out_sleep",
}

// String returns the snake_case neuron name.
func (n NeuronID) String() string {
	if int(n) < NumNeurons {
		return neuronNames[n]
	}
	return "invalid"
}

// Valid reports whether n addresses a neuron.
func (n NeuronID) Valid() bool { return int(n) < NumNeurons }

// IsInput reports whether n is overwritten by sensors each tick.
func (n NeuronID) IsInput() bool { return n < FirstInternal }

// IsOutput reports whether n selects an action.
func (n NeuronID) IsOutput() bool { return n >= FirstOutput && n.Valid() }
