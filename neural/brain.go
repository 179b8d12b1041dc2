// Package neural provides the fixed-topology synapse-list brains carried by cells.
package neural

// Synapse adds Weight * activation[Src] into the accumulator of Dst.
type Synapse struct {
	Src    NeuronID
	Dst    NeuronID
	Weight float32
}

// Brain is a neuron activation vector plus a sparse weighted synapse list.
// Synapses may share sources or destinations, and self-loops read the
// activation left over from the previous evaluation.
type Brain struct {
	Neurons   [NumNeurons]float32
	Combiners [NumNeurons]Combiner
	Synapses  []Synapse
}

// Step runs one synapse pass and one combining pass.
// Input neurons must already hold this tick's sensor values.
// With carry false, internal and output activations are cleared first so no
// state survives between ticks except the weights.
func (b *Brain) Step(carry bool) {
	if !carry {
		for i := NumInputs; i < NumNeurons; i++ {
			b.Neurons[i] = 0
		}
	}

	var acc [NumNeurons]float32
	for _, s := range b.Synapses {
		acc[s.Dst] += b.Neurons[s.Src] * s.Weight
	}

	for i := range b.Neurons {
		b.Neurons[i] = b.Combiners[i].Apply(acc[i])
	}
}

// Decide returns the action of the strongest output neuron.
// Ties go to the lowest neuron id.
func (b *Brain) Decide() Action {
	best := FirstOutput
	for n := FirstOutput + 1; int(n) < NumNeurons; n++ {
		if b.Neurons[n] > b.Neurons[best] {
			best = n
		}
	}
	return ActionFor(best)
}

// Think is Step followed by Decide.
func (b *Brain) Think(carry bool) Action {
	b.Step(carry)
	return b.Decide()
}

// Outputs returns a copy of the output activations in neuron order.
func (b *Brain) Outputs() [NumOutputs]float32 {
	var out [NumOutputs]float32
	copy(out[:], b.Neurons[FirstOutput:])
	return out
}

// SetCombiners assigns c to every neuron.
func (b *Brain) SetCombiners(c Combiner) {
	for i := range b.Combiners {
		b.Combiners[i] = c
	}
}

// Clone creates a deep copy of the brain.
func (b *Brain) Clone() Brain {
	clone := *b
	clone.Synapses = make([]Synapse, len(b.Synapses))
	copy(clone.Synapses, b.Synapses)
	return clone
}
