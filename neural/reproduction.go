package neural

import "math/rand/v2"

// RandomSynapse draws endpoints uniformly over all neurons and a weight in [-1, 1).
func RandomSynapse(rng *rand.Rand) Synapse {
	return Synapse{
		Src:    NeuronID(rng.IntN(NumNeurons)),
		Dst:    NeuronID(rng.IntN(NumNeurons)),
		Weight: rng.Float32()*2 - 1,
	}
}

// RandomCombiner draws a combiner uniformly.
func RandomCombiner(rng *rand.Rand) Combiner {
	return Combiner(rng.IntN(NumCombiners))
}

// Randomize replaces the genome with n fresh synapses and clears activations.
// When evolved is false every neuron uses the sigmoid.
func (b *Brain) Randomize(rng *rand.Rand, n int, evolved bool) {
	b.Neurons = [NumNeurons]float32{}

	if cap(b.Synapses) >= n {
		b.Synapses = b.Synapses[:n]
	} else {
		b.Synapses = make([]Synapse, n)
	}
	for i := range b.Synapses {
		b.Synapses[i] = RandomSynapse(rng)
	}

	if !evolved {
		b.SetCombiners(CombSigmoid)
		return
	}
	for i := range b.Combiners {
		b.Combiners[i] = RandomCombiner(rng)
	}
}

// Mutate redraws each synapse, and each combiner when evolved, with
// independent probability chance. Returns the number of fields redrawn.
func (b *Brain) Mutate(rng *rand.Rand, chance float32, evolved bool) int {
	hits := 0

	for i := range b.Synapses {
		if rng.Float32() < chance {
			b.Synapses[i] = RandomSynapse(rng)
			hits++
		}
	}

	if !evolved {
		return hits
	}
	for i := range b.Combiners {
		if rng.Float32() < chance {
			b.Combiners[i] = RandomCombiner(rng)
			hits++
		}
	}

	return hits
}
