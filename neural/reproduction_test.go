package neural

import "testing"

func TestRandomize(t *testing.T) {
	rng := newTestRand()

	var b Brain
	b.Randomize(rng, 30, true)

	if len(b.Synapses) != 30 {
		t.Fatalf("expected 30 synapses, got %d", len(b.Synapses))
	}
	for i, s := range b.Synapses {
		if !s.Src.Valid() || !s.Dst.Valid() {
			t.Errorf("synapse %d has out of range endpoint: %+v", i, s)
		}
		if s.Weight < -1 || s.Weight >= 1 {
			t.Errorf("synapse %d weight out of range: %v", i, s.Weight)
		}
	}
	for i, c := range b.Combiners {
		if int(c) >= NumCombiners {
			t.Errorf("neuron %d has invalid combiner %d", i, c)
		}
	}
}

func TestRandomizeSigmoidOnly(t *testing.T) {
	var b Brain
	b.Randomize(newTestRand(), 10, false)

	for i, c := range b.Combiners {
		if c != CombSigmoid {
			t.Errorf("neuron %d: expected sigmoid, got %s", i, c)
		}
	}
}

func TestRandomizeReusesBuffer(t *testing.T) {
	var b Brain
	b.Randomize(newTestRand(), 16, true)
	first := &b.Synapses[0]

	b.Randomize(newTestRand(), 8, true)
	if &b.Synapses[0] != first {
		t.Error("expected synapse buffer to be reused")
	}
	if len(b.Synapses) != 8 {
		t.Errorf("expected 8 synapses, got %d", len(b.Synapses))
	}
}

func TestMutateChanceBounds(t *testing.T) {
	rng := newTestRand()

	var b Brain
	b.Randomize(rng, 30, true)
	orig := b.Clone()

	if hits := b.Mutate(rng, 0, true); hits != 0 {
		t.Errorf("chance 0: expected 0 hits, got %d", hits)
	}
	for i := range b.Synapses {
		if b.Synapses[i] != orig.Synapses[i] {
			t.Fatalf("chance 0 changed synapse %d", i)
		}
	}

	hits := b.Mutate(rng, 1, true)
	if want := len(b.Synapses) + NumNeurons; hits != want {
		t.Errorf("chance 1 evolved: expected %d hits, got %d", want, hits)
	}

	hits = b.Mutate(rng, 1, false)
	if hits != len(b.Synapses) {
		t.Errorf("chance 1 sigmoid: expected %d hits, got %d", len(b.Synapses), hits)
	}
}

func TestMutateRate(t *testing.T) {
	rng := newTestRand()

	var b Brain
	b.Randomize(rng, 100, false)

	const rounds = 1000
	total := 0
	for i := 0; i < rounds; i++ {
		total += b.Mutate(rng, 0.05, false)
	}

	rate := float64(total) / float64(rounds*len(b.Synapses))
	if rate < 0.04 || rate > 0.06 {
		t.Errorf("mutation rate %.4f too far from 0.05", rate)
	}
	t.Logf("observed mutation rate %.4f", rate)
}
