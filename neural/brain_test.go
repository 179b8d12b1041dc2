package neural

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestNeuronLayout(t *testing.T) {
	if NumInputs+NumInternal+NumOutputs != NumNeurons {
		t.Fatalf("layers do not partition the neuron vector: %d+%d+%d != %d",
			NumInputs, NumInternal, NumOutputs, NumNeurons)
	}
	if NumOutputs != 9 {
		t.Errorf("expected 9 outputs, got %d", NumOutputs)
	}

	for n := NeuronID(0); int(n) < NumNeurons; n++ {
		if n.String() == "" || n.String() == "invalid" {
			t.Errorf("neuron %d has no name", n)
		}
		if n.IsInput() && n.IsOutput() {
			t.Errorf("%s is both input and output", n)
		}
	}
	if NeuronID(NumNeurons).Valid() {
		t.Error("NumNeurons should not be a valid id")
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		n    NeuronID
		want Action
	}{
		{OutMoveFwd, Action{ActMove, Forward}},
		{OutMoveRight, Action{ActMove, Right}},
		{OutMoveBack, Action{ActMove, Back}},
		{OutMoveLeft, Action{ActMove, Left}},
		{OutMitoseFwd, Action{ActMitose, Forward}},
		{OutMitoseRight, Action{ActMitose, Right}},
		{OutMitoseBack, Action{ActMitose, Back}},
		{OutMitoseLeft, Action{ActMitose, Left}},
		{OutSleep, Action{Kind: ActSleep}},
	}

	for _, tt := range tests {
		t.Run(tt.n.String(), func(t *testing.T) {
			if got := ActionFor(tt.n); got != tt.want {
				t.Errorf("ActionFor(%s) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestActionForPanicsOnInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for input neuron")
		}
	}()
	ActionFor(InBias)
}

func TestCombiners(t *testing.T) {
	tests := []struct {
		name string
		c    Combiner
		x    float32
		want float32
	}{
		{"sigmoid zero", CombSigmoid, 0, 0},
		{"sigmoid large", CombSigmoid, 10, 1},
		{"sigmoid small", CombSigmoid, -10, -1},
		{"cosine zero", CombCosine, 0, -1},
		{"cosine one", CombCosine, 1, 1},
		{"cosine half", CombCosine, 0.5, 0},
		{"cosine above", CombCosine, 1.5, 1},
		{"cosine below", CombCosine, -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Apply(tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("%s(%v) = %v, want %v", tt.c, tt.x, got, tt.want)
			}
		})
	}
}

func TestSigmoidMatchesTanh(t *testing.T) {
	for _, x := range []float32{-2, -0.7, -0.1, 0.1, 0.3, 1.2} {
		want := math.Tanh(2 * float64(x))
		if got := Sigmoid(x); math.Abs(float64(got)-want) > 1e-5 {
			t.Errorf("Sigmoid(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestStepAccumulates(t *testing.T) {
	var b Brain
	b.SetCombiners(CombSigmoid)
	b.Synapses = []Synapse{
		{Src: InBias, Dst: OutSleep, Weight: 0.25},
		{Src: InBias, Dst: OutSleep, Weight: 0.25},
		{Src: InEnergy, Dst: OutMoveFwd, Weight: -1},
	}
	b.Neurons[InBias] = 1
	b.Neurons[InEnergy] = 0.5

	b.Step(true)

	if want := Sigmoid(0.5); b.Neurons[OutSleep] != want {
		t.Errorf("duplicate synapses should sum: got %v, want %v", b.Neurons[OutSleep], want)
	}
	if want := Sigmoid(-0.5); b.Neurons[OutMoveFwd] != want {
		t.Errorf("out_move_fwd = %v, want %v", b.Neurons[OutMoveFwd], want)
	}
	if b.Decide() != (Action{Kind: ActSleep}) {
		t.Errorf("expected sleep, got %s", b.Decide())
	}
}

func TestStepCarry(t *testing.T) {
	var b Brain
	b.SetCombiners(CombSigmoid)
	b.Synapses = []Synapse{{Src: InternalA, Dst: OutMoveBack, Weight: 1}}
	b.Neurons[InternalA] = 1

	carried := b.Clone()
	carried.Step(true)
	if carried.Neurons[OutMoveBack] != Sigmoid(1) {
		t.Errorf("carry: expected previous internal activation to feed forward, got %v", carried.Neurons[OutMoveBack])
	}

	cleared := b.Clone()
	cleared.Step(false)
	if cleared.Neurons[OutMoveBack] != 0 {
		t.Errorf("no carry: expected 0, got %v", cleared.Neurons[OutMoveBack])
	}
}

func TestStepSelfLoop(t *testing.T) {
	var b Brain
	b.SetCombiners(CombSigmoid)
	b.Synapses = []Synapse{
		{Src: InBias, Dst: InternalB, Weight: 1},
		{Src: InternalB, Dst: InternalB, Weight: 1},
	}

	b.Neurons[InBias] = 1
	b.Step(true)
	first := b.Neurons[InternalB]
	if first != Sigmoid(1) {
		t.Fatalf("first pass: got %v, want %v", first, Sigmoid(1))
	}

	b.Neurons[InBias] = 1
	b.Step(true)
	if want := Sigmoid(1 + first); b.Neurons[InternalB] != want {
		t.Errorf("second pass should read previous activation: got %v, want %v", b.Neurons[InternalB], want)
	}
}

func TestDecideTieLowestID(t *testing.T) {
	var b Brain
	for n := FirstOutput; int(n) < NumNeurons; n++ {
		b.Neurons[n] = 0.5
	}
	if got := b.Decide(); got != ActionFor(OutMoveFwd) {
		t.Errorf("all tied: expected %s, got %s", ActionFor(OutMoveFwd), got)
	}

	b.Neurons[OutMitoseLeft] = 0.9
	b.Neurons[OutSleep] = 0.9
	if got := b.Decide(); got != ActionFor(OutMitoseLeft) {
		t.Errorf("expected %s, got %s", ActionFor(OutMitoseLeft), got)
	}
}

func TestStepDeterministic(t *testing.T) {
	var a Brain
	a.Randomize(newTestRand(), 30, true)
	b := a.Clone()

	for i := 0; i < 10; i++ {
		a.Neurons[InBias], b.Neurons[InBias] = 1, 1
		a.Neurons[InEnergy], b.Neurons[InEnergy] = float32(i)/10, float32(i)/10
		if a.Think(true) != b.Think(true) {
			t.Fatalf("step %d: decisions diverged", i)
		}
	}
	if a.Neurons != b.Neurons {
		t.Error("activations diverged")
	}
}

func TestClone(t *testing.T) {
	var b Brain
	b.Randomize(newTestRand(), 8, false)

	clone := b.Clone()
	if clone.Synapses[0] != b.Synapses[0] {
		t.Error("clone has different synapses")
	}

	clone.Synapses[0].Weight = 999
	if b.Synapses[0].Weight == 999 {
		t.Error("clone is not independent")
	}
}

func TestOutputs(t *testing.T) {
	var b Brain
	b.Neurons[OutSleep] = 0.75
	out := b.Outputs()
	if out[NumOutputs-1] != 0.75 {
		t.Errorf("expected last output 0.75, got %v", out[NumOutputs-1])
	}
}

func BenchmarkBrainThink(b *testing.B) {
	var brain Brain
	brain.Randomize(newTestRand(), 30, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		brain.Neurons[InBias] = 1
		brain.Think(true)
	}
}
