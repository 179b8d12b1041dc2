package neural

import (
	"fmt"
	"math"
)

// Combiner selects the squashing function a neuron applies to its summed input.
type Combiner uint8

const (
	CombSigmoid Combiner = iota
	CombCosine

	NumCombiners int = iota
)

// Apply squashes x with the selected function.
func (c Combiner) Apply(x float32) float32 {
	switch c {
	case CombSigmoid:
		return Sigmoid(x)
	case CombCosine:
		return Cosine(x)
	}
	panic(fmt.Sprintf("neural: unknown combiner %d", c))
}

// String returns the combiner name.
func (c Combiner) String() string {
	switch c {
	case CombSigmoid:
		return "sigmoid"
	case CombCosine:
		return "cosine"
	}
	return "invalid"
}

// Sigmoid maps R onto (-1, 1): 1 - 2/(1+e^(4x)), i.e. tanh(2x).
func Sigmoid(x float32) float32 {
	return 1 - 2/(1+float32(math.Exp(float64(4*x))))
}

// Cosine saturates to 1 outside [-1, 1] and follows -cos(pi*x) inside.
func Cosine(x float32) float32 {
	if x > 1 || x < -1 {
		return 1
	}
	return -float32(math.Cos(math.Pi * float64(x)))
}
