package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/neural"
	"github.com/pthm-cable/mitosis/telemetry"
)

// NetworkColors for activation visualization.
var (
	ColorNodePositive = rl.Color{R: 255, G: 100, B: 100, A: 255}
	ColorNodeNegative = rl.Color{R: 100, G: 100, B: 255, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

const nodeRadius = 5

// networkLayout places inputs, internal units and outputs in three columns.
func networkLayout(x, y, width, height int32) [neural.NumNeurons]rl.Vector2 {
	var pos [neural.NumNeurons]rl.Vector2
	colWidth := float32(width) / 3
	usable := float32(height - 20)

	column := func(first, count, col int) {
		spacing := usable / float32(count)
		for i := 0; i < count; i++ {
			pos[first+i] = rl.Vector2{
				X: float32(x) + colWidth*float32(col) + colWidth/2,
				Y: float32(y) + 10 + spacing*(float32(i)+0.5),
			}
		}
	}
	column(0, neural.NumInputs, 0)
	column(int(neural.FirstInternal), neural.NumInternal, 1)
	column(int(neural.FirstOutput), neural.NumOutputs, 2)
	return pos
}

// DrawNetworkDiagram renders a cell's synapses over its neuron activations.
// Self-connections draw as a ring around the node.
func DrawNetworkDiagram(x, y, width, height int32, cell telemetry.CellState) {
	if len(cell.Neurons) != neural.NumNeurons {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}
	pos := networkLayout(x, y, width, height)

	for _, s := range cell.Synapses {
		if int(s.Src) >= neural.NumNeurons || int(s.Dst) >= neural.NumNeurons {
			continue
		}
		if s.Src == s.Dst {
			rl.DrawCircleLinesV(pos[s.Src], nodeRadius+3, edgeColor(s.Weight))
			continue
		}
		drawEdge(pos[s.Src], pos[s.Dst], s.Weight)
	}

	for n := 0; n < neural.NumNeurons; n++ {
		drawNode(pos[n], nodeRadius, cell.Neurons[n])
	}

	// Output labels on the right
	for n := neural.FirstOutput; int(n) < neural.NumNeurons; n++ {
		p := pos[n]
		rl.DrawText(n.String()[4:], int32(p.X+nodeRadius+4), int32(p.Y)-5, 10, ColorLabelDim)
	}
}

func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

func drawEdge(from, to rl.Vector2, weight float32) {
	thickness := min(max(abs32(weight)*1.5, 0.5), 3)
	rl.DrawLineEx(from, to, thickness, edgeColor(weight))
}

// edgeColor is red for excitatory and blue for inhibitory weights, more
// opaque as the weight grows.
func edgeColor(weight float32) rl.Color {
	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+int(abs32(weight)*40), 150))
	return color
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	t := min(abs32(activation), 1)
	if activation > 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
