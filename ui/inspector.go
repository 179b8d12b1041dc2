package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/neural"
	"github.com/pthm-cable/mitosis/telemetry"
)

const networkHeight = 200

// InspectorData is the cell under the cursor.
type InspectorData struct {
	Cell telemetry.CellState
}

// Inspector renders the cell inspection panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor[InspectorData]
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: inspectorSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns its bottom edge.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + networkHeight
	for _, sd := range ins.sections {
		height += SectionHeight(r, sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = DrawSection(r, ins.x+padding, y, sd, data, ins.width-padding*2)
	}
	DrawNetworkDiagram(ins.x+padding, y, ins.width-padding*2, networkHeight, data.Cell)
	return ins.y + height
}

func inspectorSections() []SectionDescriptor[InspectorData] {
	cell := SectionDescriptor[InspectorData]{
		Title: "Cell",
		Fields: []FieldDescriptor[InspectorData]{
			{Label: "Position", Widget: WidgetText, TextGetter: func(d InspectorData) string {
				return fmt.Sprintf("%d, %d", d.Cell.X, d.Cell.Y)
			}},
			{Label: "Facing", Widget: WidgetText, TextGetter: func(d InspectorData) string {
				return facingName(components.Direction{DX: d.Cell.DX, DY: d.Cell.DY})
			}},
			{Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d InspectorData) rl.Color {
				r, g, b := components.Color(d.Cell.Color).RGB()
				return rl.Color{R: r, G: g, B: b, A: 255}
			}},
			{Label: "Energy", Widget: WidgetBar, Getter: func(d InspectorData) float32 { return d.Cell.Energy }},
			{Label: "Metabolism", Widget: WidgetBar, Getter: func(d InspectorData) float32 { return d.Cell.Metabolism }},
			{Label: "State", Widget: WidgetText, TextGetter: func(d InspectorData) string {
				if d.Cell.Sleeping {
					return "sleeping"
				}
				return "awake"
			}},
			{Label: "Generation", Widget: WidgetText, Format: "%.0f", Getter: func(d InspectorData) float32 {
				return float32(d.Cell.Generation)
			}},
			{Label: "Synapses", Widget: WidgetText, Format: "%.0f", Getter: func(d InspectorData) float32 {
				return float32(len(d.Cell.Synapses))
			}},
		},
	}

	outputs := SectionDescriptor[InspectorData]{
		Title: "Outputs",
		Visible: func(d InspectorData) bool {
			return len(d.Cell.Neurons) == neural.NumNeurons
		},
	}
	for n := neural.FirstOutput; int(n) < neural.NumNeurons; n++ {
		outputs.Fields = append(outputs.Fields, FieldDescriptor[InspectorData]{
			Label:  n.String(),
			Widget: WidgetCenteredBar,
			Range:  CenteredRange(),
			Getter: func(d InspectorData) float32 { return d.Cell.Neurons[n] },
		})
	}

	return []SectionDescriptor[InspectorData]{cell, outputs}
}

func facingName(d components.Direction) string {
	switch d {
	case components.North:
		return "north"
	case components.East:
		return "east"
	case components.South:
		return "south"
	case components.West:
		return "west"
	}
	return "?"
}
