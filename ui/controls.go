package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Control is a button press reported by the controls panel.
type Control int

const (
	ControlNone Control = iota
	ControlSlower
	ControlPause
	ControlFaster
	ControlResetView
)

// ControlsPanel renders the speed and pause buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Width returns the panel width.
func (c *ControlsPanel) Width() int32 {
	return 4*buttonW + 3*buttonGap + 2*c.renderer.Theme.Padding
}

const (
	buttonW   = 70
	buttonH   = 24
	buttonGap = 6
)

// Draw renders the buttons and returns the one clicked this frame.
func (c *ControlsPanel) Draw(paused bool) Control {
	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.Width(), buttonH+2*padding)

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}

	buttons := []struct {
		label   string
		control Control
	}{
		{"Slower", ControlSlower},
		{pauseLabel, ControlPause},
		{"Faster", ControlFaster},
		{"Fit", ControlResetView},
	}

	pressed := ControlNone
	x := float32(c.x + padding)
	for _, b := range buttons {
		bounds := rl.Rectangle{X: x, Y: float32(c.y + padding), Width: buttonW, Height: buttonH}
		if gui.Button(bounds, b.label) {
			pressed = b.control
		}
		x += buttonW + buttonGap
	}
	return pressed
}
