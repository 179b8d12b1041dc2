package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         uint64
	Population   int
	Capacity     int
	Sleeping     int
	TargetTPS    float64 // configured tick rate
	MeasuredTPS  float64 // ticks actually run per second
	DroppedTicks uint64
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.DrawPanel(5, 5, 330, 92)

	rl.DrawText(data.Title, 12, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Cells: %d / %d | Sleeping: %d", data.Population, data.Capacity, data.Sleeping),
		12, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
		12, 55, 16, rl.LightGray,
	)

	status := fmt.Sprintf("%s tps (actual %s)", formatRate(data.TargetTPS), formatRate(data.MeasuredTPS))
	color := rl.Yellow
	if data.Paused {
		status = "PAUSED"
	} else if data.DroppedTicks > 0 {
		status += fmt.Sprintf(" | dropped %d", data.DroppedTicks)
		color = rl.Orange
	}
	rl.DrawText(status, 12, 75, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// formatRate prints a tick rate with a k/M suffix.
func formatRate(tps float64) string {
	switch {
	case tps >= 1e6:
		return fmt.Sprintf("%.2fM", tps/1e6)
	case tps >= 1e3:
		return fmt.Sprintf("%.1fk", tps/1e3)
	default:
		return fmt.Sprintf("%.0f", tps)
	}
}
