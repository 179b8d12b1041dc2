package main

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
	"github.com/pthm-cable/mitosis/renderer"
	"github.com/pthm-cable/mitosis/ui"
)

const controlsLegend = "[Up/Down] speed  [Space] pause  [Wheel] zoom  [Right drag] pan  [R] fit"

// viewer is the raylib front end.
type viewer struct {
	sim *game.Simulation
	cfg *config.Config

	cam       *camera.Camera
	field     *renderer.FieldRenderer
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.Inspector

	sprites    []game.Sprite
	background rl.Color
}

func runWindow(sim *game.Simulation, cfg *config.Config, maxTicks uint64) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Mitosis")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := newViewer(sim, cfg)
	defer v.field.Unload()

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()

		if maxTicks > 0 && sim.Tick() >= maxTicks {
			break
		}
	}
}

func newViewer(sim *game.Simulation, cfg *config.Config) *viewer {
	fw, fh := sim.FieldSize()
	sw, sh := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	bg := components.Color(cfg.Render.BackgroundColor)

	v := &viewer{
		sim:        sim,
		cfg:        cfg,
		cam:        camera.New(float32(sw), float32(sh), float32(fw), float32(fh)),
		field:      renderer.NewFieldRenderer(sw, sh, fw, fh, bg),
		hud:        ui.NewHUD(),
		controls:   ui.NewControlsPanel(0, 0),
		inspector:  ui.NewInspector(0, 0, 260),
		background: renderer.RGBA(bg),
	}
	v.field.Init()
	v.layout(sw, sh)
	return v
}

// layout anchors the controls top-right and the inspector below them.
func (v *viewer) layout(sw, sh int32) {
	v.controls.SetPosition(sw-v.controls.Width()-5, 5)
	v.inspector.SetPosition(sw-265, 60)
}

func (v *viewer) update() {
	if rl.IsWindowResized() {
		sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		v.cam.Resize(float32(sw), float32(sh))
		v.field.Resize(float32(sw), float32(sh))
		v.layout(sw, sh)
	}

	v.handleInput()

	elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	v.sim.Advance(elapsed)

	v.sprites = v.sim.Snapshot(v.sprites)
	v.field.Update(v.sprites)
}

func (v *viewer) handleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		v.sim.SpeedUp()
	case rl.IsKeyPressed(rl.KeyDown):
		v.sim.SlowDown()
	case rl.IsKeyPressed(rl.KeySpace):
		v.sim.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		v.cam.Reset()
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.25)
		if wheel < 0 {
			factor = 1 / factor
		}
		v.cam.ZoomAt(mouse.X, mouse.Y, factor)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(v.background)

	v.field.Draw(v.cam)
	v.drawHover()

	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	perf := v.sim.PerfStats()
	v.hud.Draw(ui.HUDData{
		Title:        "Mitosis",
		Tick:         v.sim.Tick(),
		Population:   v.sim.Population(),
		Capacity:     v.sim.Capacity(),
		Sleeping:     v.sim.Sleeping(),
		TargetTPS:    v.sim.TicksPerSecond(),
		MeasuredTPS:  perf.TicksPerSecond,
		DroppedTicks: v.sim.DroppedTicks(),
		FPS:          rl.GetFPS(),
		Paused:       v.sim.Paused(),
		ScreenWidth:  sw,
		ScreenHeight: sh,
	})
	v.hud.DrawControls(sw, sh, controlsLegend)

	switch v.controls.Draw(v.sim.Paused()) {
	case ui.ControlSlower:
		v.sim.SlowDown()
	case ui.ControlPause:
		v.sim.TogglePause()
	case ui.ControlFaster:
		v.sim.SpeedUp()
	case ui.ControlResetView:
		v.cam.Reset()
	}

	rl.EndDrawing()
	v.sim.RecordFrame()
}

// drawHover outlines the grid cell under the mouse and inspects its occupant.
func (v *viewer) drawHover() {
	mouse := rl.GetMousePosition()
	x, y := v.cam.ScreenToCell(mouse.X, mouse.Y)

	if v.cam.Zoom >= 4 {
		sx, sy := v.cam.WorldToScreen(float32(x), float32(y))
		rect := rl.Rectangle{X: sx, Y: sy, Width: v.cam.Zoom, Height: v.cam.Zoom}
		rl.DrawRectangleLinesEx(rect, 1, rl.Black)
	}

	if cell, ok := v.sim.CellAt(x, y); ok {
		v.inspector.Draw(ui.InspectorData{Cell: cell})
	}
}
