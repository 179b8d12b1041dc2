// Package terminal is a tcell front end: it draws the field with half-block
// characters, two grid rows per text row, and maps keys to speed controls.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/game"
)

const halfBlock = '▀'

type pixel struct {
	color components.Color
	set   bool
}

// Terminal renders one Simulation to a tcell screen.
type Terminal struct {
	screen     tcell.Screen
	sim        *game.Simulation
	background tcell.Color

	sprites []game.Sprite
	pixels  []pixel
	scale   int // grid cells per pixel along each axis

	frames int
}

// New wraps an initialized screen.
func New(screen tcell.Screen, sim *game.Simulation, background components.Color) *Terminal {
	return &Terminal{
		screen:     screen,
		sim:        sim,
		background: tcell.NewHexColor(int32(background)),
	}
}

// Run advances the simulation by wall time and redraws every frame until
// the user quits, ctx is cancelled, or maxTicks (0 = unlimited) is reached.
func (t *Terminal) Run(ctx context.Context, frame time.Duration, maxTicks uint64) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !t.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			t.sim.Advance(now.Sub(last))
			last = now
			t.Draw()
			if maxTicks > 0 && t.sim.Tick() >= maxTicks {
				return nil
			}
		}
	}
}

// HandleEvent applies a key or resize event. Returns false on quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.sim.SpeedUp()
		case tcell.KeyDown:
			t.sim.SlowDown()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.sim.TogglePause()
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Draw renders the field and the status line.
func (t *Terminal) Draw() {
	cols, rows := t.screen.Size()
	if cols < 1 || rows < 2 {
		return
	}
	fw, fh := t.sim.FieldSize()
	pw, ph := cols, 2*(rows-1)

	t.sprites = t.sim.Snapshot(t.sprites)
	t.scale = Scale(fw, fh, pw, ph)
	if cap(t.pixels) < pw*ph {
		t.pixels = make([]pixel, pw*ph)
	}
	t.pixels = t.pixels[:pw*ph]
	downsample(t.pixels, pw, ph, t.scale, t.sprites)

	for ty := 0; ty < rows-1; ty++ {
		for tx := 0; tx < cols; tx++ {
			top := t.color(t.pixels[(2*ty)*pw+tx])
			bottom := t.color(t.pixels[(2*ty+1)*pw+tx])
			t.screen.SetContent(tx, ty, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}

	t.drawStatus(rows-1, cols)
	t.screen.Show()
	t.frames++
	t.sim.RecordFrame()
}

func (t *Terminal) color(p pixel) tcell.Color {
	if !p.set {
		return t.background
	}
	return tcell.NewHexColor(int32(p.color))
}

func (t *Terminal) drawStatus(y, cols int) {
	state := fmt.Sprintf("%.0f tps", t.sim.TicksPerSecond())
	if t.sim.Paused() {
		state = "PAUSED"
	}
	line := fmt.Sprintf(" tick %d | cells %d | %s | 1:%d | up/down speed, space pause, q quit",
		t.sim.Tick(), t.sim.Population(), state, t.scale)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Scale returns the smallest whole number of grid cells per pixel that fits
// a fw×fh field into pw×ph pixels.
func Scale(fw, fh, pw, ph int) int {
	return max(ceilDiv(fw, pw), ceilDiv(fh, ph), 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// downsample clears pixels and marks one pixel per sprite. When several
// cells share a pixel the last one in scheduling order shows.
func downsample(pixels []pixel, pw, ph, scale int, sprites []game.Sprite) {
	clear(pixels)
	for _, s := range sprites {
		px, py := s.X/scale, s.Y/scale
		if px >= pw || py >= ph {
			continue
		}
		pixels[py*pw+px] = pixel{color: s.Color, set: true}
	}
}
