package renderer

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/game"
)

func TestRGBA(t *testing.T) {
	got := RGBA(0x336699)
	want := color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}
	if got != want {
		t.Errorf("RGBA(0x336699) = %+v, want %+v", got, want)
	}
}

func TestRasterize(t *testing.T) {
	const w, h = 4, 3
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pixels := make([]color.RGBA, w*h)
	for i := range pixels {
		pixels[i] = color.RGBA{R: 1} // stale frame
	}

	sprites := []game.Sprite{
		{X: 0, Y: 0, Color: 0xff0000},
		{X: 3, Y: 2, Color: components.Color(0x808080)},
	}
	Rasterize(pixels, w, sprites, bg)

	filled := 0
	for i, p := range pixels {
		switch i {
		case 0:
			if p != (color.RGBA{R: 255, A: 255}) {
				t.Errorf("pixel 0 = %+v", p)
			}
		case 2*w + 3:
			if p != (color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 255}) {
				t.Errorf("pixel (3,2) = %+v", p)
			}
		default:
			if p != bg {
				t.Errorf("pixel %d not cleared: %+v", i, p)
			}
			filled++
		}
	}
	if filled != w*h-2 {
		t.Errorf("background pixels = %d", filled)
	}
}
