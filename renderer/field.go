// Package renderer draws the cell field with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/game"
)

// FieldRenderer keeps one texel per grid cell and stretches it over the
// window through the camera. The texture repeats so the view wraps.
type FieldRenderer struct {
	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA
	background color.RGBA

	screenW, screenH float32
	initialized      bool
}

// NewFieldRenderer creates a renderer for a w×h field.
func NewFieldRenderer(screenW, screenH int32, fieldW, fieldH int, background components.Color) *FieldRenderer {
	return &FieldRenderer{
		texW:       fieldW,
		texH:       fieldH,
		pixels:     make([]color.RGBA, fieldW*fieldH),
		background: RGBA(background),
		screenW:    float32(screenW),
		screenH:    float32(screenH),
	}
}

// Init creates the texture (must be called after raylib window is created).
func (r *FieldRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(r.texW, r.texH, r.background)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.SetTextureWrap(r.tex, rl.WrapRepeat)
	rl.UnloadImage(img)

	r.initialized = true
}

// Resize updates screen dimensions.
func (r *FieldRenderer) Resize(w, h float32) {
	r.screenW = w
	r.screenH = h
}

// Update uploads the current sprites to the texture.
func (r *FieldRenderer) Update(sprites []game.Sprite) {
	if !r.initialized {
		r.Init()
	}
	Rasterize(r.pixels, r.texW, sprites, r.background)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the visible part of the field to the whole window.
func (r *FieldRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	x, y, w, h := cam.Source()
	srcRect := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: r.screenW, Height: r.screenH}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *FieldRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}

// Rasterize fills pixels, a row-major image of the given width, with the
// background and then one opaque pixel per sprite.
func Rasterize(pixels []color.RGBA, width int, sprites []game.Sprite, background color.RGBA) {
	for i := range pixels {
		pixels[i] = background
	}
	for _, s := range sprites {
		pixels[s.Y*width+s.X] = RGBA(s.Color)
	}
}

// RGBA converts a 0xRRGGBB cell color to an opaque raylib color.
func RGBA(c components.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
