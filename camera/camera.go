// Package camera maps the toroidal field onto the window.
package camera

import "math"

// Camera is a pan/zoom view of the field. Zoom is screen pixels per field
// cell. The field wraps, so the view never runs out of field to show.
type Camera struct {
	// Center of the view in field cells
	X, Y float32

	Zoom float32

	ViewportW, ViewportH float32
	FieldW, FieldH       float32

	// MinZoom fits the whole field in the viewport.
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the field, zoomed to fit it.
func New(viewportW, viewportH, fieldW, fieldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		FieldW:    fieldW,
		FieldH:    fieldH,
		MaxZoom:   32,
	}
	c.MinZoom = c.fitZoom()
	c.Reset()
	return c
}

func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/c.FieldW, c.ViewportH/c.FieldH)
}

// WorldToScreen converts field coordinates to screen coordinates, taking the
// shortest way around the torus.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := toroidalDelta(wx, c.X, c.FieldW)
	dy := toroidalDelta(wy, c.Y, c.FieldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen coordinates to wrapped field coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom
	return mod(c.X+dx, c.FieldW), mod(c.Y+dy, c.FieldH)
}

// ScreenToCell returns the grid cell under a screen point.
func (c *Camera) ScreenToCell(sx, sy float32) (x, y int) {
	wx, wy := c.ScreenToWorld(sx, sy)
	x, y = int(wx), int(wy)
	// Rounding can land exactly on the far edge.
	if x >= int(c.FieldW) {
		x = 0
	}
	if y >= int(c.FieldH) {
		y = 0
	}
	return x, y
}

// Source returns the field rectangle covered by the viewport. It may extend
// past the field edges; a repeating texture fills the wrap.
func (c *Camera) Source() (x, y, w, h float32) {
	w = c.ViewportW / c.Zoom
	h = c.ViewportH / c.Zoom
	return c.X - w/2, c.Y - h/2, w, h
}

// Resize updates viewport dimensions and recalculates the zoom floor.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mod(c.X+dx/c.Zoom, c.FieldW)
	c.Y = mod(c.Y+dy/c.Zoom, c.FieldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the field point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = mod(c.X+toroidalDelta(wx, nx, c.FieldW), c.FieldW)
	c.Y = mod(c.Y+toroidalDelta(wy, ny, c.FieldH), c.FieldH)
}

// Reset centers the camera and fits the whole field.
func (c *Camera) Reset() {
	c.X = c.FieldW / 2
	c.Y = c.FieldH / 2
	c.Zoom = c.MinZoom
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
