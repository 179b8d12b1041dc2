package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = min(max(value, 0), 1)
	barX, barW := r.barSpan(x, width)

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*value), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.3f", value), barX+barW+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// DrawCenteredBar draws a bar growing left or right from the middle of rng.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	barX, barW := r.barSpan(x, width)
	mid := (rng.Min + rng.Max) / 2
	half := (rng.Max - rng.Min) / 2

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barW/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Gray)

	frac := min(max((value-mid)/half, -1), 1)
	fill := int32(float32(barW/2) * frac)
	if fill >= 0 {
		rl.DrawRectangle(centerX, y+2, fill, r.Theme.BarHeight, r.Theme.BarFillPositive)
	} else {
		rl.DrawRectangle(centerX+fill, y+2, -fill, r.Theme.BarHeight, r.Theme.BarFillNegative)
	}
	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barW+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// DrawColorSwatch draws a labelled color square.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, color)
	rl.DrawText(fmt.Sprintf("#%02x%02x%02x", color.R, color.G, color.B),
		x+r.Theme.LabelWidth+18, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// barSpan returns the bar origin and width, leaving room for the value text.
func (r *Renderer) barSpan(x, width int32) (int32, int32) {
	return x + r.Theme.LabelWidth, width - r.Theme.LabelWidth - 50
}

// DrawField renders one field of subject according to its descriptor.
func DrawField[T any](r *Renderer, x, y int32, fd FieldDescriptor[T], subject T, width int32) int32 {
	value := func() float32 {
		if fd.Getter == nil {
			return 0
		}
		return fd.Getter(subject)
	}

	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter(subject)
		} else {
			text = fmt.Sprintf(fd.Format, value())
		}
		return r.DrawLabelValue(x, y, fd.Label, text)
	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, value(), width)
	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, value(), fd.Range, width)
	case WidgetColorSwatch:
		return r.DrawColorSwatch(x, y, fd.Label, fd.ColorGetter(subject))
	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)
	case WidgetSpacer:
		return y + 6
	}
	return y
}

// DrawSection renders a section header and its fields.
func DrawSection[T any](r *Renderer, x, y int32, sd SectionDescriptor[T], subject T, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(subject) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		y = DrawField(r, x, y, fd, subject, width)
	}
	return y + 4
}

// SectionHeight returns the height DrawSection will use.
func SectionHeight[T any](r *Renderer, sd SectionDescriptor[T], subject T) int32 {
	if sd.Visible != nil && !sd.Visible(subject) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Widget == WidgetSpacer {
			h += 6
		} else {
			h += r.Theme.LineHeight
		}
	}
	return h
}
