package systems

import "github.com/pthm-cable/mitosis/components"

// Field is the toroidal occupancy grid. Each grid cell holds the handle of
// the cell standing on it, or the zero handle.
type Field struct {
	width  int
	height int
	cells  []Handle
}

// NewField creates an empty width x height field.
func NewField(width, height int) *Field {
	return &Field{
		width:  width,
		height: height,
		cells:  make([]Handle, width*height),
	}
}

// Width returns the field width in cells.
func (f *Field) Width() int { return f.width }

// Height returns the field height in cells.
func (f *Field) Height() int { return f.height }

// Area returns the number of grid cells.
func (f *Field) Area() int { return len(f.cells) }

// Wrap reduces any coordinate pair onto the torus.
func (f *Field) Wrap(x, y int) components.Position {
	return components.Position{X: Wrap(x, f.width), Y: Wrap(y, f.height)}
}

// Step returns the position one unit along d from p.
func (f *Field) Step(p components.Position, d components.Direction) components.Position {
	return f.Wrap(p.X+int(d.DX), p.Y+int(d.DY))
}

// Occupant returns the handle at (x, y) after wrapping.
func (f *Field) Occupant(x, y int) (Handle, bool) {
	h := f.cells[f.index(x, y)]
	return h, !h.IsZero()
}

// At returns the handle at p, which must already be wrapped.
func (f *Field) At(p components.Position) Handle {
	return f.cells[p.Y*f.width+p.X]
}

// Place writes h at p, overwriting any previous occupant.
func (f *Field) Place(h Handle, p components.Position) {
	f.cells[p.Y*f.width+p.X] = h
}

// Clear empties p.
func (f *Field) Clear(p components.Position) {
	f.cells[p.Y*f.width+p.X] = Handle{}
}

// Count returns the number of occupied grid cells.
func (f *Field) Count() int {
	n := 0
	for _, h := range f.cells {
		if !h.IsZero() {
			n++
		}
	}
	return n
}

// Reset empties every grid cell.
func (f *Field) Reset() {
	clear(f.cells)
}

func (f *Field) index(x, y int) int {
	return Wrap(y, f.height)*f.width + Wrap(x, f.width)
}
