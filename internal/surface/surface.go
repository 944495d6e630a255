// Package surface defines the drawing surface the rain is rendered onto and
// a cell raster implementation of it for terminal output.
package surface

import "math"

// Size is a viewport extent in pixels.
type Size struct {
	Width, Height float64
}

// Surface is a 2D drawing target addressed in pixels.
type Surface interface {
	// Size returns the current pixel extent of the surface.
	Size() Size
	// FillRect composites c over the rectangle with the given opacity.
	FillRect(x, y, w, h float64, c Color, alpha float64)
	// DrawText draws text in a monospace font; y is the text baseline.
	DrawText(x, y float64, text string, c Color, fontSize float64)
}

// Resizable is a Surface that can be re-measured for a new viewport.
type Resizable interface {
	Surface
	Resize(size Size)
}

// Metrics describes the pixel extent of a single terminal cell.
type Metrics struct {
	CellWidth, CellHeight float64
}

// DefaultMetrics matches a common 8x16 terminal font.
var DefaultMetrics = Metrics{CellWidth: 8, CellHeight: 16}

// Viewport returns the pixel size of a cols x rows cell grid.
func (m Metrics) Viewport(cols, rows int) Size {
	return Size{
		Width:  float64(cols) * m.CellWidth,
		Height: float64(rows) * m.CellHeight,
	}
}

// Cells returns how many whole cells fit into size.
func (m Metrics) Cells(size Size) (cols, rows int) {
	cols = int(math.Floor(size.Width / m.CellWidth))
	rows = int(math.Floor(size.Height / m.CellHeight))
	return max(cols, 0), max(rows, 0)
}

// column maps a pixel x offset to a cell column.
func (m Metrics) column(x float64) int {
	return int(math.Floor(x / m.CellWidth))
}

// baselineRow maps a text baseline y offset to the cell row the glyph sits in.
func (m Metrics) baselineRow(y float64) int {
	return int(math.Ceil(y/m.CellHeight)) - 1
}
