package surface

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// visibleDistance is the RGB distance below which a glyph can no longer be
// told apart from its background and is cleared.
const visibleDistance = 0.02

// Cell is a single terminal cell of the raster.
type Cell struct {
	Rune rune           // Glyph, 0 for an empty cell
	Fg   colorful.Color // Glyph color
	Bg   colorful.Color // Background color
	Wide bool           // Rune occupies this and the next cell
	Cont bool           // Continuation of a wide rune in the previous cell
}

// Fg8 returns the quantized foreground color.
func (c Cell) Fg8() Color { return FromColorful(c.Fg) }

// Bg8 returns the quantized background color.
func (c Cell) Bg8() Color { return FromColorful(c.Bg) }

// Raster is a cell grid addressed in pixels through its Metrics.
// Colors are kept in floating point so that repeated translucent fills
// converge to the fill color instead of stalling on 8-bit rounding.
type Raster struct {
	metrics Metrics
	cols    int
	rows    int
	cells   []Cell
	dirty   []bool
}

// NewRaster creates a cleared raster of cols x rows cells.
func NewRaster(m Metrics, cols, rows int) *Raster {
	r := &Raster{metrics: m}
	r.resizeCells(cols, rows)
	return r
}

// Metrics returns the cell metrics used for pixel mapping.
func (r *Raster) Metrics() Metrics { return r.metrics }

// Dims returns the grid dimensions in cells.
func (r *Raster) Dims() (cols, rows int) { return r.cols, r.rows }

// Size implements Surface.
func (r *Raster) Size() Size { return r.metrics.Viewport(r.cols, r.rows) }

// Resize implements Resizable. The raster is cleared and fully dirty afterwards.
func (r *Raster) Resize(size Size) {
	cols, rows := r.metrics.Cells(size)
	r.resizeCells(cols, rows)
}

func (r *Raster) resizeCells(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	n := cols * rows
	if cap(r.cells) < n {
		r.cells = make([]Cell, n)
		r.dirty = make([]bool, n)
	} else {
		r.cells = r.cells[:n]
		r.dirty = r.dirty[:n]
	}
	r.cols, r.rows = cols, rows
	r.Clear()
}

// Clear empties every cell and marks the whole raster dirty.
func (r *Raster) Clear() {
	for i := range r.cells {
		r.cells[i] = Cell{}
		r.dirty[i] = true
	}
}

// Cell returns the cell at col, row. Out of range coordinates yield an empty cell.
func (r *Raster) Cell(col, row int) Cell {
	if !r.inBounds(col, row) {
		return Cell{}
	}
	return r.cells[row*r.cols+col]
}

func (r *Raster) inBounds(col, row int) bool {
	return col >= 0 && col < r.cols && row >= 0 && row < r.rows
}

// FillRect implements Surface by compositing c over every cell the
// rectangle touches with the given opacity.
func (r *Raster) FillRect(x, y, w, h float64, c Color, alpha float64) {
	alpha = clamp(alpha, 0, 1)
	if alpha == 0 || w <= 0 || h <= 0 {
		return
	}
	c0 := max(r.metrics.column(x), 0)
	c1 := min(int(math.Ceil((x+w)/r.metrics.CellWidth)), r.cols)
	r0 := max(int(math.Floor(y/r.metrics.CellHeight)), 0)
	r1 := min(int(math.Ceil((y+h)/r.metrics.CellHeight)), r.rows)
	src := c.Colorful()

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			idx := row*r.cols + col
			cell := &r.cells[idx]
			before := *cell
			cell.Bg = cell.Bg.BlendRgb(src, alpha)
			if cell.Rune != 0 {
				cell.Fg = cell.Fg.BlendRgb(src, alpha)
				if cell.Fg.DistanceRgb(cell.Bg) < visibleDistance {
					r.clearGlyph(col, row)
				}
			}
			if quantizedChanged(before, *cell) {
				r.dirty[idx] = true
			}
		}
	}
}

// DrawText implements Surface. Each rune advances by its terminal width;
// text running past the right edge is cut. fontSize is fixed by the
// terminal font and only affects pixel mapping through Metrics.
func (r *Raster) DrawText(x, y float64, text string, c Color, fontSize float64) {
	row := r.metrics.baselineRow(y)
	if row < 0 || row >= r.rows {
		return
	}
	fg := c.Colorful()
	col := r.metrics.column(x)
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.cols {
			return
		}
		if col >= 0 {
			r.setGlyph(col, row, ch, fg, w == 2)
		}
		col += w
	}
}

func (r *Raster) setGlyph(col, row int, ch rune, fg colorful.Color, wide bool) {
	r.clearGlyph(col, row)
	if wide {
		r.clearGlyph(col+1, row)
	}
	idx := row*r.cols + col
	cell := &r.cells[idx]
	cell.Rune = ch
	cell.Fg = fg
	cell.Wide = wide
	r.dirty[idx] = true
	if wide {
		next := &r.cells[idx+1]
		next.Cont = true
		next.Bg = cell.Bg
		r.dirty[idx+1] = true
	}
}

// clearGlyph empties the glyph occupying col, row, including the other half
// of a wide rune. Backgrounds are preserved.
func (r *Raster) clearGlyph(col, row int) {
	if !r.inBounds(col, row) {
		return
	}
	idx := row*r.cols + col
	cell := &r.cells[idx]
	switch {
	case cell.Cont && col > 0:
		r.clearGlyph(col-1, row)
		return
	case cell.Wide && col+1 < r.cols:
		next := &r.cells[idx+1]
		next.Cont = false
		r.dirty[idx+1] = true
	}
	if cell.Rune != 0 || cell.Wide {
		r.dirty[idx] = true
	}
	cell.Rune = 0
	cell.Wide = false
	cell.Fg = colorful.Color{}
}

func quantizedChanged(a, b Cell) bool {
	return a.Rune != b.Rune || a.Fg8() != b.Fg8() || a.Bg8() != b.Bg8()
}

// ===== DIRTY TRACKING =====

// Dirty reports whether the cell changed since the last ClearDirty.
func (r *Raster) Dirty(col, row int) bool {
	if !r.inBounds(col, row) {
		return false
	}
	return r.dirty[row*r.cols+col]
}

// EachDirty calls fn for every dirty cell in row-major order.
func (r *Raster) EachDirty(fn func(col, row int, c Cell)) {
	for i, d := range r.dirty {
		if d {
			fn(i%r.cols, i/r.cols, r.cells[i])
		}
	}
}

// ClearDirty marks every cell as presented.
func (r *Raster) ClearDirty() {
	for i := range r.dirty {
		r.dirty[i] = false
	}
}

// MarkAllDirty forces the next presentation to redraw every cell.
func (r *Raster) MarkAllDirty() {
	for i := range r.dirty {
		r.dirty[i] = true
	}
}
