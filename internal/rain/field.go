package rain

import (
	"log"

	"dualrain/internal/surface"
)

// Orientation selects the edge a field's columns start from.
type Orientation int

const (
	Top    Orientation = iota // Columns move down from the top edge
	Bottom                    // Columns move up from the bottom edge
)

func (o Orientation) String() string {
	if o == Bottom {
		return "bottom"
	}
	return "top"
}

// Column is one horizontal slot of a field and its simulation state.
type Column struct {
	Position       float64       // Progress from the origin edge, in glyph units
	Word           string        // Currently displayed word
	Color          surface.Color // Never the background color
	FallSpeed      float64
	FadingStrength float64
	FadingSpeed    float64
}

// Field is the live set of columns of one stream.
type Field struct {
	cfg         *Config
	orientation Orientation
	rng         Random
	viewport    surface.Size
	columns     []Column
}

// NewField creates an empty field; call Initialize before rendering.
func NewField(cfg *Config, o Orientation, rng Random) *Field {
	return &Field{cfg: cfg, orientation: o, rng: rng}
}

// Config returns the field's configuration.
func (f *Field) Config() *Config { return f.cfg }

// Orientation returns the edge the field starts from.
func (f *Field) Orientation() Orientation { return f.orientation }

// Viewport returns the size the field was last initialized for.
func (f *Field) Viewport() surface.Size { return f.viewport }

// Len returns the number of columns.
func (f *Field) Len() int { return len(f.columns) }

// Columns returns a copy of the column states.
func (f *Field) Columns() []Column {
	return append([]Column(nil), f.columns...)
}

// Initialize discards all column state and rebuilds one column per whole
// glyph that fits into the viewport width.
func (f *Field) Initialize(viewport surface.Size) {
	f.viewport = viewport
	n := max(int(viewport.Width/f.cfg.GlyphSize), 0)
	if cap(f.columns) < n {
		f.columns = make([]Column, n)
	} else {
		f.columns = f.columns[:n]
	}
	for i := range f.columns {
		f.reset(&f.columns[i])
	}
	log.Printf("Initialized %s field with %d columns for %.0fx%.0f", f.orientation, n, viewport.Width, viewport.Height)
}

// halfRange is the centerline distance in glyph units.
func (f *Field) halfRange() float64 {
	return f.viewport.Height / 2 / f.cfg.GlyphSize
}

// reset re-rolls every parameter of c. The random draws happen in a fixed
// order: position, word, color, fall speed, fading strength, fading speed.
func (f *Field) reset(c *Column) {
	c.Position = 0
	if h := f.halfRange(); h > 0 {
		c.Position = f.rng.Float64() * h
	}
	c.Word = f.cfg.Words[f.rng.IntN(len(f.cfg.Words))]
	if f.cfg.Tint != nil {
		c.Color = tintedColor(f.rng, *f.cfg.Tint)
	} else {
		c.Color = RandomColor(f.rng)
	}
	v := f.cfg.Variation
	c.FallSpeed = Vary(f.rng, f.cfg.FallSpeed, v.FallSpeed)
	c.FadingStrength = Vary(f.rng, f.cfg.FadingStrength, v.FadingStrength)
	c.FadingSpeed = Vary(f.rng, f.cfg.FadingSpeed, v.FadingSpeed)
}

// PixelY returns the text baseline of a column at position p.
func (f *Field) PixelY(p float64) float64 {
	y := p * f.cfg.GlyphSize
	if f.orientation == Bottom {
		return f.viewport.Height - y
	}
	return y
}

// Render fades the whole surface with the field's weakest fading strength
// and then draws every column's word at its current position.
func (f *Field) Render(s surface.Surface) {
	if len(f.columns) == 0 {
		return
	}
	alpha := f.columns[0].FadingStrength
	for _, c := range f.columns[1:] {
		alpha = min(alpha, c.FadingStrength)
	}
	size := s.Size()
	s.FillRect(0, 0, size.Width, size.Height, surface.Black, alpha)

	g := f.cfg.GlyphSize
	for i, c := range f.columns {
		s.DrawText(float64(i)*g, f.PixelY(c.Position), c.Word, c.Color, g)
	}
}

// Advance moves every column by its fall speed and resets the columns that
// crossed the centerline.
func (f *Field) Advance() {
	half := f.viewport.Height / 2
	for i := range f.columns {
		c := &f.columns[i]
		c.Position += c.FallSpeed
		if c.Position*f.cfg.GlyphSize > half {
			f.reset(c)
		}
	}
}

// Step renders the current positions and then advances.
func (f *Field) Step(s surface.Surface) {
	f.Render(s)
	f.Advance()
}
