package surface

import "testing"

func TestMetricsMapping(t *testing.T) {
	m := DefaultMetrics
	if got := m.Viewport(100, 40); got != (Size{Width: 800, Height: 640}) {
		t.Errorf("Viewport(100, 40) = %+v", got)
	}
	cols, rows := m.Cells(Size{Width: 805, Height: 650})
	if cols != 100 || rows != 40 {
		t.Errorf("Cells = %dx%d, want 100x40", cols, rows)
	}

	tests := []struct {
		y    float64
		want int
	}{
		{0, -1},
		{1, 0},
		{16, 0},
		{17, 1},
		{320, 19},
	}
	for _, tt := range tests {
		if got := m.baselineRow(tt.y); got != tt.want {
			t.Errorf("baselineRow(%g) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestDrawTextPlacesRunes(t *testing.T) {
	r := NewRaster(DefaultMetrics, 10, 4)
	green := Color{G: 255}
	r.DrawText(16, 32, "abc", green, 16)

	for i, want := range "abc" {
		c := r.Cell(2+i, 1)
		if c.Rune != want {
			t.Errorf("cell %d rune = %q, want %q", 2+i, c.Rune, want)
		}
		if c.Fg8() != green {
			t.Errorf("cell %d color = %v, want %v", 2+i, c.Fg8(), green)
		}
	}
}

func TestDrawTextClipsAtEdges(t *testing.T) {
	r := NewRaster(DefaultMetrics, 4, 2)
	r.DrawText(16, 16, "overflow", Color{R: 255}, 16)
	if r.Cell(2, 0).Rune != 'o' || r.Cell(3, 0).Rune != 'v' {
		t.Errorf("visible part not drawn: %q %q", r.Cell(2, 0).Rune, r.Cell(3, 0).Rune)
	}

	r.Clear()
	r.DrawText(0, 0, "above", Color{R: 255}, 16)
	r.DrawText(0, 48, "below", Color{R: 255}, 16)
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if r.Cell(col, row).Rune != 0 {
				t.Errorf("out of range text drew at %d,%d", col, row)
			}
		}
	}
}

func TestDrawTextWideRunes(t *testing.T) {
	r := NewRaster(DefaultMetrics, 6, 1)
	r.DrawText(0, 16, "日本", Color{B: 255}, 16)

	if c := r.Cell(0, 0); c.Rune != '日' || !c.Wide {
		t.Errorf("cell 0 = %+v, want wide 日", c)
	}
	if c := r.Cell(1, 0); !c.Cont {
		t.Errorf("cell 1 should continue the wide rune")
	}
	if c := r.Cell(2, 0); c.Rune != '本' {
		t.Errorf("cell 2 rune = %q", c.Rune)
	}

	// Overwriting the continuation clears the wide leader.
	r.DrawText(8, 16, "x", Color{B: 255}, 16)
	if c := r.Cell(0, 0); c.Rune != 0 || c.Wide {
		t.Errorf("wide leader not cleared: %+v", c)
	}
	if c := r.Cell(1, 0); c.Rune != 'x' || c.Cont {
		t.Errorf("cell 1 = %+v, want plain x", c)
	}
}

func TestFillRectFadesToClear(t *testing.T) {
	r := NewRaster(DefaultMetrics, 2, 1)
	r.DrawText(0, 16, "a", Color{R: 255, G: 255, B: 255}, 16)

	r.FillRect(0, 0, 16, 16, Black, 0.5)
	if got := r.Cell(0, 0).Fg8(); got.R > 128 || got.R < 127 {
		t.Errorf("half fade produced %v", got)
	}

	for i := 0; i < 200 && r.Cell(0, 0).Rune != 0; i++ {
		r.FillRect(0, 0, 16, 16, Black, 0.05)
	}
	if r.Cell(0, 0).Rune != 0 {
		t.Error("glyph never faded out")
	}
}

func TestFillRectAlphaBounds(t *testing.T) {
	r := NewRaster(DefaultMetrics, 1, 1)
	r.DrawText(0, 16, "a", Color{R: 200}, 16)

	r.FillRect(0, 0, 8, 16, Black, 0)
	if r.Cell(0, 0).Fg8() != (Color{R: 200}) {
		t.Error("zero alpha changed the cell")
	}
	r.FillRect(0, 0, 8, 16, Black, 7)
	if r.Cell(0, 0).Rune != 0 {
		t.Error("alpha above one should fully cover the glyph")
	}
}

func TestDirtyTracking(t *testing.T) {
	r := NewRaster(DefaultMetrics, 4, 2)
	count := func() int {
		n := 0
		r.EachDirty(func(int, int, Cell) { n++ })
		return n
	}
	if count() != 8 {
		t.Fatalf("new raster should be fully dirty")
	}
	r.ClearDirty()
	r.DrawText(8, 32, "z", Color{G: 10}, 16)
	if count() != 1 || !r.Dirty(1, 1) {
		t.Errorf("expected only (1,1) dirty, got %d", count())
	}

	r.ClearDirty()
	r.FillRect(0, 0, 32, 32, Black, 0.001)
	if r.Dirty(0, 0) {
		t.Error("fill over an empty cell should not dirty it")
	}

	r.Resize(Size{Width: 24, Height: 16})
	cols, rows := r.Dims()
	if cols != 3 || rows != 1 || count() != 3 {
		t.Errorf("resize: %dx%d with %d dirty", cols, rows, count())
	}
}

func TestColorHelpers(t *testing.T) {
	c, err := ParseHex("#00ff80")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Color{R: 0, G: 255, B: 128}) {
		t.Errorf("ParseHex = %v", c)
	}
	if c.Hex() != "#00ff80" {
		t.Errorf("Hex = %s", c.Hex())
	}
	if FromColorful(c.Colorful()) != c {
		t.Errorf("colorful conversion not stable for %v", c)
	}
	if _, err := ParseHex("green"); err == nil {
		t.Error("expected error for non-hex color")
	}
	if got := c.Dim(0.5); got != (Color{R: 0, G: 127, B: 64}) {
		t.Errorf("Dim(0.5) = %v", got)
	}
}
