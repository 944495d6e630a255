package terminal

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"dualrain/internal/surface"
)

// ANSI drives a terminal with escape sequences written through termenv.
// Colors are downsampled to the output's color profile.
type ANSI struct {
	out    *termenv.Output
	fd     int
	events chan Event
	done   chan struct{}
	once   sync.Once

	prevCols, prevRows int
	colors             map[surface.Color]string // Cached SGR sequences
}

// NewANSI creates an ANSI terminal writing to w. fd is the file descriptor
// used for size queries and the tty check.
func NewANSI(w io.Writer, fd int, opts ...termenv.OutputOption) *ANSI {
	return &ANSI{
		out:    termenv.NewOutput(w, opts...),
		fd:     fd,
		events: make(chan Event, 1),
		done:   make(chan struct{}),
		colors: make(map[surface.Color]string),
	}
}

// Setup switches to the alternate screen, hides the cursor, and starts
// listening for window size changes.
func (t *ANSI) Setup() error {
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}
	t.out.AltScreen()
	t.out.HideCursor()
	t.out.ClearScreen()
	t.watchResize()
	log.Printf("ANSI terminal set up with %s color profile", t.out.Profile.Name())
	return nil
}

// Restore resets the terminal to its original state.
func (t *ANSI) Restore() {
	t.once.Do(func() { close(t.done) })
	t.out.Reset()
	t.out.ShowCursor()
	t.out.ExitAltScreen()
}

// Size returns the terminal's width and height in cells.
func (t *ANSI) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid terminal dimensions %dx%d", cols, rows)
	}
	return cols, rows, nil
}

// Events returns resize notifications.
func (t *ANSI) Events() <-chan Event { return t.events }

// notifyResize queries the current size and forwards it, replacing a
// pending notification that was not consumed yet.
func (t *ANSI) notifyResize() {
	cols, rows, err := t.Size()
	if err != nil {
		log.Printf("Ignoring resize: %v", err)
		return
	}
	ev := Event{Type: EventResize, Cols: cols, Rows: rows}
	select {
	case t.events <- ev:
	default:
		select {
		case <-t.events:
		default:
		}
		t.events <- ev
	}
}

// Present renders the raster, redrawing everything when its dimensions
// changed and only the dirty cells otherwise.
func (t *ANSI) Present(r *surface.Raster) error {
	cols, rows := r.Dims()
	var b strings.Builder
	if cols != t.prevCols || rows != t.prevRows {
		t.fullRender(&b, r)
		t.prevCols, t.prevRows = cols, rows
	} else {
		t.deltaRender(&b, r)
	}
	r.ClearDirty()
	if b.Len() == 0 {
		return nil
	}
	if _, err := t.out.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// sequence returns the SGR sequence selecting c as foreground color.
func (t *ANSI) sequence(c surface.Color) string {
	if seq, ok := t.colors[c]; ok {
		return seq
	}
	seq := ""
	if s := t.out.Color(c.Hex()).Sequence(false); s != "" {
		seq = termenv.CSI + s + "m"
	}
	t.colors[c] = seq
	return seq
}

// writeCell writes the glyph of c, switching color only when it differs from
// the current one.
func (t *ANSI) writeCell(b *strings.Builder, c surface.Cell, current *string) {
	if c.Rune == 0 {
		b.WriteByte(' ')
		return
	}
	if seq := t.sequence(c.Fg8()); seq != *current {
		b.WriteString(seq)
		*current = seq
	}
	b.WriteRune(c.Rune)
}

// fullRender draws the entire raster.
func (t *ANSI) fullRender(b *strings.Builder, r *surface.Raster) {
	cols, rows := r.Dims()
	// Estimate: 1 rune + up to 20 bytes for color codes per cell, plus newlines
	b.Grow(rows * (cols*21 + 2))
	b.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	fmt.Fprintf(b, termenv.CSI+termenv.EraseDisplaySeq, 2)
	current := ""
	for row := 0; row < rows; row++ {
		fmt.Fprintf(b, termenv.CSI+termenv.CursorPositionSeq, row+1, 1)
		for col := 0; col < cols; col++ {
			c := r.Cell(col, row)
			if c.Cont {
				continue
			}
			t.writeCell(b, c, &current)
		}
	}
	b.WriteString(termenv.CSI + termenv.ResetSeq + "m")
}

// deltaRender draws only cells changed since the last frame.
func (t *ANSI) deltaRender(b *strings.Builder, r *surface.Raster) {
	current := ""
	nextCol, nextRow := -1, -1
	r.EachDirty(func(col, row int, c surface.Cell) {
		if c.Cont {
			return
		}
		if col != nextCol || row != nextRow {
			fmt.Fprintf(b, termenv.CSI+termenv.CursorPositionSeq, row+1, col+1)
		}
		t.writeCell(b, c, &current)
		nextCol, nextRow = col+1, row
		if c.Wide {
			nextCol++
		}
	})
	if current != "" {
		b.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}
}
