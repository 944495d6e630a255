package terminal

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"dualrain/internal/surface"
)

// Tcell drives a terminal through a tcell.Screen. Ctrl-C and Esc are reported
// as EventQuit because the screen puts the terminal in raw mode.
type Tcell struct {
	screen tcell.Screen
	events chan Event
	styles map[surface.Color]tcell.Style
	full   bool
}

// NewTcell creates a Tcell terminal on the process's controlling terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewTcellWithScreen(screen), nil
}

// NewTcellWithScreen wraps an existing, uninitialized screen.
func NewTcellWithScreen(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen: screen,
		events: make(chan Event, 16),
		styles: make(map[surface.Color]tcell.Style),
		full:   true,
	}
}

// Setup initializes the screen and starts forwarding its events.
func (t *Tcell) Setup() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.HideCursor()
	t.screen.Clear()
	go t.pollEvents()
	log.Printf("tcell screen set up with %d colors", t.screen.Colors())
	return nil
}

// pollEvents forwards screen events until the screen is finalized.
func (t *Tcell) pollEvents() {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			cols, rows := ev.Size()
			t.send(Event{Type: EventResize, Cols: cols, Rows: rows})
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				t.send(Event{Type: EventQuit})
			}
		}
	}
}

// send forwards ev without blocking the poll loop once nobody listens. When
// the queue is full the oldest event is discarded, so the latest size is
// always delivered. A pending quit is kept since it ends the run anyway.
func (t *Tcell) send(ev Event) {
	for {
		select {
		case t.events <- ev:
			return
		default:
		}
		select {
		case old := <-t.events:
			if old.Type == EventQuit {
				t.events <- old
				log.Printf("Dropped terminal event %d behind pending quit", ev.Type)
				return
			}
			log.Printf("Replaced stale terminal event %d", old.Type)
		default:
		}
	}
}

// Restore finalizes the screen, returning the terminal to its original state.
func (t *Tcell) Restore() {
	t.screen.Fini()
}

// Size returns the screen dimensions in cells.
func (t *Tcell) Size() (cols, rows int, err error) {
	cols, rows = t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid terminal dimensions %dx%d", cols, rows)
	}
	return cols, rows, nil
}

// Events returns resize and quit notifications.
func (t *Tcell) Events() <-chan Event { return t.events }

func (t *Tcell) style(c surface.Color) tcell.Style {
	if st, ok := t.styles[c]; ok {
		return st
	}
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
		Background(tcell.ColorBlack)
	t.styles[c] = st
	return st
}

// Present copies the dirty cells of r to the screen and shows them.
func (t *Tcell) Present(r *surface.Raster) error {
	cols, rows := r.Dims()
	if sc, sr := t.screen.Size(); sc != cols || sr != rows {
		t.full = true
	}
	draw := func(col, row int, c surface.Cell) {
		if c.Cont {
			return
		}
		ch := c.Rune
		if ch == 0 {
			ch = ' '
		}
		t.screen.SetContent(col, row, ch, nil, t.style(c.Fg8()))
	}
	if t.full {
		t.screen.Clear()
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				draw(col, row, r.Cell(col, row))
			}
		}
		t.full = false
	} else {
		r.EachDirty(draw)
	}
	r.ClearDirty()
	t.screen.Show()
	return nil
}
