package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"dualrain/internal/compositor"
	"dualrain/internal/rain"
	"dualrain/internal/surface"
	"dualrain/internal/terminal"
)

// fakeTerminal records presentations and lets tests inject events.
type fakeTerminal struct {
	mu         sync.Mutex
	cols, rows int
	setupErr   error
	presentErr error
	events     chan terminal.Event
	presents   int
	lastDims   [2]int
	restored   bool
	onPresent  func(n, cols, rows int)
}

func newFakeTerminal(cols, rows int) *fakeTerminal {
	return &fakeTerminal{cols: cols, rows: rows, events: make(chan terminal.Event, 4)}
}

func (f *fakeTerminal) Setup() error { return f.setupErr }

func (f *fakeTerminal) Restore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored = true
}

func (f *fakeTerminal) Size() (int, int, error) { return f.cols, f.rows, nil }

func (f *fakeTerminal) Events() <-chan terminal.Event { return f.events }

func (f *fakeTerminal) Present(r *surface.Raster) error {
	f.mu.Lock()
	f.presents++
	n := f.presents
	cols, rows := r.Dims()
	f.lastDims = [2]int{cols, rows}
	hook := f.onPresent
	f.mu.Unlock()
	r.ClearDirty()
	if hook != nil {
		hook(n, cols, rows)
	}
	return f.presentErr
}

func newRunner(t *testing.T, term terminal.Terminal) (*Runner, *compositor.Compositor) {
	t.Helper()
	cfg, err := rain.NewConfig(rain.Config{
		Words:          []string{"follow", "the", "white", "rabbit"},
		GlyphSize:      16,
		FallSpeed:      1,
		FadingStrength: 0.05,
		FadingSpeed:    0.05,
		Variation:      rain.Variation{FallSpeed: 0.5, FadingStrength: 0.5, FadingSpeed: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	raster := surface.NewRaster(surface.DefaultMetrics, 0, 0)
	comp := compositor.New(raster,
		rain.NewField(cfg, rain.Top, rng),
		rain.NewField(cfg, rain.Bottom, rng))
	return New(term, raster, comp, time.Millisecond), comp
}

func TestRunTicksUntilCanceled(t *testing.T) {
	term := newFakeTerminal(40, 20)
	r, comp := newRunner(t, term)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	term.onPresent = func(n, _, _ int) {
		if n == 5 {
			cancel()
		}
	}

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if comp.Ticks() < 5 {
		t.Errorf("expected at least 5 ticks, got %d", comp.Ticks())
	}
	if !term.restored {
		t.Error("terminal not restored")
	}
	if term.lastDims != [2]int{40, 20} {
		t.Errorf("raster dims %v, want 40x20", term.lastDims)
	}
	top, _ := comp.Snapshot()
	if len(top) != 20 {
		t.Errorf("expected 20 columns for a 40-cell terminal, got %d", len(top))
	}
}

func TestRunHandlesResizeAndQuit(t *testing.T) {
	term := newFakeTerminal(40, 20)
	r, comp := newRunner(t, term)

	quitSent := false
	term.onPresent = func(n, cols, rows int) {
		switch {
		case n == 2:
			term.events <- terminal.Event{Type: terminal.EventResize, Cols: 80, Rows: 30}
		case cols == 80 && rows == 30 && !quitSent:
			quitSent = true
			term.events <- terminal.Event{Type: terminal.EventQuit}
		}
	}

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on quit")
	}

	top, bottom := comp.Snapshot()
	if len(top) != 40 || len(bottom) != 40 {
		t.Errorf("expected 40 columns after resize, got %d/%d", len(top), len(bottom))
	}
	if term.lastDims != [2]int{80, 30} {
		t.Errorf("raster dims %v, want 80x30", term.lastDims)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	setupFail := newFakeTerminal(10, 10)
	setupFail.setupErr = terminal.ErrNotTerminal
	r, _ := newRunner(t, setupFail)
	if err := r.Run(context.Background()); !errors.Is(err, terminal.ErrNotTerminal) {
		t.Errorf("expected setup error, got %v", err)
	}

	writeErr := errors.New("broken pipe")
	presentFail := newFakeTerminal(10, 10)
	presentFail.presentErr = writeErr
	r, _ = newRunner(t, presentFail)
	if err := r.Run(context.Background()); !errors.Is(err, writeErr) {
		t.Errorf("expected present error, got %v", err)
	}
	if !presentFail.restored {
		t.Error("terminal not restored after present error")
	}
}
