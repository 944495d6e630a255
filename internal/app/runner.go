// Package app runs the animation loop: a fixed-interval scheduler driving
// the compositor and resize notifications from the terminal.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"dualrain/internal/compositor"
	"dualrain/internal/surface"
	"dualrain/internal/terminal"
)

// Runner holds the components of the dual rain animation.
type Runner struct {
	terminal   terminal.Terminal
	raster     *surface.Raster
	compositor *compositor.Compositor
	interval   time.Duration
}

// New creates a Runner. The compositor must draw onto raster.
func New(term terminal.Terminal, raster *surface.Raster, comp *compositor.Compositor, interval time.Duration) *Runner {
	return &Runner{
		terminal:   term,
		raster:     raster,
		compositor: comp,
		interval:   interval,
	}
}

// Run sets up the terminal and animates until ctx is done or the terminal
// reports a quit. The terminal is restored before returning.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.terminal.Setup(); err != nil {
		return fmt.Errorf("failed to set up terminal: %w", err)
	}
	defer r.terminal.Restore()

	cols, rows, err := r.terminal.Size()
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	r.resize(cols, rows)

	tick := time.NewTicker(r.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Stopping after %d ticks: %v", r.compositor.Ticks(), ctx.Err())
			return nil
		case ev := <-r.terminal.Events():
			switch ev.Type {
			case terminal.EventResize:
				r.resize(ev.Cols, ev.Rows)
			case terminal.EventQuit:
				log.Printf("Quit requested after %d ticks", r.compositor.Ticks())
				return nil
			}
		case <-tick.C:
			r.compositor.Tick()
			if err := r.terminal.Present(r.raster); err != nil {
				return fmt.Errorf("failed to present frame: %w", err)
			}
		}
	}
}

// resize re-derives the surface and both fields for a cols x rows terminal.
func (r *Runner) resize(cols, rows int) {
	size := r.raster.Metrics().Viewport(cols, rows)
	r.compositor.OnResize(size)
	log.Printf("Terminal resized to %dx%d cells", cols, rows)
}
