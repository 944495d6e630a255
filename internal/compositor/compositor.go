// Package compositor drives the top and bottom rain fields on one shared
// drawing surface.
package compositor

import (
	"log"
	"sync"

	"dualrain/internal/rain"
	"dualrain/internal/surface"
)

// Compositor owns both rain fields and the surface they draw onto.
// Tick and OnResize are mutually exclusive.
type Compositor struct {
	mu      sync.Mutex
	surface surface.Surface
	top     *rain.Field
	bottom  *rain.Field
	ticks   uint64
}

// New creates a Compositor and initializes both fields for the surface's
// current size.
func New(s surface.Surface, top, bottom *rain.Field) *Compositor {
	c := &Compositor{surface: s, top: top, bottom: bottom}
	c.initialize(s.Size())
	return c
}

func (c *Compositor) initialize(size surface.Size) {
	c.top.Initialize(size)
	c.bottom.Initialize(size)
}

// Tick renders and advances the top field, then the bottom field.
func (c *Compositor) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.top.Step(c.surface)
	c.bottom.Step(c.surface)
	c.ticks++
}

// OnResize re-measures the surface for the new viewport and rebuilds both
// fields from scratch.
func (c *Compositor) OnResize(size surface.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.surface.(surface.Resizable); ok {
		r.Resize(size)
	}
	measured := c.surface.Size()
	c.initialize(measured)
	log.Printf("Resized to %.0fx%.0f px after %d ticks", measured.Width, measured.Height, c.ticks)
}

// Snapshot returns copies of the top and bottom column states.
func (c *Compositor) Snapshot() (top, bottom []rain.Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.top.Columns(), c.bottom.Columns()
}

// Ticks returns the number of completed ticks.
func (c *Compositor) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}
