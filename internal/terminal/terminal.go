// Package terminal presents a surface.Raster on a real terminal and reports
// resize and quit notifications.
package terminal

import (
	"errors"

	"dualrain/internal/surface"
)

// ErrNotTerminal is returned by Setup when the output is not a terminal.
var ErrNotTerminal = errors.New("output is not a terminal")

// EventType identifies a terminal notification.
type EventType int

const (
	EventResize EventType = iota // Terminal dimensions changed
	EventQuit                    // User asked to stop the animation
)

// Event is a notification delivered on Terminal.Events.
type Event struct {
	Type EventType
	Cols int // For EventResize
	Rows int // For EventResize
}

// Terminal defines operations for interacting with the terminal.
type Terminal interface {
	Setup() error                      // Initialize terminal settings
	Restore()                          // Restore terminal to original state
	Size() (cols, rows int, err error) // Get terminal dimensions in cells
	Present(r *surface.Raster) error   // Write the dirty cells of r
	Events() <-chan Event              // Resize and quit notifications
}
