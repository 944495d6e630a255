//go:build !unix

package terminal

import (
	"time"
)

// resizePollInterval is how often the size is polled where SIGWINCH is unavailable.
const resizePollInterval = 250 * time.Millisecond

// watchResize polls the terminal size until Restore.
func (t *ANSI) watchResize() {
	cols, rows, _ := t.Size()
	go func() {
		tick := time.NewTicker(resizePollInterval)
		defer tick.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tick.C:
				c, r, err := t.Size()
				if err == nil && (c != cols || r != rows) {
					cols, rows = c, r
					t.notifyResize()
				}
			}
		}
	}()
}
