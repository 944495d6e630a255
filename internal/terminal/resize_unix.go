//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// watchResize forwards SIGWINCH as resize events until Restore.
func (t *ANSI) watchResize() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-t.done:
				return
			case <-sigCh:
				t.notifyResize()
			}
		}
	}()
}
