package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"dualrain/internal/app"
	"dualrain/internal/compositor"
	"dualrain/internal/config"
	"dualrain/internal/rain"
	"dualrain/internal/surface"
	"dualrain/internal/terminal"
)

const (
	logDir      = "logs"
	logFileName = "dualrain.log"
)

// setupLogging sends log output to a file when debug is set and discards it
// otherwise, since the terminal belongs to the animation.
func setupLogging(debug bool) *os.File {
	log.SetFlags(log.Lshortfile | log.Ltime)
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "warning: cannot create log directory:", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: cannot open log file:", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	return f
}

// newTerminal creates the terminal backend selected by name. The ANSI
// backend draws to out.
func newTerminal(backend string, out *os.File) (terminal.Terminal, error) {
	switch backend {
	case config.BackendTcell:
		t, err := terminal.NewTcell()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return terminal.NewANSI(out, int(out.Fd())), nil
	}
}

func run(cfg *config.Config, out *os.File) error {
	term, err := newTerminal(cfg.Backend, out)
	if err != nil {
		return fmt.Errorf("cannot open terminal: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>32|1))
	raster := surface.NewRaster(cfg.Metrics, 0, 0)
	comp := compositor.New(raster,
		rain.NewField(cfg.Top, rain.Top, rng),
		rain.NewField(cfg.Bottom, rain.Bottom, rng))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting %s backend at %d fps", cfg.Backend, cfg.FPS)
	return app.New(term, raster, comp, cfg.Interval()).Run(ctx)
}

// realMain runs the program and returns its exit code, so deferred cleanup
// completes before os.Exit.
func realMain(args []string, stdout, stderr *os.File) int {
	cfg, err := config.NewParser(config.DefaultConfigData, stdout).Parse(args)
	if errors.Is(err, config.ErrListRequested) || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, stdout); err != nil {
		log.Printf("Exiting with error: %v", err)
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}
