package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dualrain/internal/terminal"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer func() {
		logFile.Close()
		log.SetOutput(io.Discard)
	}()

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Expected log file to be created")
	}

	log.Println("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestNewTerminalDefaultsToANSI(t *testing.T) {
	term, err := newTerminal("ansi", os.Stdout)
	if err != nil {
		t.Fatalf("newTerminal failed: %v", err)
	}
	if _, ok := term.(*terminal.ANSI); !ok {
		t.Fatalf("unexpected terminal type %T", term)
	}
}

func TestRealMainClosesLogOnError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	defer log.SetOutput(io.Discard)

	// A regular file is not a terminal, so setup fails after logging starts.
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	if err != nil {
		t.Fatal(err)
	}
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	if err != nil {
		t.Fatal(err)
	}
	defer stderr.Close()

	if code := realMain([]string{"-debug"}, stdout, stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if _, err := log.Writer().Write([]byte("late\n")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected log file to be closed, write returned %v", err)
	}
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Exiting with error") {
		t.Errorf("log file missing exit error: %q", data)
	}
	msg, _ := os.ReadFile(filepath.Join(dir, "stderr"))
	if !strings.Contains(string(msg), "error:") {
		t.Errorf("stderr = %q", msg)
	}
}

func TestRealMainExitCodes(t *testing.T) {
	stdout, err := os.Create(filepath.Join(t.TempDir(), "stdout"))
	if err != nil {
		t.Fatal(err)
	}
	defer stdout.Close()

	if code := realMain([]string{"-list"}, stdout, stdout); code != 0 {
		t.Errorf("-list exit code = %d, want 0", code)
	}
	if code := realMain([]string{"-fps", "0"}, stdout, stdout); code != 1 {
		t.Errorf("invalid flag exit code = %d, want 1", code)
	}
}
