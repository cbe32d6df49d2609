package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/joyhmi/internal/board"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/logic"
	"github.com/sweeney/joyhmi/internal/status"
)

func TestConfigureDefaults(t *testing.T) {
	cfg, opts, err := configure(nil)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if cfg.Board != config.BoardLinux {
		t.Errorf("Board: got %q, want linux", cfg.Board)
	}
	if cfg.Timing.Interval != 100*time.Millisecond {
		t.Errorf("Interval: got %v, want 100ms", cfg.Timing.Interval)
	}
	if opts.printState {
		t.Error("printState: expected false")
	}
}

func TestConfigureFlagDefaultsMatchConfig(t *testing.T) {
	cfg, _, err := configure(nil)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	want := config.Default()
	if cfg.Timing != want.Timing {
		t.Errorf("Timing: got %+v, want %+v", cfg.Timing, want.Timing)
	}
	if cfg.Timing.Debounce != logic.DefaultWindow {
		t.Errorf("Debounce: got %v, want %v", cfg.Timing.Debounce, logic.DefaultWindow)
	}
}

func TestConfigureFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joyhmi.yaml")
	yamlContent := "board: linux\ntiming:\n  interval: 50ms\n  settle: 400ms\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := configure([]string{"-config", path, "-board", "sim", "-settle", "250ms"})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if cfg.Board != config.BoardSim {
		t.Errorf("Board: got %q, want sim (flag wins)", cfg.Board)
	}
	if cfg.Timing.Settle != 250*time.Millisecond {
		t.Errorf("Settle: got %v, want 250ms (flag wins)", cfg.Timing.Settle)
	}
	if cfg.Timing.Interval != 50*time.Millisecond {
		t.Errorf("Interval: got %v, want 50ms (unset flag keeps file value)", cfg.Timing.Interval)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	if _, _, err := configure([]string{"-board", "arduino"}); err == nil {
		t.Error("expected error for unknown board")
	}
	if _, _, err := configure([]string{"-interval", "0s"}); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, _, err := configure([]string{"-no-such-flag"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestPrintState(t *testing.T) {
	cfg := config.Default()
	state := status.NewShared(time.Now(), statusConfig(cfg), int16(cfg.Display.Width))

	var buf bytes.Buffer
	if err := printState(&buf, state); err != nil {
		t.Fatalf("printState: %v", err)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !parsed.Status.LEDsEnabled {
		t.Error("expected LEDs enabled")
	}
	if parsed.Status.Border != "RECTANGULAR" {
		t.Errorf("Border: got %q, want RECTANGULAR", parsed.Status.Border)
	}
	if parsed.Status.Config.SettleMs != 300 {
		t.Errorf("SettleMs: got %d, want 300", parsed.Status.Config.SettleMs)
	}
}

// --- runLoop tests ---

func simSetup(t *testing.T) (*board.Sim, *status.Shared, runner) {
	t.Helper()
	cfg := config.Default()
	cfg.Board = config.BoardSim
	cfg.Timing.Interval = time.Millisecond
	cfg.Timing.Heartbeat = 0

	b := board.NewSim(cfg)
	state := status.NewShared(time.Now(), statusConfig(cfg), int16(cfg.Display.Width))
	loop, err := assemble(cfg, state, b.Board)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return b, state, loop
}

func TestRunLoopShutdownSIGTERM(t *testing.T) {
	b, state, loop := simSetup(t)
	sig := make(chan os.Signal, 1)

	errCh := make(chan error, 1)
	go func() { errCh <- runLoop(loop, sig) }()

	deadline := time.Now().Add(2 * time.Second)
	for state.Snapshot().Iterations < 3 {
		if time.Now().After(deadline) {
			t.Fatal("loop did not iterate")
		}
		time.Sleep(time.Millisecond)
	}
	sig <- syscall.SIGTERM

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("runLoop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runLoop did not return after SIGTERM")
	}

	if b.Framebuffer.Flushes() < 4 {
		t.Errorf("Flushes: got %d, want at least 4", b.Framebuffer.Flushes())
	}
	if b.Bootloader.Entered() != 0 {
		t.Error("bootloader must not be entered on shutdown")
	}
}

func TestRunLoopReflashEnds(t *testing.T) {
	b, _, loop := simSetup(t)
	lines := config.Default().Lines()

	b.Pins.Press(lines.ButtonB)

	errCh := make(chan error, 1)
	go func() { errCh <- runLoop(loop, make(chan os.Signal)) }()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("runLoop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runLoop did not return after reflash")
	}
	if b.Bootloader.Entered() != 1 {
		t.Errorf("Entered: got %d, want 1", b.Bootloader.Entered())
	}
	for i, lit := range b.Framebuffer.Presented() {
		if lit {
			t.Fatalf("pixel %d lit: display must be blank before the bootloader", i)
		}
	}
}

func TestRunLoopBootloaderError(t *testing.T) {
	b, state, loop := simSetup(t)
	b.Bootloader.EnterError = errors.New("no image")
	state.RequestReflash()

	err := runLoop(loop, make(chan os.Signal))
	if err == nil {
		t.Fatal("expected error")
	}
}

type stubRunner struct {
	err error
}

func (s stubRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	return s.err
}

func TestRunLoopSignalWaitsForLoop(t *testing.T) {
	sig := make(chan os.Signal, 1)
	sig <- syscall.SIGINT

	want := errors.New("cleanup failed")
	if err := runLoop(stubRunner{err: want}, sig); !errors.Is(err, want) {
		t.Errorf("got %v, want %v", err, want)
	}
}
