//go:build tinygo && rp2040

// Command joyhmi-pico is the RP2040 firmware build of joyhmi.
package main

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/joyhmi/internal/board"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/control"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/input"
	"github.com/sweeney/joyhmi/internal/status"
)

func main() {
	cfg := config.Default()
	cfg.Board = config.BoardPico
	cfg.Timing.Heartbeat = time.Minute

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config) error {
	b, err := board.OpenPico(cfg)
	if err != nil {
		return err
	}

	state := status.NewShared(time.Now(), status.Config{
		Board:       cfg.Board,
		IntervalMs:  cfg.Timing.Interval.Milliseconds(),
		DebounceMs:  cfg.Timing.Debounce.Milliseconds(),
		SettleMs:    cfg.Timing.Settle.Milliseconds(),
		HeartbeatMs: cfg.Timing.Heartbeat.Milliseconds(),
	}, int16(cfg.Display.Width))

	src := input.New(state, b.GPIO, b.PWM, cfg.Lines(), cfg.Timing.Debounce, nil)
	if err := src.Register(); err != nil {
		return err
	}
	loop := control.New(cfg.Loop(), state, b.ADC, display.NewSurface(b.Display), b.PWM, src, b.Boot)

	log.Printf("started: board=%s interval=%v debounce=%v", cfg.Board, cfg.Timing.Interval, cfg.Timing.Debounce)
	return loop.Run(context.Background())
}
