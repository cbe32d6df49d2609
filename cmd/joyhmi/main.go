// Command joyhmi runs the joystick HMI: a cursor on an OLED that follows an
// analog joystick, two LEDs whose brightness tracks the axes, and three
// buttons for LED enable, border style and reflash.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/joyhmi/internal/board"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/control"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/input"
	"github.com/sweeney/joyhmi/internal/sim"
	"github.com/sweeney/joyhmi/internal/status"
)

type options struct {
	printState  bool
	writeConfig string
}

func main() {
	cfg, opts, err := configure(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("fatal: %v", err)
	}

	if opts.writeConfig != "" {
		if err := cfg.Save(opts.writeConfig); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		log.Printf("wrote config to %s", opts.writeConfig)
		return
	}

	if err := run(cfg, opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// configure parses flags, loads the config file and applies the flags that
// were set explicitly on top of it.
func configure(args []string) (*config.Config, options, error) {
	defaults := config.Default()
	fs := flag.NewFlagSet("joyhmi", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (defaults when empty or missing)")
	boardName := fs.String("board", defaults.Board, "Board: linux or sim")
	interval := fs.Duration("interval", defaults.Timing.Interval, "Loop interval")
	debounce := fs.Duration("debounce", defaults.Timing.Debounce, "Button debounce window")
	settle := fs.Duration("settle", defaults.Timing.Settle, "Delay after a polled joystick press")
	heartbeat := fs.Duration("heartbeat", defaults.Timing.Heartbeat, "Heartbeat log interval (0 to disable)")
	printState := fs.Bool("print-state", false, "Print initial state and config as JSON and exit")
	writeConfig := fs.String("write-config", "", "Write the effective config to this file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, options{}, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "board":
			cfg.Board = *boardName
		case "interval":
			cfg.Timing.Interval = *interval
		case "debounce":
			cfg.Timing.Debounce = *debounce
		case "settle":
			cfg.Timing.Settle = *settle
		case "heartbeat":
			cfg.Timing.Heartbeat = *heartbeat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, options{}, err
	}
	return cfg, options{printState: *printState, writeConfig: *writeConfig}, nil
}

func run(cfg *config.Config, opts options) error {
	state := status.NewShared(time.Now(), statusConfig(cfg), int16(cfg.Display.Width))

	// Print state mode
	if opts.printState {
		return printState(os.Stdout, state)
	}

	var b *board.Board
	var simBoard *board.Sim
	switch cfg.Board {
	case config.BoardLinux:
		var err error
		if b, err = board.OpenLinux(cfg); err != nil {
			return err
		}
	case config.BoardSim:
		simBoard = board.NewSim(cfg)
		b = simBoard.Board
	default:
		return fmt.Errorf("board %q is not supported by this binary", cfg.Board)
	}
	defer b.Close()

	loop, err := assemble(cfg, state, b)
	if err != nil {
		return err
	}

	log.Printf("started: board=%s interval=%v debounce=%v settle=%v heartbeat=%v",
		cfg.Board, cfg.Timing.Interval, cfg.Timing.Debounce, cfg.Timing.Settle, cfg.Timing.Heartbeat)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if simBoard != nil {
		return runSim(loop, sim.NewModel(simBoard, cfg.Lines()), sigCh)
	}
	return runLoop(loop, sigCh)
}

// assemble wires the input source and the control loop onto a board.
func assemble(cfg *config.Config, state *status.Shared, b *board.Board) (*control.Loop, error) {
	src := input.New(state, b.GPIO, b.PWM, cfg.Lines(), cfg.Timing.Debounce, nil)
	if err := src.Register(); err != nil {
		return nil, fmt.Errorf("register inputs: %w", err)
	}
	surface := display.NewSurface(b.Display)
	return control.New(cfg.Loop(), state, b.ADC, surface, b.PWM, src, b.Boot), nil
}

type runner interface {
	Run(ctx context.Context) error
}

// runLoop runs the control loop until it ends on its own or a signal arrives.
func runLoop(loop runner, sig <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case s := <-sig:
		log.Printf("received %v, shutting down", s)
		cancel()
		return <-done
	}
}

// runSim keeps the window on the main goroutine, as ebiten requires.
func runSim(loop runner, model *sim.Model, sig <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	go func() {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	werr := sim.RunWindow(model, "joyhmi")
	cancel()
	if err := <-done; err != nil {
		return err
	}
	return werr
}

func printState(w io.Writer, state *status.Shared) error {
	data := status.FormatJSON(state.Snapshot())
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("print state: %w", err)
	}
	return nil
}

func statusConfig(cfg *config.Config) status.Config {
	return status.Config{
		Board:       cfg.Board,
		IntervalMs:  cfg.Timing.Interval.Milliseconds(),
		DebounceMs:  cfg.Timing.Debounce.Milliseconds(),
		SettleMs:    cfg.Timing.Settle.Milliseconds(),
		HeartbeatMs: cfg.Timing.Heartbeat.Milliseconds(),
	}
}
