package internal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/board"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/control"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/input"
	"github.com/sweeney/joyhmi/internal/logic"
	"github.com/sweeney/joyhmi/internal/status"
)

// stack is the whole HMI on a simulated board with a shared fake clock:
// the loop's sleeps advance the clock the debounce gates read.
type stack struct {
	cfg   *config.Config
	board *board.Sim
	state *status.Shared
	loop  *control.Loop
	lines input.Lines
	clock atomic.Int64
	slept []time.Duration
}

func newStack(t *testing.T) *stack {
	t.Helper()
	s := &stack{cfg: config.Default()}
	s.cfg.Board = config.BoardSim
	s.cfg.Timing.Heartbeat = 0
	s.lines = s.cfg.Lines()
	s.board = board.NewSim(s.cfg)
	s.state = status.NewShared(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), status.Config{Board: "sim"}, 128)
	s.clock.Store(10_000)

	src := input.New(s.state, s.board.GPIO, s.board.PWM, s.lines, s.cfg.Timing.Debounce, s.clock.Load)
	if err := src.Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	sleep := func(ctx context.Context, d time.Duration) error {
		s.slept = append(s.slept, d)
		s.clock.Add(d.Milliseconds())
		return ctx.Err()
	}
	s.loop = control.New(s.cfg.Loop(), s.state, s.board.ADC, display.NewSurface(s.board.Display),
		s.board.PWM, src, s.board.Boot, control.WithClock(nil, sleep))
	return s
}

// iterate runs one full loop iteration including the interval sleep.
func (s *stack) iterate(t *testing.T) bool {
	t.Helper()
	done, err := s.loop.Step(context.Background())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !done {
		s.slept = append(s.slept, s.cfg.Timing.Interval)
		s.clock.Add(s.cfg.Timing.Interval.Milliseconds())
	}
	return done
}

func (s *stack) lit(x, y int16) bool {
	w, _ := s.board.Framebuffer.Size()
	return s.board.Framebuffer.Presented()[int(y)*int(w)+int(x)]
}

// TestIntegrationFullFlow walks the HMI through every button and a joystick
// sweep, checking the panel and the LEDs after each iteration.
func TestIntegrationFullFlow(t *testing.T) {
	s := newStack(t)

	// Centred joystick: cursor in the middle, both LEDs dark, rectangular frame.
	s.iterate(t)
	if !s.lit(0, 0) || !s.lit(127, 63) {
		t.Error("rectangular border corners should be lit")
	}
	if !s.lit(61, 28) {
		t.Error("cursor should be drawn near the centre")
	}
	if d := s.board.LEDs.Duty(s.lines.Red); d != 0 {
		t.Errorf("red duty at centre: got %d, want 0", d)
	}

	// Full left and full up: red at maximum, blue at 220, cursor top-left.
	s.board.Joystick.Set(analog.ChannelX, 0)
	s.board.Joystick.Set(analog.ChannelY, 4095)
	s.iterate(t)
	if d := s.board.LEDs.Duty(s.lines.Red); d != 255 {
		t.Errorf("red duty: got %d, want 255", d)
	}
	if d := s.board.LEDs.Duty(s.lines.Blue); d != 220 {
		t.Errorf("blue duty: got %d, want 220", d)
	}
	if snap := s.state.Snapshot(); snap.Cursor != (logic.Cursor{X: 0, Y: 0}) {
		t.Errorf("cursor: got %+v, want (0,0)", snap.Cursor)
	}

	// Button A disables the LEDs immediately, before the next iteration.
	s.board.Pins.Press(s.lines.ButtonA)
	s.board.Pins.Release(s.lines.ButtonA)
	if d := s.board.LEDs.Duty(s.lines.Red); d != 0 {
		t.Errorf("red duty after A: got %d, want 0", d)
	}
	s.iterate(t)
	if d := s.board.LEDs.Duty(s.lines.Red); d != 0 {
		t.Errorf("red duty while disabled: got %d, want 0", d)
	}

	// Joystick button: green on, circular frame (corner dark).
	s.board.Pins.Press(s.lines.Joystick)
	s.board.Pins.Release(s.lines.Joystick)
	s.iterate(t)
	if !s.board.Pins.Level(s.lines.Green) {
		t.Error("green LED should be on")
	}
	if s.lit(127, 63) {
		t.Error("circular border should leave the corner dark")
	}
	if !s.lit(59, 2) {
		t.Error("circle top should be lit")
	}

	// Button B: blank panel, bootloader, no further iteration.
	flushes := s.board.Framebuffer.Flushes()
	s.board.Pins.Press(s.lines.ButtonB)
	if done := s.iterate(t); !done {
		t.Fatal("reflash must end the loop")
	}
	if s.board.Bootloader.Entered() != 1 {
		t.Errorf("bootloader entered %d times, want 1", s.board.Bootloader.Entered())
	}
	if s.board.Framebuffer.Flushes() != flushes+2 {
		t.Errorf("flushes: got %d, want frame + blank", s.board.Framebuffer.Flushes()-flushes)
	}
	for i, p := range s.board.Framebuffer.Presented() {
		if p {
			t.Fatalf("pixel %d lit after reflash", i)
		}
	}
}

// TestIntegrationBounceAcrossIterations checks that a bouncing button that
// spans a loop iteration still toggles once.
func TestIntegrationBounceAcrossIterations(t *testing.T) {
	s := newStack(t)

	s.board.Pins.Press(s.lines.ButtonA)
	s.iterate(t) // +100ms
	s.board.Pins.Press(s.lines.ButtonA)

	if s.state.LEDsEnabled() {
		t.Fatal("bounce 100ms later must not re-enable the LEDs")
	}

	s.iterate(t)
	s.board.Pins.Press(s.lines.ButtonA)
	if !s.state.LEDsEnabled() {
		t.Error("press 200ms after the first should be accepted")
	}
}

// TestIntegrationHeldJoystick covers the polled path: a held joystick button
// toggles once, then each iteration waits out the settle delay.
func TestIntegrationHeldJoystick(t *testing.T) {
	s := newStack(t)

	s.board.Pins.Press(s.lines.Joystick)
	s.iterate(t)
	s.iterate(t)

	// Edge at t0 accepted; poll at t0 rejected; poll at t0+400 accepted.
	snap := s.state.Snapshot()
	if snap.Accepted[logic.ButtonJoystick] != 2 {
		t.Errorf("accepted: got %d, want 2", snap.Accepted[logic.ButtonJoystick])
	}
	if snap.Border != logic.BorderRectangular {
		t.Errorf("border: got %s, want RECTANGULAR after two toggles", snap.Border)
	}
	want := []time.Duration{300 * time.Millisecond, 100 * time.Millisecond, 300 * time.Millisecond, 100 * time.Millisecond}
	if len(s.slept) != len(want) {
		t.Fatalf("sleeps: got %v, want %v", s.slept, want)
	}
	for i := range want {
		if s.slept[i] != want[i] {
			t.Errorf("sleep %d: got %v, want %v", i, s.slept[i], want[i])
		}
	}
}
