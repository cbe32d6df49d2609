// Package input turns falling edges on the three buttons into state changes.
//
// HandleEdge runs in interrupt context (the hardware ISR on the Pico, the
// line watcher goroutine on Linux). It only touches atomics in status.Shared
// and performs single register writes; it never logs or blocks.
package input

import (
	"fmt"
	"time"

	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/logic"
	"github.com/sweeney/joyhmi/internal/pwm"
	"github.com/sweeney/joyhmi/internal/status"
)

// Lines maps every HMI function to a GPIO line.
type Lines struct {
	ButtonA  gpio.Line
	ButtonB  gpio.Line
	Joystick gpio.Line
	Green    gpio.Line
	Blue     gpio.Line
	Red      gpio.Line
}

// DefaultLines returns the reference board wiring.
func DefaultLines() Lines {
	return Lines{
		ButtonA:  gpio.DefaultButtonA,
		ButtonB:  gpio.DefaultButtonB,
		Joystick: gpio.DefaultJoystickButton,
		Green:    gpio.DefaultGreenLED,
		Blue:     gpio.DefaultBlueLED,
		Red:      gpio.DefaultRedLED,
	}
}

// Source owns one debounce gate per button and applies accepted presses.
type Source struct {
	state *status.Shared
	gpio  gpio.Controller
	pwm   pwm.Output
	lines Lines
	now   func() int64

	gates [logic.NumButtons]*logic.Gate
}

// New creates a Source. now returns a monotonic timestamp in milliseconds;
// nil uses the process clock.
func New(state *status.Shared, ctrl gpio.Controller, out pwm.Output, lines Lines, window time.Duration, now func() int64) *Source {
	if now == nil {
		now = MonotonicMillis()
	}
	s := &Source{
		state: state,
		gpio:  ctrl,
		pwm:   out,
		lines: lines,
		now:   now,
	}
	for b := range s.gates {
		s.gates[b] = logic.NewGate(window)
		state.AttachGate(logic.Button(b), s.gates[b])
	}
	return s
}

// MonotonicMillis returns a clock counting milliseconds since the call.
func MonotonicMillis() func() int64 {
	start := time.Now()
	return func() int64 {
		return time.Since(start).Milliseconds()
	}
}

// Lines returns the line assignment.
func (s *Source) Lines() Lines {
	return s.lines
}

// Register configures every line and installs the falling-edge handlers.
// The green indicator starts low and both PWM outputs start at zero.
func (s *Source) Register() error {
	if err := s.gpio.ConfigureOutput(s.lines.Green, s.state.Green()); err != nil {
		return err
	}
	for _, l := range []gpio.Line{s.lines.Blue, s.lines.Red} {
		if err := s.pwm.Configure(l); err != nil {
			return err
		}
	}
	for _, l := range []gpio.Line{s.lines.ButtonA, s.lines.ButtonB, s.lines.Joystick} {
		if err := s.gpio.OnFallingEdge(l, s.HandleEdge); err != nil {
			return err
		}
	}
	return nil
}

// HandleEdge is the falling-edge handler for all three buttons.
func (s *Source) HandleEdge(line gpio.Line) {
	b, ok := s.buttonFor(line)
	if !ok {
		return
	}
	s.trigger(b)
}

// JoystickPressed reads the joystick button level. Buttons are active low.
func (s *Source) JoystickPressed() (bool, error) {
	high, err := s.gpio.Read(s.lines.Joystick)
	if err != nil {
		return false, err
	}
	return !high, nil
}

// PollJoystick is the loop-side path for the joystick button. It shares the
// edge handler's gate, so a press seen by both paths toggles once.
func (s *Source) PollJoystick(pressed bool) bool {
	if !pressed {
		return false
	}
	return s.trigger(logic.ButtonJoystick)
}

func (s *Source) trigger(b logic.Button) bool {
	if !s.gates[b].TryAccept(s.now()) {
		return false
	}
	switch logic.EventFor(b) {
	case logic.EventReflashRequested:
		s.state.RequestReflash()
	case logic.EventLEDToggleRequested:
		if !s.state.ToggleLEDs() {
			s.zeroPWM()
		}
	case logic.EventBorderStyleToggleRequested:
		green := s.state.ToggleGreen()
		if err := s.gpio.Write(s.lines.Green, green); err != nil {
			s.state.NoteHandlerError()
		}
		s.state.ToggleBorder()
	}
	return true
}

// Quiesce zeroes both PWM outputs and drives the green indicator low.
func (s *Source) Quiesce() error {
	var errs []error
	for _, l := range []gpio.Line{s.lines.Blue, s.lines.Red} {
		if err := s.pwm.Set(l, 0); err != nil {
			errs = append(errs, fmt.Errorf("pwm line %d: %w", l, err))
		}
	}
	s.state.SetDuties(0, 0)
	if err := s.gpio.Write(s.lines.Green, false); err != nil {
		errs = append(errs, fmt.Errorf("green line %d: %w", s.lines.Green, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("quiesce errors: %v", errs)
	}
	return nil
}

func (s *Source) zeroPWM() {
	if err := s.pwm.Set(s.lines.Blue, 0); err != nil {
		s.state.NoteHandlerError()
	}
	if err := s.pwm.Set(s.lines.Red, 0); err != nil {
		s.state.NoteHandlerError()
	}
	s.state.SetDuties(0, 0)
}

func (s *Source) buttonFor(line gpio.Line) (logic.Button, bool) {
	switch line {
	case s.lines.ButtonA:
		return logic.ButtonA, true
	case s.lines.ButtonB:
		return logic.ButtonB, true
	case s.lines.Joystick:
		return logic.ButtonJoystick, true
	}
	return 0, false
}
