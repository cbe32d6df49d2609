// Package control runs the HMI polling loop: sample the joystick, redraw the
// frame, drive the PWM LEDs and act on latched button events.
package control

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/bootloader"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/logic"
	"github.com/sweeney/joyhmi/internal/pwm"
	"github.com/sweeney/joyhmi/internal/status"
)

// Loop timing of the reference firmware.
const (
	DefaultInterval = 100 * time.Millisecond
	DefaultSettle   = 300 * time.Millisecond
)

// Surface is the drawing target. Drawing is buffered until Flush.
type Surface interface {
	Clear(on bool)
	DrawRect(x, y, w, h int16, on, fill bool)
	DrawCircle(cx, cy, r int16, on bool)
	Flush() error
}

// Input is the loop-side view of the buttons.
type Input interface {
	JoystickPressed() (bool, error)
	PollJoystick(pressed bool) bool
	// Quiesce drives every output to its idle level.
	Quiesce() error
}

// Config holds loop geometry and timing.
type Config struct {
	Width     int16
	Height    int16
	Interval  time.Duration
	Settle    time.Duration
	Heartbeat time.Duration
	Blue      gpio.Line
	Red       gpio.Line
}

// Loop is the single-threaded control loop. All drawing happens on the
// goroutine that calls Run or Step.
type Loop struct {
	cfg     Config
	state   *status.Shared
	adc     analog.Sampler
	surface Surface
	pwm     pwm.Output
	input   Input
	boot    bootloader.Entry

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	lastHeartbeat time.Time
	seen          observed
}

type observed struct {
	leds   bool
	border logic.BorderStyle
}

// Option customises a Loop.
type Option func(*Loop)

// WithClock replaces time.Now and the context-aware sleep, for tests.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// New creates a Loop.
func New(cfg Config, state *status.Shared, adc analog.Sampler, surface Surface, out pwm.Output, in Input, boot bootloader.Entry, opts ...Option) *Loop {
	l := &Loop{
		cfg:     cfg,
		state:   state,
		adc:     adc,
		surface: surface,
		pwm:     out,
		input:   in,
		boot:    boot,
		now:     time.Now,
		sleep:   Sleep,
	}
	for _, o := range opts {
		o(l)
	}
	l.seen = observed{leds: state.LEDsEnabled(), border: state.Border()}
	return l
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run blanks the display, then iterates until the bootloader takes over or
// ctx is cancelled. A cancelled ctx returns nil after the outputs are idled.
// A failed bootloader entry is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	l.surface.Clear(false)
	if err := l.surface.Flush(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	l.lastHeartbeat = l.now()

	for {
		done, err := l.Step(ctx)
		if done {
			return err
		}
		l.heartbeat()
		if l.sleep(ctx, l.cfg.Interval) != nil {
			l.shutdown()
			return nil
		}
	}
}

// Step performs one iteration without the trailing interval sleep. It reports
// done when the loop must not continue: the bootloader was entered (err is
// nil), entry failed (err is set), or ctx was cancelled during the settle
// delay (err is nil, outputs idled).
func (l *Loop) Step(ctx context.Context) (done bool, err error) {
	// A failed sample skips the frame only; reflash and the joystick poll
	// still run.
	if x, y, err := l.sample(); err != nil {
		log.Printf("adc read error: %v", err)
	} else {
		l.drawFrame(x, y)
		l.driveLEDs(x, y)
	}
	l.logEvents()

	if l.state.TakeReflash() {
		log.Printf("event: %s, entering bootloader", logic.EventReflashRequested)
		l.surface.Clear(false)
		if err := l.surface.Flush(); err != nil {
			log.Printf("display flush error: %v", err)
		}
		if err := l.boot.Enter(); err != nil {
			return true, fmt.Errorf("enter bootloader: %w", err)
		}
		return true, nil
	}

	pressed, err := l.input.JoystickPressed()
	if err != nil {
		log.Printf("joystick read error: %v", err)
	} else if pressed {
		l.input.PollJoystick(true)
		l.logEvents()
		if l.sleep(ctx, l.cfg.Settle) != nil {
			l.shutdown()
			return true, nil
		}
	}

	l.state.NoteIteration()
	return false, nil
}

func (l *Loop) sample() (x, y uint16, err error) {
	if err := l.adc.Select(analog.ChannelX); err != nil {
		return 0, 0, err
	}
	if x, err = l.adc.Read(); err != nil {
		return 0, 0, err
	}
	if err := l.adc.Select(analog.ChannelY); err != nil {
		return 0, 0, err
	}
	if y, err = l.adc.Read(); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (l *Loop) drawFrame(x, y uint16) {
	w, h := l.cfg.Width, l.cfg.Height
	l.surface.Clear(false)
	if l.state.Border() == logic.BorderCircular {
		l.surface.DrawCircle(w*20/43, h/2, min(w, h)/2-2, true)
	} else {
		l.surface.DrawRect(0, 0, w, h, true, false)
	}

	c := logic.CursorFor(x, y, w, h)
	l.surface.DrawRect(c.X, c.Y, logic.CursorSize, logic.CursorSize, true, true)
	if err := l.surface.Flush(); err != nil {
		log.Printf("display flush error: %v", err)
	}
	l.state.SetCursor(c)
}

func (l *Loop) driveLEDs(x, y uint16) {
	enabled := l.state.LEDsEnabled()
	blue := logic.Duty(y, enabled)
	red := logic.Duty(x, enabled)
	if err := l.pwm.Set(l.cfg.Blue, blue); err != nil {
		log.Printf("pwm blue error: %v", err)
	}
	if err := l.pwm.Set(l.cfg.Red, red); err != nil {
		log.Printf("pwm red error: %v", err)
	}
	l.state.SetDuties(red, blue)
}

// logEvents reports state changes made by the edge handlers, which cannot log.
func (l *Loop) logEvents() {
	now := observed{leds: l.state.LEDsEnabled(), border: l.state.Border()}
	if now.leds != l.seen.leds {
		log.Printf("event: %s (leds_enabled=%v)", logic.EventLEDToggleRequested, now.leds)
	}
	if now.border != l.seen.border {
		log.Printf("event: %s (border=%s green=%v)", logic.EventBorderStyleToggleRequested, now.border, l.state.Green())
	}
	l.seen = now
}

func (l *Loop) heartbeat() {
	if l.cfg.Heartbeat <= 0 {
		return
	}
	t := l.now()
	if t.Sub(l.lastHeartbeat) < l.cfg.Heartbeat {
		return
	}
	l.lastHeartbeat = t
	log.Printf("heartbeat: %s", l.state.Snapshot())
}

func (l *Loop) shutdown() {
	log.Printf("shutdown: %s", status.FormatStatusEvent(l.state.Snapshot(), "SHUTDOWN"))
	l.surface.Clear(false)
	if err := l.surface.Flush(); err != nil {
		log.Printf("display flush error: %v", err)
	}
	if err := l.input.Quiesce(); err != nil {
		log.Printf("quiesce outputs: %v", err)
	}
}
