//go:build linux && !tinygo

package gpio

import (
	"errors"
	"testing"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// handlerLine mimics a requested gpiocdev line. Close waits for a pending
// edge handler to finish, as the event goroutine does.
type handlerLine struct {
	handler      func()
	reconfigured int
	closed       int
}

func (l *handlerLine) Value() (int, error)  { return 1, nil }
func (l *handlerLine) SetValue(v int) error { return nil }

func (l *handlerLine) Reconfigure(options ...gpiocdev.LineConfigOption) error {
	l.reconfigured++
	return nil
}

func (l *handlerLine) Close() error {
	l.closed++
	if l.handler == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.handler()
	}()
	<-done
	return nil
}

func TestRealControllerCloseWithHandlerInFlight(t *testing.T) {
	c := &RealController{
		lines: make(map[Line]requestedLine),
		edges: make(map[Line]bool),
	}
	led := &handlerLine{}
	joystick := &handlerLine{handler: func() {
		// A press during shutdown toggles the green LED from the handler.
		_ = c.Write(DefaultGreenLED, true)
	}}
	c.lines[DefaultGreenLED] = led
	c.lines[DefaultJoystickButton] = joystick
	c.edges[DefaultJoystickButton] = true

	errCh := make(chan error, 1)
	go func() { errCh <- c.Close() }()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while an edge handler was writing")
	}

	if joystick.closed != 1 || led.closed != 1 {
		t.Errorf("closed: joystick=%d led=%d, want 1 each", joystick.closed, led.closed)
	}
	if joystick.reconfigured != 0 {
		t.Error("edge lines should not be reconfigured")
	}
	if led.reconfigured != 1 {
		t.Errorf("output line reconfigured %d times, want 1", led.reconfigured)
	}
	if _, err := c.line(DefaultGreenLED); err == nil {
		t.Error("expected lines to be released after Close")
	}
}

type failingLine struct{ handlerLine }

func (l *failingLine) Close() error { return errors.New("busy") }

func TestRealControllerCloseCollectsErrors(t *testing.T) {
	c := &RealController{
		lines: map[Line]requestedLine{DefaultRedLED: &failingLine{}},
		edges: make(map[Line]bool),
	}

	if err := c.Close(); err == nil {
		t.Error("expected close error to be reported")
	}
}
