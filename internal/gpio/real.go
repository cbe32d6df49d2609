//go:build linux && !tinygo

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// requestedLine is the part of *gpiocdev.Line the controller uses.
type requestedLine interface {
	Value() (int, error)
	SetValue(value int) error
	Reconfigure(options ...gpiocdev.LineConfigOption) error
	Close() error
}

// RealController drives lines on a Linux GPIO character device.
type RealController struct {
	chip *gpiocdev.Chip

	mu    sync.Mutex
	lines map[Line]requestedLine
	edges map[Line]bool
}

// NewRealController opens the named chip, e.g. "gpiochip0".
func NewRealController(chipName string) (*RealController, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &RealController{
		chip:  chip,
		lines: make(map[Line]requestedLine),
		edges: make(map[Line]bool),
	}, nil
}

// ConfigureInput requests line as an input with the given bias.
func (c *RealController) ConfigureInput(line Line, pull Pull) error {
	return c.request(line, gpiocdev.AsInput, biasOption(pull))
}

// ConfigureOutput requests line as an output driven to initial.
func (c *RealController) ConfigureOutput(line Line, initial bool) error {
	return c.request(line, gpiocdev.AsOutput(levelValue(initial)))
}

// Read returns the raw level of a requested line.
func (c *RealController) Read(line Line) (bool, error) {
	l, err := c.line(line)
	if err != nil {
		return false, err
	}
	v, err := l.Value()
	if err != nil {
		return false, fmt.Errorf("read line %d: %w", line, err)
	}
	return v != 0, nil
}

// Write drives a requested output line.
func (c *RealController) Write(line Line, high bool) error {
	l, err := c.line(line)
	if err != nil {
		return err
	}
	if err := l.SetValue(levelValue(high)); err != nil {
		return fmt.Errorf("write line %d: %w", line, err)
	}
	return nil
}

// OnFallingEdge requests line as a pulled-up input with falling edge detection.
// The handler runs on the gpiocdev event goroutine.
func (c *RealController) OnFallingEdge(line Line, handler EdgeHandler) error {
	return c.requestEdge(line,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if evt.Type == gpiocdev.LineEventFallingEdge {
				handler(Line(evt.Offset))
			}
		}),
	)
}

// Close releases GPIO resources.
// Output lines are returned to pulled-up inputs before closing so LEDs are
// left in a safe state for the next owner. Edge lines cannot be reconfigured
// and are only closed.
//
// Closing an edge line waits for its handler to return, and handlers call
// back into the controller, so lines are closed without holding mu.
func (c *RealController) Close() error {
	c.mu.Lock()
	lines, edges := c.lines, c.edges
	c.lines = make(map[Line]requestedLine)
	c.edges = make(map[Line]bool)
	c.mu.Unlock()

	var errs []error
	for offset, l := range lines {
		if !edges[offset] {
			if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
				errs = append(errs, fmt.Errorf("reconfigure line %d: %w", offset, err))
			}
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", offset, err))
		}
	}
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (c *RealController) request(line Line, opts ...gpiocdev.LineReqOption) error {
	return c.requestWith(line, false, opts...)
}

func (c *RealController) requestEdge(line Line, opts ...gpiocdev.LineReqOption) error {
	return c.requestWith(line, true, opts...)
}

// requestWith (re)requests a line; an existing request on the same offset is
// released first because event handlers can only be attached at request time.
// The old line is closed outside mu for the same reason as in Close.
func (c *RealController) requestWith(line Line, edge bool, opts ...gpiocdev.LineReqOption) error {
	c.mu.Lock()
	old, ok := c.lines[line]
	delete(c.lines, line)
	delete(c.edges, line)
	c.mu.Unlock()

	if ok {
		if err := old.Close(); err != nil {
			return fmt.Errorf("release line %d: %w", line, err)
		}
	}

	l, err := c.chip.RequestLine(int(line), opts...)
	if err != nil {
		return fmt.Errorf("request line %d: %w", line, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[line] = l
	c.edges[line] = edge
	return nil
}

func (c *RealController) line(line Line) (requestedLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.lines[line]
	if !ok {
		return nil, fmt.Errorf("line %d not requested", line)
	}
	return l, nil
}

func biasOption(pull Pull) gpiocdev.LineReqOption {
	switch pull {
	case PullUp:
		return gpiocdev.WithPullUp
	case PullDown:
		return gpiocdev.WithPullDown
	}
	return gpiocdev.WithBiasDisabled
}

func levelValue(high bool) int {
	if high {
		return 1
	}
	return 0
}
