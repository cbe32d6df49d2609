package pwm

import (
	"fmt"
	"sync"

	"github.com/sweeney/joyhmi/internal/gpio"
)

// FakeOutput records duty cycles for test assertions. It is safe for
// concurrent use.
type FakeOutput struct {
	mu         sync.Mutex
	configured map[gpio.Line]bool
	duties     map[gpio.Line]uint8

	// Sets records every Set call in order.
	Sets []Set

	// SetError, if set, will be returned by Set.
	SetError error
}

// Set is one recorded duty change.
type Set struct {
	Line gpio.Line
	Duty uint8
}

// NewFakeOutput creates a FakeOutput with no lines configured.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{
		configured: make(map[gpio.Line]bool),
		duties:     make(map[gpio.Line]uint8),
	}
}

// Configure marks a line as a PWM output.
func (f *FakeOutput) Configure(line gpio.Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured[line] = true
	f.duties[line] = 0
	return nil
}

// Set records the duty for a configured line.
func (f *FakeOutput) Set(line gpio.Line, duty uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	if !f.configured[line] {
		return fmt.Errorf("pwm: line %d not configured", line)
	}
	f.duties[line] = duty
	f.Sets = append(f.Sets, Set{Line: line, Duty: duty})
	return nil
}

// Duty returns the last duty set on a line.
func (f *FakeOutput) Duty(line gpio.Line) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duties[line]
}

// SetsTo returns the recorded duties for one line.
func (f *FakeOutput) SetsTo(line gpio.Line) []uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uint8
	for _, s := range f.Sets {
		if s.Line == line {
			out = append(out, s.Duty)
		}
	}
	return out
}
