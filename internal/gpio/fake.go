package gpio

import (
	"fmt"
	"sync"
)

// FakeController is a test double that keeps line levels in memory.
// It is safe for concurrent use; Fire calls the handler outside the lock so a
// handler may call back into the controller.
type FakeController struct {
	mu       sync.Mutex
	inputs   map[Line]Pull
	outputs  map[Line]bool
	levels   map[Line]bool
	handlers map[Line]EdgeHandler

	// Writes records every Write call in order.
	Writes []WriteRecord

	// ReadError, if set, will be returned by Read.
	ReadError error

	// WriteError, if set, will be returned by Write.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool
}

// WriteRecord is one recorded output change.
type WriteRecord struct {
	Line Line
	High bool
}

// NewFakeController creates a FakeController with no lines configured.
func NewFakeController() *FakeController {
	return &FakeController{
		inputs:   make(map[Line]Pull),
		outputs:  make(map[Line]bool),
		levels:   make(map[Line]bool),
		handlers: make(map[Line]EdgeHandler),
	}
}

// ConfigureInput records the line as an input. A pulled-up line idles high.
func (f *FakeController) ConfigureInput(line Line, pull Pull) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs[line] = pull
	delete(f.outputs, line)
	f.levels[line] = pull == PullUp
	return nil
}

// ConfigureOutput records the line as an output.
func (f *FakeController) ConfigureOutput(line Line, initial bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[line] = true
	delete(f.inputs, line)
	f.levels[line] = initial
	return nil
}

// Read returns the current level of a configured line.
func (f *FakeController) Read(line Line) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if !f.configured(line) {
		return false, fmt.Errorf("gpio: line %d not configured", line)
	}
	return f.levels[line], nil
}

// Write drives a configured output line.
func (f *FakeController) Write(line Line, high bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	if !f.outputs[line] {
		return fmt.Errorf("gpio: line %d not an output", line)
	}
	f.levels[line] = high
	f.Writes = append(f.Writes, WriteRecord{Line: line, High: high})
	return nil
}

// OnFallingEdge configures a pulled-up input and stores the handler.
func (f *FakeController) OnFallingEdge(line Line, handler EdgeHandler) error {
	if err := f.ConfigureInput(line, PullUp); err != nil {
		return err
	}
	f.mu.Lock()
	f.handlers[line] = handler
	f.mu.Unlock()
	return nil
}

// Close marks the controller as closed.
func (f *FakeController) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// SetLevel sets the level an input line reads back, without firing edges.
func (f *FakeController) SetLevel(line Line, high bool) {
	f.mu.Lock()
	f.levels[line] = high
	f.mu.Unlock()
}

// Level returns the current level of a line.
func (f *FakeController) Level(line Line) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[line]
}

// Fire simulates a falling edge on line. It reports whether a handler was registered.
func (f *FakeController) Fire(line Line) bool {
	f.mu.Lock()
	h := f.handlers[line]
	f.mu.Unlock()
	if h == nil {
		return false
	}
	h(line)
	return true
}

// Press drives line low and fires its falling edge.
func (f *FakeController) Press(line Line) bool {
	f.SetLevel(line, false)
	return f.Fire(line)
}

// Release drives line back high.
func (f *FakeController) Release(line Line) {
	f.SetLevel(line, true)
}

// WritesTo returns the recorded writes for one line.
func (f *FakeController) WritesTo(line Line) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []bool
	for _, w := range f.Writes {
		if w.Line == line {
			out = append(out, w.High)
		}
	}
	return out
}

func (f *FakeController) configured(line Line) bool {
	_, in := f.inputs[line]
	return in || f.outputs[line]
}
