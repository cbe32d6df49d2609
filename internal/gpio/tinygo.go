//go:build tinygo && rp2040

package gpio

import (
	"errors"
	"machine"
)

// PinController drives RP2040 pins directly. Edge handlers run in interrupt
// context.
type PinController struct{}

// NewPinController returns the RP2040 pin controller.
func NewPinController() *PinController {
	return &PinController{}
}

func (c *PinController) ConfigureInput(line Line, pull Pull) error {
	mode := machine.PinInput
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	}
	machine.Pin(line).Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (c *PinController) ConfigureOutput(line Line, initial bool) error {
	pin := machine.Pin(line)
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Set(initial)
	return nil
}

func (c *PinController) Read(line Line) (bool, error) {
	return machine.Pin(line).Get(), nil
}

func (c *PinController) Write(line Line, high bool) error {
	machine.Pin(line).Set(high)
	return nil
}

// OnFallingEdge configures a pulled-up input and installs handler as its
// falling edge interrupt.
func (c *PinController) OnFallingEdge(line Line, handler EdgeHandler) error {
	pin := machine.Pin(line)
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pin.SetInterrupt(machine.PinFalling, func(p machine.Pin) {
		handler(Line(p))
	}); err != nil {
		return errors.New("gpio: could not set interrupt")
	}
	return nil
}

// Close is a no-op; pins live as long as the firmware.
func (c *PinController) Close() error {
	return nil
}
