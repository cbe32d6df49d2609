//go:build tinygo && rp2040

package pwm

import (
	"errors"
	"machine"

	"github.com/sweeney/joyhmi/internal/gpio"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

type slot struct {
	dev pwmDevice
	ch  uint8
}

// Pico drives RP2040 PWM slices with a counter top of Wrap.
type Pico struct {
	slots map[gpio.Line]slot
}

// NewPico creates an RP2040 PWM output.
func NewPico() *Pico {
	return &Pico{slots: make(map[gpio.Line]slot)}
}

func (p *Pico) Configure(line gpio.Line) error {
	pin := machine.Pin(line)
	dev := pwmForPin(pin)
	if dev == nil {
		return errors.New("pwm: pin has no slice")
	}
	if err := dev.Configure(machine.PWMConfig{}); err != nil {
		return err
	}
	ch, err := dev.Channel(pin)
	if err != nil {
		return err
	}
	dev.SetTop(Wrap)
	dev.Set(ch, 0)
	dev.Enable(true)
	p.slots[line] = slot{dev: dev, ch: ch}
	return nil
}

// Set writes the channel compare value. It is a single register write and is
// safe from interrupt context.
func (p *Pico) Set(line gpio.Line, duty uint8) error {
	s, ok := p.slots[line]
	if !ok {
		return errors.New("pwm: line not configured")
	}
	s.dev.Set(s.ch, uint32(duty))
	return nil
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	}
	return nil
}
