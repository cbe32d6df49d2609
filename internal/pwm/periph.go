//go:build !tinygo

package pwm

import (
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"github.com/sweeney/joyhmi/internal/gpio"
)

// Periph drives hardware PWM through periph.io (GPIO12/13/18/19 on a
// Raspberry Pi). host.Init must have been called.
type Periph struct {
	freq physic.Frequency

	mu   sync.Mutex
	pins map[gpio.Line]pgpio.PinIO
}

// NewPeriph creates a PWM output running at freq.
func NewPeriph(freq physic.Frequency) *Periph {
	if freq == 0 {
		freq = physic.KiloHertz
	}
	return &Periph{freq: freq, pins: make(map[gpio.Line]pgpio.PinIO)}
}

// Configure looks the line up by name and starts it at 0% duty.
func (p *Periph) Configure(line gpio.Line) error {
	name := fmt.Sprintf("GPIO%d", line)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return fmt.Errorf("pwm: no pin %s", name)
	}
	if err := pin.PWM(0, p.freq); err != nil {
		return fmt.Errorf("pwm %s: %w", name, err)
	}
	p.mu.Lock()
	p.pins[line] = pin
	p.mu.Unlock()
	return nil
}

// Set changes the duty of a configured line.
func (p *Periph) Set(line gpio.Line, duty uint8) error {
	p.mu.Lock()
	pin, ok := p.pins[line]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("pwm: line %d not configured", line)
	}
	if err := pin.PWM(dutyFor(duty), p.freq); err != nil {
		return fmt.Errorf("pwm line %d: %w", line, err)
	}
	return nil
}

// Halt stops every configured output.
func (p *Periph) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for line, pin := range p.pins {
		if err := pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt line %d: %w", line, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("halt errors: %v", errs)
	}
	return nil
}

func dutyFor(duty uint8) pgpio.Duty {
	return pgpio.Duty(uint64(duty) * uint64(pgpio.DutyMax) / Wrap)
}
