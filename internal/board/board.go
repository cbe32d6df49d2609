// Package board assembles the hardware collaborators for one target.
package board

import (
	"fmt"

	"tinygo.org/x/drivers"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/bootloader"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/pwm"
)

// Board is the set of devices the HMI runs on.
type Board struct {
	Name    string
	GPIO    gpio.Controller
	ADC     analog.Sampler
	Display drivers.Displayer
	PWM     pwm.Output
	Boot    bootloader.Entry

	closers []func() error
}

func (b *Board) onClose(f func() error) {
	b.closers = append(b.closers, f)
}

// Close releases every device in reverse order of acquisition.
func (b *Board) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
