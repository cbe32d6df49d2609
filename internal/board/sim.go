package board

import (
	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/bootloader"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/pwm"
)

// Sim is an in-memory board. The simulator and the tests drive it through
// the concrete fakes.
type Sim struct {
	*Board

	Pins        *gpio.FakeController
	Joystick    *analog.FakeSampler
	Framebuffer *display.Framebuffer
	LEDs        *pwm.FakeOutput
	Bootloader  *bootloader.FakeEntry
}

// NewSim creates a board with the joystick centred and every button released.
func NewSim(cfg *config.Config) *Sim {
	s := &Sim{
		Pins:        gpio.NewFakeController(),
		Joystick:    analog.NewFakeSampler(),
		Framebuffer: display.NewFramebuffer(int16(cfg.Display.Width), int16(cfg.Display.Height)),
		LEDs:        pwm.NewFakeOutput(),
		Bootloader:  &bootloader.FakeEntry{},
	}
	s.Joystick.Set(analog.ChannelX, analog.MaxSample/2)
	s.Joystick.Set(analog.ChannelY, analog.MaxSample/2)
	s.Board = &Board{
		Name:    config.BoardSim,
		GPIO:    s.Pins,
		ADC:     s.Joystick,
		Display: s.Framebuffer,
		PWM:     s.LEDs,
		Boot:    s.Bootloader,
	}
	s.onClose(s.Pins.Close)
	return s
}
