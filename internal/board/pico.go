//go:build tinygo && rp2040

package board

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/bootloader"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/pwm"
)

// Pico wiring of the OLED.
const (
	oledSDA     = machine.GP14
	oledSCL     = machine.GP15
	oledAddress = 0x3C
)

// OpenPico brings up the RP2040 board: OLED on I2C1, joystick on ADC0/ADC1,
// buttons on pin interrupts and the LEDs on PWM slices.
func OpenPico(cfg *config.Config) (*Board, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       oledSDA,
		SCL:       oledSCL,
	}); err != nil {
		return nil, fmt.Errorf("configure i2c: %w", err)
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: oledAddress,
		Width:   int16(cfg.Display.Width),
		Height:  int16(cfg.Display.Height),
	})

	adc, err := analog.NewPicoADC(analog.ChannelY, analog.ChannelX)
	if err != nil {
		return nil, fmt.Errorf("open adc: %w", err)
	}

	return &Board{
		Name:    config.BoardPico,
		GPIO:    gpio.NewPinController(),
		ADC:     adc,
		Display: dev,
		PWM:     pwm.NewPico(),
		Boot:    bootloader.ROM{},
	}, nil
}
