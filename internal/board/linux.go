//go:build linux && !tinygo

package board

import (
	"fmt"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/bootloader"
	"github.com/sweeney/joyhmi/internal/config"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/pwm"
)

// OpenLinux opens the Raspberry Pi board: buttons and the green LED on the
// GPIO character device, the OLED and an ADS1115 on one I2C bus, and the
// blue/red LEDs on hardware PWM.
func OpenLinux(cfg *config.Config) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	b := &Board{Name: config.BoardLinux}
	ok := false
	defer func() {
		if !ok {
			b.Close()
		}
	}()

	bus, err := i2creg.Open(cfg.Display.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Display.Bus, err)
	}
	b.onClose(bus.Close)

	panel, err := display.NewPanel(bus, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}
	b.onClose(panel.Halt)
	b.Display = panel

	adc, err := analog.NewADS1115(bus, analog.ADS1115Config{
		Address:  cfg.ADC.Address,
		SupplyMV: cfg.ADC.SupplyMV,
		Channels: []int{analog.ChannelY, analog.ChannelX},
	})
	if err != nil {
		return nil, fmt.Errorf("open adc: %w", err)
	}
	b.onClose(adc.Halt)
	b.ADC = adc

	ctrl, err := gpio.NewRealController(cfg.Pins.Chip)
	if err != nil {
		return nil, fmt.Errorf("init gpio: %w", err)
	}
	b.onClose(ctrl.Close)
	b.GPIO = ctrl

	out := pwm.NewPeriph(physic.Frequency(cfg.PWM.FrequencyHz) * physic.Hertz)
	b.onClose(out.Halt)
	b.PWM = out

	b.Boot = linuxBootloader(cfg.Bootloader.Command)

	ok = true
	return b, nil
}

func linuxBootloader(command []string) bootloader.Exec {
	if len(command) == 0 {
		return bootloader.Exec{}
	}
	return bootloader.Exec{Path: command[0], Args: command[1:]}
}
