// Package config holds the joyhmi configuration and its defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/joyhmi/internal/control"
	"github.com/sweeney/joyhmi/internal/display"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/input"
	"github.com/sweeney/joyhmi/internal/logic"
)

// Board names.
const (
	BoardLinux = "linux"
	BoardPico  = "pico"
	BoardSim   = "sim"
)

// Config represents the application configuration.
type Config struct {
	Board      string           `yaml:"board"`
	Pins       PinsConfig       `yaml:"pins"`
	Timing     TimingConfig     `yaml:"timing"`
	Display    DisplayConfig    `yaml:"display"`
	ADC        ADCConfig        `yaml:"adc"`
	PWM        PWMConfig        `yaml:"pwm"`
	Bootloader BootloaderConfig `yaml:"bootloader"`
}

// PinsConfig assigns GPIO lines (BCM on Linux, GP on the Pico).
type PinsConfig struct {
	Chip     string `yaml:"chip"`
	ButtonA  int    `yaml:"button_a"`
	ButtonB  int    `yaml:"button_b"`
	Joystick int    `yaml:"joystick"`
	Green    int    `yaml:"green"`
	Blue     int    `yaml:"blue"`
	Red      int    `yaml:"red"`
}

// TimingConfig contains loop and debounce timing.
type TimingConfig struct {
	Interval  time.Duration `yaml:"interval"`
	Debounce  time.Duration `yaml:"debounce"`
	Settle    time.Duration `yaml:"settle"`
	Heartbeat time.Duration `yaml:"heartbeat"` // 0 disables
}

// DisplayConfig describes the OLED panel.
type DisplayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Bus    string `yaml:"i2c_bus"` // periph bus name, "" for the first bus
}

// ADCConfig describes the external joystick ADC used on Linux.
type ADCConfig struct {
	Address  uint16 `yaml:"address"`
	SupplyMV int    `yaml:"supply_mv"`
}

// PWMConfig contains LED PWM parameters.
type PWMConfig struct {
	FrequencyHz int64 `yaml:"frequency_hz"`
}

// BootloaderConfig selects what reflash does on Linux. The command replaces
// the running process.
type BootloaderConfig struct {
	Command []string `yaml:"command,omitempty"`
}

// DefaultHeartbeat is the interval between status log lines.
const DefaultHeartbeat = 15 * time.Minute

// Default returns the configuration of the reference board.
func Default() *Config {
	return &Config{
		Board: BoardLinux,
		Pins: PinsConfig{
			Chip:     "gpiochip0",
			ButtonA:  int(gpio.DefaultButtonA),
			ButtonB:  int(gpio.DefaultButtonB),
			Joystick: int(gpio.DefaultJoystickButton),
			Green:    int(gpio.DefaultGreenLED),
			Blue:     int(gpio.DefaultBlueLED),
			Red:      int(gpio.DefaultRedLED),
		},
		Timing: TimingConfig{
			Interval:  control.DefaultInterval,
			Debounce:  logic.DefaultWindow,
			Settle:    control.DefaultSettle,
			Heartbeat: DefaultHeartbeat,
		},
		Display: DisplayConfig{
			Width:  display.DefaultWidth,
			Height: display.DefaultHeight,
		},
		ADC: ADCConfig{
			Address:  0x48,
			SupplyMV: 3300,
		},
		PWM: PWMConfig{
			FrequencyHz: 1000,
		},
	}
}

// Lines returns the pin assignment as input lines.
func (c *Config) Lines() input.Lines {
	return input.Lines{
		ButtonA:  gpio.Line(c.Pins.ButtonA),
		ButtonB:  gpio.Line(c.Pins.ButtonB),
		Joystick: gpio.Line(c.Pins.Joystick),
		Green:    gpio.Line(c.Pins.Green),
		Blue:     gpio.Line(c.Pins.Blue),
		Red:      gpio.Line(c.Pins.Red),
	}
}

// Loop returns the control loop configuration.
func (c *Config) Loop() control.Config {
	return control.Config{
		Width:     int16(c.Display.Width),
		Height:    int16(c.Display.Height),
		Interval:  c.Timing.Interval,
		Settle:    c.Timing.Settle,
		Heartbeat: c.Timing.Heartbeat,
		Blue:      gpio.Line(c.Pins.Blue),
		Red:       gpio.Line(c.Pins.Red),
	}
}

// Validate checks that the configuration can drive the hardware.
func (c *Config) Validate() error {
	var errs []error

	switch c.Board {
	case BoardLinux, BoardPico, BoardSim:
	default:
		errs = append(errs, fmt.Errorf("unknown board %q", c.Board))
	}

	pins := map[string]int{
		"button_a": c.Pins.ButtonA,
		"button_b": c.Pins.ButtonB,
		"joystick": c.Pins.Joystick,
		"green":    c.Pins.Green,
		"blue":     c.Pins.Blue,
		"red":      c.Pins.Red,
	}
	seen := make(map[int]string)
	for _, name := range []string{"button_a", "button_b", "joystick", "green", "blue", "red"} {
		p := pins[name]
		if p < 0 {
			errs = append(errs, fmt.Errorf("pin %s: negative line %d", name, p))
			continue
		}
		if other, ok := seen[p]; ok {
			errs = append(errs, fmt.Errorf("pin %s: line %d already used by %s", name, p, other))
			continue
		}
		seen[p] = name
	}

	if c.Timing.Interval <= 0 {
		errs = append(errs, errors.New("timing.interval must be positive"))
	}
	if c.Timing.Debounce <= 0 {
		errs = append(errs, errors.New("timing.debounce must be positive"))
	}
	if c.Timing.Settle < 0 {
		errs = append(errs, errors.New("timing.settle must not be negative"))
	}
	if c.Timing.Heartbeat < 0 {
		errs = append(errs, errors.New("timing.heartbeat must not be negative"))
	}

	if c.Display.Width <= logic.CursorSize || c.Display.Height <= logic.CursorSize {
		errs = append(errs, fmt.Errorf("display %dx%d smaller than the cursor", c.Display.Width, c.Display.Height))
	}
	if c.Display.Width > 512 || c.Display.Height > 512 {
		errs = append(errs, fmt.Errorf("display %dx%d too large", c.Display.Width, c.Display.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %v", errs)
	}
	return nil
}
