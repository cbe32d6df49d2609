//go:build !tinygo

package analog

import (
	"fmt"

	panalog "periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADS1115 samples the joystick through an ADS1115 on an I2C bus.
// Readings are rescaled from volts to 12 bits against the joystick's supply.
type ADS1115 struct {
	dev      *ads1x15.Dev
	pins     map[int]ads1x15.PinADC
	supply   physic.ElectricPotential
	selected int
}

// ADS1115Config selects the converter and the joystick supply voltage.
type ADS1115Config struct {
	Address  uint16
	SupplyMV int
	Channels []int
	Rate     physic.Frequency
}

// NewADS1115 opens the converter and prepares one pin per channel.
func NewADS1115(bus i2c.Bus, cfg ADS1115Config) (*ADS1115, error) {
	opts := ads1x15.DefaultOpts
	if cfg.Address != 0 {
		opts.I2cAddress = cfg.Address
	}
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("open ads1115: %w", err)
	}

	rate := cfg.Rate
	if rate == 0 {
		rate = 100 * physic.Hertz
	}
	supply := physic.ElectricPotential(cfg.SupplyMV) * physic.MilliVolt

	a := &ADS1115{dev: dev, pins: make(map[int]ads1x15.PinADC), supply: supply, selected: -1}
	for _, ch := range cfg.Channels {
		c, err := channelFor(ch)
		if err != nil {
			a.Halt()
			return nil, err
		}
		pin, err := dev.PinForChannel(c, supply, rate, ads1x15.BestQuality)
		if err != nil {
			a.Halt()
			return nil, fmt.Errorf("ads1115 channel %d: %w", ch, err)
		}
		a.pins[ch] = pin
	}
	return a, nil
}

// Select chooses the channel for the next Read.
func (a *ADS1115) Select(channel int) error {
	if _, ok := a.pins[channel]; !ok {
		return fmt.Errorf("ads1115: channel %d not configured", channel)
	}
	a.selected = channel
	return nil
}

// Read converts the selected channel.
func (a *ADS1115) Read() (uint16, error) {
	pin, ok := a.pins[a.selected]
	if !ok {
		return 0, fmt.Errorf("ads1115: no channel selected")
	}
	s, err := pin.Read()
	if err != nil {
		return 0, fmt.Errorf("ads1115 channel %d: %w", a.selected, err)
	}
	return sampleTo12Bit(s, a.supply), nil
}

// Halt stops all continuous conversions.
func (a *ADS1115) Halt() error {
	var errs []error
	for ch, pin := range a.pins {
		if err := pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt channel %d: %w", ch, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("halt errors: %v", errs)
	}
	return nil
}

func sampleTo12Bit(s panalog.Sample, supply physic.ElectricPotential) uint16 {
	return Scale(int64(s.V), int64(supply))
}

func channelFor(ch int) (ads1x15.Channel, error) {
	switch ch {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("ads1115: invalid channel %d", ch)
}
