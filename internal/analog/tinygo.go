//go:build tinygo && rp2040

package analog

import (
	"fmt"
	"machine"
)

// PicoADC samples the RP2040 ADC inputs; channel n is pin GP26+n.
type PicoADC struct {
	adcs     map[int]machine.ADC
	selected int
}

// NewPicoADC initialises the ADC and the given channels.
func NewPicoADC(channels ...int) (*PicoADC, error) {
	machine.InitADC()
	p := &PicoADC{adcs: make(map[int]machine.ADC), selected: -1}
	for _, ch := range channels {
		if ch < 0 || ch > 3 {
			return nil, fmt.Errorf("adc: invalid channel %d", ch)
		}
		adc := machine.ADC{Pin: machine.ADC0 + machine.Pin(ch)}
		adc.Configure(machine.ADCConfig{Resolution: 12})
		p.adcs[ch] = adc
	}
	return p, nil
}

func (p *PicoADC) Select(channel int) error {
	if _, ok := p.adcs[channel]; !ok {
		return fmt.Errorf("adc: channel %d not configured", channel)
	}
	p.selected = channel
	return nil
}

// Read returns the selected input. machine.ADC.Get is left-aligned to 16
// bits, so the 12-bit conversion is the top twelve.
func (p *PicoADC) Read() (uint16, error) {
	adc, ok := p.adcs[p.selected]
	if !ok {
		return 0, fmt.Errorf("adc: no channel selected")
	}
	return adc.Get() >> 4, nil
}
