// Package analog reads the joystick axes as 12-bit samples.
package analog

// Sampler is a multiplexed analog-to-digital converter. A channel must be
// selected before each Read.
type Sampler interface {
	Select(channel int) error

	// Read returns the selected channel as a sample in [0, 4095].
	Read() (uint16, error)
}

// Joystick axis channels.
const (
	ChannelY = 0
	ChannelX = 1
)

// MaxSample is the full-scale 12-bit reading.
const MaxSample = 4095

// Scale converts a reading in [0, full] to [0, MaxSample], clamping values
// outside the range.
func Scale(v, full int64) uint16 {
	if full <= 0 || v <= 0 {
		return 0
	}
	if v >= full {
		return MaxSample
	}
	return uint16(v * MaxSample / full)
}
