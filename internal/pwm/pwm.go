// Package pwm drives the two joystick-following status LEDs.
package pwm

import "github.com/sweeney/joyhmi/internal/gpio"

// Output sets 8-bit duty cycles on PWM-capable lines.
// Set may be called from an edge handler and from the polling loop.
type Output interface {
	Configure(line gpio.Line) error
	Set(line gpio.Line, duty uint8) error
}

// Wrap is the counter top; a duty of Wrap is fully on.
const Wrap = 255
