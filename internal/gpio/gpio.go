// Package gpio provides digital IO and falling-edge notification with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The TinyGo implementation uses the RP2040 pin interrupts.
// The fake implementation allows testing without hardware.
package gpio

// Line identifies a GPIO line by its chip offset (BCM/GP numbering).
type Line int

// Pull selects the bias applied to an input line.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// EdgeHandler is called on a falling edge. On hardware it runs in interrupt
// context (or the line watcher goroutine on Linux): it must not block, allocate
// or log.
type EdgeHandler func(line Line)

// Controller configures and drives GPIO lines.
type Controller interface {
	// ConfigureInput requests line as an input with the given bias.
	ConfigureInput(line Line, pull Pull) error

	// ConfigureOutput requests line as an output driven to initial.
	ConfigureOutput(line Line, initial bool) error

	// Read returns the raw level of line (true = high).
	// Buttons are wired active low: pressed reads false.
	Read(line Line) (bool, error)

	// Write drives an output line.
	Write(line Line, high bool) error

	// OnFallingEdge configures line as a pulled-up input and calls handler on
	// every falling edge. Read remains available on the same line.
	OnFallingEdge(line Line, handler EdgeHandler) error

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions of the reference board (GP numbering on the Pico).
const (
	DefaultButtonA        Line = 5
	DefaultButtonB        Line = 6
	DefaultJoystickButton Line = 22
	DefaultGreenLED       Line = 11
	DefaultBlueLED        Line = 12
	DefaultRedLED         Line = 13
)
