//go:build !linux && !tinygo

package gpio

import "errors"

// RealController is not available on non-Linux platforms.
type RealController struct{}

// NewRealController returns an error on non-Linux platforms.
func NewRealController(chipName string) (*RealController, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (c *RealController) ConfigureInput(line Line, pull Pull) error {
	return errors.New("gpio: not supported")
}

func (c *RealController) ConfigureOutput(line Line, initial bool) error {
	return errors.New("gpio: not supported")
}

func (c *RealController) Read(line Line) (bool, error) {
	return false, errors.New("gpio: not supported")
}

func (c *RealController) Write(line Line, high bool) error {
	return errors.New("gpio: not supported")
}

func (c *RealController) OnFallingEdge(line Line, handler EdgeHandler) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (c *RealController) Close() error {
	return nil
}
