//go:build !linux && !tinygo

package board

import (
	"errors"

	"github.com/sweeney/joyhmi/internal/config"
)

// OpenLinux is not available on this platform.
func OpenLinux(cfg *config.Config) (*Board, error) {
	return nil, errors.New("linux board requires linux")
}
