//go:build !tinygo && !cgo

package sim

import "errors"

func RunWindow(_ *Model, _ string) error {
	return errors.New("simulator requires cgo (build/run with CGO_ENABLED=1)")
}
