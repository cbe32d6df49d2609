//go:build unix && !tinygo

package bootloader

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Exec replaces the running process with an update command, the Linux
// counterpart of rebooting into USB mass-storage mode.
type Exec struct {
	Path string
	Args []string
}

func (e Exec) Enter() error {
	if e.Path == "" {
		return errors.New("no update command configured")
	}
	argv := append([]string{e.Path}, e.Args...)
	if err := syscall.Exec(e.Path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", e.Path, err)
	}
	return nil
}
