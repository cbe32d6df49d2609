//go:build tinygo && rp2040

package bootloader

import "machine"

// ROM reboots the RP2040 into its USB mass-storage bootloader.
type ROM struct{}

func (ROM) Enter() error {
	machine.EnterBootloader()
	return nil
}
