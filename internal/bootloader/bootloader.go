// Package bootloader hands the device over to its firmware update path.
package bootloader

// Entry enters the bootloader. On success it does not return; an error
// means the handover failed and the caller still owns the device.
type Entry interface {
	Enter() error
}
