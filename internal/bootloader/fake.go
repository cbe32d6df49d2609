package bootloader

import "sync/atomic"

// FakeEntry records bootloader entry for tests. Enter returns EnterError,
// which is nil by default, so the caller sees a "successful" return.
type FakeEntry struct {
	entered atomic.Int32

	// EnterError, if set, will be returned by Enter.
	EnterError error
}

func (f *FakeEntry) Enter() error {
	f.entered.Add(1)
	return f.EnterError
}

// Entered returns how many times Enter was called.
func (f *FakeEntry) Entered() int {
	return int(f.entered.Load())
}
