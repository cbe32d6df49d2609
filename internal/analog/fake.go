package analog

import (
	"errors"
	"fmt"
	"sync"
)

// FakeSampler is a test double returning scripted samples per channel.
// Each Read consumes the next sample of the selected channel; when a channel's
// script is exhausted the last sample repeats.
type FakeSampler struct {
	mu       sync.Mutex
	samples  map[int][]uint16
	index    map[int]int
	selected int

	// Selects records every selected channel in order.
	Selects []int

	// ReadError, if set, will be returned by Read.
	ReadError error
}

// NewFakeSampler creates a FakeSampler with no samples configured.
func NewFakeSampler() *FakeSampler {
	return &FakeSampler{
		samples:  make(map[int][]uint16),
		index:    make(map[int]int),
		selected: -1,
	}
}

// Script replaces the samples returned for a channel.
func (f *FakeSampler) Script(channel int, samples ...uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples[channel] = samples
	f.index[channel] = 0
}

// Set makes a channel return v from now on.
func (f *FakeSampler) Set(channel int, v uint16) {
	f.Script(channel, v)
}

// Select chooses the channel for the next Read.
func (f *FakeSampler) Select(channel int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = channel
	f.Selects = append(f.Selects, channel)
	return nil
}

// Read returns the next scripted sample of the selected channel.
func (f *FakeSampler) Read() (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if f.selected < 0 {
		return 0, errors.New("no channel selected")
	}
	s := f.samples[f.selected]
	if len(s) == 0 {
		return 0, fmt.Errorf("no samples configured for channel %d", f.selected)
	}

	i := f.index[f.selected]
	v := s[i]
	if i < len(s)-1 {
		f.index[f.selected] = i + 1
	}
	if v > MaxSample {
		v = MaxSample
	}
	return v, nil
}
