package display

import (
	"image/color"
	"sync"
)

// Framebuffer is an in-memory monochrome Displayer. The simulator renders
// from it and tests inspect it. Display copies the working buffer to the
// presented one, the way a real panel only changes on a flush.
type Framebuffer struct {
	width  int16
	height int16

	mu        sync.Mutex
	work      []bool
	presented []bool
	flushes   int

	// DisplayError, if set, will be returned by Display.
	DisplayError error
}

// NewFramebuffer creates a blank framebuffer.
func NewFramebuffer(width, height int16) *Framebuffer {
	n := int(width) * int(height)
	return &Framebuffer{
		width:     width,
		height:    height,
		work:      make([]bool, n),
		presented: make([]bool, n),
	}
}

// Size implements drivers.Displayer.
func (f *Framebuffer) Size() (x, y int16) {
	return f.width, f.height
}

// SetPixel implements drivers.Displayer. Out-of-range pixels are ignored.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.mu.Lock()
	f.work[int(y)*int(f.width)+int(x)] = c.R|c.G|c.B != 0
	f.mu.Unlock()
}

// Display implements drivers.Displayer.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DisplayError != nil {
		return f.DisplayError
	}
	copy(f.presented, f.work)
	f.flushes++
	return nil
}

// ClearBuffer blanks the working buffer.
func (f *Framebuffer) ClearBuffer() {
	f.mu.Lock()
	clear(f.work)
	f.mu.Unlock()
}

// Pixel reports whether a pixel is lit in the working buffer.
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.work[int(y)*int(f.width)+int(x)]
}

// Presented returns a copy of the last flushed frame, row-major.
func (f *Framebuffer) Presented() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.presented))
	copy(out, f.presented)
	return out
}

// Flushes returns how many times Display succeeded.
func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

// Lit counts lit pixels in the working buffer.
func (f *Framebuffer) Lit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.work {
		if p {
			n++
		}
	}
	return n
}
