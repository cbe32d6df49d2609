// Package display draws the HMI frame onto a monochrome framebuffer.
// Drawing only touches the buffer; nothing reaches the panel until Flush.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Default panel geometry (128x64 SSD1306).
const (
	DefaultWidth  = 128
	DefaultHeight = 64
)

var (
	on  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	off = color.RGBA{}
)

func colour(lit bool) color.RGBA {
	if lit {
		return on
	}
	return off
}

// bufferClearer is implemented by drivers that can wipe their buffer without
// a pixel-by-pixel pass, such as the tinygo ssd1306 driver.
type bufferClearer interface {
	ClearBuffer()
}

// Surface wraps a Displayer with the primitives the control loop uses.
type Surface struct {
	dev    drivers.Displayer
	width  int16
	height int16
}

// NewSurface creates a surface over dev.
func NewSurface(dev drivers.Displayer) *Surface {
	w, h := dev.Size()
	return &Surface{dev: dev, width: w, height: h}
}

// Size returns the panel size in pixels.
func (s *Surface) Size() (width, height int16) {
	return s.width, s.height
}

// Clear fills the whole buffer with one colour.
func (s *Surface) Clear(lit bool) {
	if c, ok := s.dev.(bufferClearer); ok && !lit {
		c.ClearBuffer()
		return
	}
	tinydraw.FilledRectangle(s.dev, 0, 0, s.width, s.height, colour(lit))
}

// DrawRect draws an outlined or filled rectangle.
func (s *Surface) DrawRect(x, y, w, h int16, lit, fill bool) {
	if fill {
		tinydraw.FilledRectangle(s.dev, x, y, w, h, colour(lit))
		return
	}
	tinydraw.Rectangle(s.dev, x, y, w, h, colour(lit))
}

// DrawCircle draws an outlined circle.
func (s *Surface) DrawCircle(cx, cy, r int16, lit bool) {
	tinydraw.Circle(s.dev, cx, cy, r, colour(lit))
}

// Flush pushes the buffer to the panel.
func (s *Surface) Flush() error {
	return s.dev.Display()
}
