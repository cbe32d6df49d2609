//go:build !tinygo

// Package sim runs the HMI against an in-memory board shown in a desktop
// window. Keys A, B and J (or Space) are the buttons; the arrow keys or a
// mouse drag move the joystick.
package sim

import (
	"image"
	"image/color"

	"github.com/sweeney/joyhmi/internal/analog"
	"github.com/sweeney/joyhmi/internal/board"
	"github.com/sweeney/joyhmi/internal/gpio"
	"github.com/sweeney/joyhmi/internal/input"
	"github.com/sweeney/joyhmi/internal/logic"
)

const centre = analog.MaxSample / 2

var (
	pixelOn  = color.RGBA{R: 0x9f, G: 0xdf, B: 0xff, A: 0xff}
	pixelOff = color.RGBA{R: 0x08, G: 0x0c, B: 0x10, A: 0xff}
)

// Model translates user input into board stimuli and board outputs into
// pixels. It has no window dependency.
type Model struct {
	board *board.Sim
	lines input.Lines

	held [logic.NumButtons]bool
}

// NewModel wraps a simulated board.
func NewModel(b *board.Sim, lines input.Lines) *Model {
	return &Model{board: b, lines: lines}
}

func (m *Model) line(b logic.Button) gpio.Line {
	switch b {
	case logic.ButtonA:
		return m.lines.ButtonA
	case logic.ButtonB:
		return m.lines.ButtonB
	}
	return m.lines.Joystick
}

// SetButton applies a key state. A press drives the line low and fires its
// falling edge once; holding the key keeps the line low.
func (m *Model) SetButton(b logic.Button, down bool) {
	if down == m.held[b] {
		return
	}
	m.held[b] = down
	if down {
		m.board.Pins.Press(m.line(b))
		return
	}
	m.board.Pins.Release(m.line(b))
}

// SetStick sets both joystick axes.
func (m *Model) SetStick(x, y uint16) {
	m.board.Joystick.Set(analog.ChannelX, x)
	m.board.Joystick.Set(analog.ChannelY, y)
}

// StickFromKeys returns the axes for a set of held arrow keys. Released axes
// spring back to the centre. Up raises Y.
func StickFromKeys(left, right, up, down bool) (x, y uint16) {
	x, y = centre, centre
	switch {
	case left && !right:
		x = 0
	case right && !left:
		x = analog.MaxSample
	}
	switch {
	case up && !down:
		y = analog.MaxSample
	case down && !up:
		y = 0
	}
	return x, y
}

// StickFromPoint maps a point on the w x h panel to axes, the inverse of the
// cursor mapping: the left edge is X=0 and the top edge is Y=MaxSample.
func StickFromPoint(px, py, w, h int) (x, y uint16) {
	px = clampInt(px, 0, w-1)
	py = clampInt(py, 0, h-1)
	x = uint16(px * analog.MaxSample / max(w-1, 1))
	y = uint16(analog.MaxSample - py*analog.MaxSample/max(h-1, 1))
	return x, y
}

// Render draws the last flushed frame into dst, which must match the panel size.
func (m *Model) Render(dst *image.RGBA) {
	fb := m.board.Framebuffer
	w, _ := fb.Size()
	for i, lit := range fb.Presented() {
		c := pixelOff
		if lit {
			c = pixelOn
		}
		dst.SetRGBA(i%int(w), i/int(w), c)
	}
}

// LEDs returns the current LED outputs.
func (m *Model) LEDs() (red, blue uint8, green bool) {
	red = m.board.LEDs.Duty(m.lines.Red)
	blue = m.board.LEDs.Duty(m.lines.Blue)
	green = m.board.Pins.Level(m.lines.Green)
	return red, blue, green
}

// Rebooted reports whether the HMI handed over to the bootloader.
func (m *Model) Rebooted() bool {
	return m.board.Bootloader.Entered() > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
