// Package logic contains the pure input and mapping core of the HMI.
// This package has NO hardware dependencies (no GPIO, ADC, display, or time.Sleep).
// Time is always injectable as a monotonic millisecond timestamp.
package logic

// Full-scale value of a 12-bit analog sample.
const MaxRaw = 4095

// Deadband thresholds around the joystick's nominal centre (~2048).
// The zone is asymmetric.
const (
	DeadbandLow  = 1800
	DeadbandHigh = 2200
)

// MaxDuty is the PWM wrap value; duties are in [0, MaxDuty].
const MaxDuty = 255

// CursorSize is the edge length of the square cursor in pixels.
const CursorSize = 8

// Button identifies one of the three physical inputs.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonJoystick

	NumButtons = 3
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonJoystick:
		return "JOYSTICK"
	}
	return "UNKNOWN"
}

// EventKind is a logical input event produced by an accepted button edge.
type EventKind uint8

const (
	EventReflashRequested EventKind = iota + 1
	EventLEDToggleRequested
	EventBorderStyleToggleRequested
)

func (k EventKind) String() string {
	switch k {
	case EventReflashRequested:
		return "REFLASH_REQUESTED"
	case EventLEDToggleRequested:
		return "LED_TOGGLE_REQUESTED"
	case EventBorderStyleToggleRequested:
		return "BORDER_STYLE_TOGGLE_REQUESTED"
	}
	return "UNKNOWN"
}

// EventFor returns the logical event a button produces.
func EventFor(b Button) EventKind {
	switch b {
	case ButtonA:
		return EventLEDToggleRequested
	case ButtonB:
		return EventReflashRequested
	case ButtonJoystick:
		return EventBorderStyleToggleRequested
	}
	return 0
}

// BorderStyle selects the frame drawn around the screen.
type BorderStyle uint32

const (
	BorderRectangular BorderStyle = iota
	BorderCircular
)

func (s BorderStyle) String() string {
	if s == BorderCircular {
		return "CIRCULAR"
	}
	return "RECTANGULAR"
}

// Toggle returns the other border style.
func (s BorderStyle) Toggle() BorderStyle {
	if s == BorderCircular {
		return BorderRectangular
	}
	return BorderCircular
}

// Cursor is a screen position in pixels, origin top-left.
type Cursor struct {
	X int16
	Y int16
}

// RestingCursor returns the cursor's position before the first sample.
// Both coordinates derive from the width.
func RestingCursor(width int16) Cursor {
	c := (width - CursorSize) / 2
	return Cursor{X: c, Y: c}
}
