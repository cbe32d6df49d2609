package logic

import "github.com/chewxy/math32"

// ScreenAxis maps a raw sample onto [0, extent] with integer truncation, so
// 0 maps to 0 and MaxRaw maps to extent exactly. Samples above MaxRaw are clamped.
func ScreenAxis(raw uint16, extent int16) int16 {
	if extent <= 0 {
		return 0
	}
	if raw > MaxRaw {
		raw = MaxRaw
	}
	return int16(uint32(raw) * uint32(extent) / MaxRaw)
}

// Duty maps a raw sample to a PWM duty cycle with an asymmetric dead zone:
// nothing inside [DeadbandLow, DeadbandHigh], then a linear ramp outward.
// A disabled LED pair always gets zero.
func Duty(raw uint16, enabled bool) uint8 {
	if !enabled {
		return 0
	}
	var d float32
	switch {
	case raw > DeadbandHigh:
		d = float32(raw-DeadbandHigh) / DeadbandHigh * MaxDuty
	case raw < DeadbandLow:
		d = float32(DeadbandLow-raw) / DeadbandLow * MaxDuty
	default:
		return 0
	}
	d = math32.Round(d)
	if d > MaxDuty {
		return MaxDuty
	}
	return uint8(d)
}

// CursorFor returns the top-left corner of the cursor square for a pair of
// samples. The Y axis is inverted: a larger raw value moves the cursor up.
func CursorFor(x, y uint16, width, height int16) Cursor {
	if y > MaxRaw {
		y = MaxRaw
	}
	return Cursor{
		X: ScreenAxis(x, width-CursorSize),
		Y: ScreenAxis(MaxRaw-y, height-CursorSize),
	}
}
