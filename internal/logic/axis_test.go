package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenAxisBounds(t *testing.T) {
	for _, extent := range []int16{1, 56, 120, 127} {
		assert.Equal(t, int16(0), ScreenAxis(0, extent), "extent %d", extent)
		assert.Equal(t, extent, ScreenAxis(MaxRaw, extent), "extent %d", extent)
	}
}

func TestScreenAxisTruncates(t *testing.T) {
	// 2048*120/4095 = 60.01..., 4094*120/4095 = 119.97...
	assert.Equal(t, int16(60), ScreenAxis(2048, 120))
	assert.Equal(t, int16(119), ScreenAxis(4094, 120))
	assert.Equal(t, int16(0), ScreenAxis(34, 120))
	assert.Equal(t, int16(1), ScreenAxis(35, 120))
}

func TestScreenAxisMonotonic(t *testing.T) {
	prev := int16(0)
	for raw := uint16(0); raw <= MaxRaw; raw++ {
		got := ScreenAxis(raw, 56)
		if got < prev {
			t.Fatalf("ScreenAxis(%d) = %d < ScreenAxis(%d) = %d", raw, got, raw-1, prev)
		}
		prev = got
	}
}

func TestScreenAxisClampsOutOfRange(t *testing.T) {
	assert.Equal(t, int16(120), ScreenAxis(65535, 120))
	assert.Equal(t, int16(0), ScreenAxis(4000, 0))
}

func TestDutyDisabled(t *testing.T) {
	for raw := uint16(0); raw <= MaxRaw; raw += 13 {
		if d := Duty(raw, false); d != 0 {
			t.Fatalf("Duty(%d, disabled) = %d, want 0", raw, d)
		}
	}
	assert.Equal(t, uint8(0), Duty(MaxRaw, false))
}

func TestDutyDeadband(t *testing.T) {
	tests := []struct {
		raw  uint16
		want uint8
	}{
		{DeadbandLow, 0},
		{DeadbandHigh, 0},
		{2048, 0},
		{1799, 0},   // 1/1800*255 = 0.14
		{2201, 0},   // 1/2200*255 = 0.12
		{1796, 1},   // 4/1800*255 = 0.57
		{0, 255},    // full deflection low
		{900, 128},  // 900/1800*255 = 127.5
		{4095, 220}, // 1895/2200*255 = 219.65
		{4400, 255}, // out of range input saturates
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Duty(tt.raw, true), "Duty(%d)", tt.raw)
	}
}

func TestCursorFor(t *testing.T) {
	const w, h = 128, 64

	assert.Equal(t, Cursor{X: 0, Y: 56}, CursorFor(0, 0, w, h))
	// Full Y deflection puts the cursor at the top edge.
	assert.Equal(t, Cursor{X: 120, Y: 0}, CursorFor(MaxRaw, MaxRaw, w, h))
	assert.Equal(t, Cursor{X: 60, Y: 28}, CursorFor(2048, 2047, w, h))
}

func TestRestingCursor(t *testing.T) {
	assert.Equal(t, Cursor{X: 60, Y: 60}, RestingCursor(128))
}

func TestEventFor(t *testing.T) {
	assert.Equal(t, EventLEDToggleRequested, EventFor(ButtonA))
	assert.Equal(t, EventReflashRequested, EventFor(ButtonB))
	assert.Equal(t, EventBorderStyleToggleRequested, EventFor(ButtonJoystick))
}

func TestBorderStyleToggle(t *testing.T) {
	assert.Equal(t, BorderCircular, BorderRectangular.Toggle())
	assert.Equal(t, BorderRectangular, BorderCircular.Toggle())
	assert.Equal(t, "CIRCULAR", BorderCircular.String())
}
