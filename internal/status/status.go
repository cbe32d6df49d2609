// Package status holds the HMI state shared between the edge handlers and the
// polling loop. Every field is a single atomic word so it can be written from
// interrupt context without a lock.
package status

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sweeney/joyhmi/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	Board       string
	IntervalMs  int64
	DebounceMs  int64
	SettleMs    int64
	HeartbeatMs int64
}

// Snapshot is a point-in-time view of HMI state.
// It is a value type and safe to use after it is taken.
type Snapshot struct {
	LEDsEnabled bool
	Green       bool
	Border      logic.BorderStyle
	Cursor      logic.Cursor
	DutyRed     uint8
	DutyBlue    uint8
	Reflash     bool

	Accepted [logic.NumButtons]uint32
	Rejected [logic.NumButtons]uint32

	HandlerErrors uint32
	Iterations    uint64
	StartTime     time.Time
	Now           time.Time
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// String formats the snapshot for a single log line.
func (s Snapshot) String() string {
	return fmt.Sprintf("uptime=%v leds=%v border=%s green=%v cursor=(%d,%d) red=%d blue=%d iterations=%d accepted=%v rejected=%v handler_errors=%d",
		s.Uptime().Round(time.Second), s.LEDsEnabled, s.Border, s.Green, s.Cursor.X, s.Cursor.Y,
		s.DutyRed, s.DutyBlue, s.Iterations, s.Accepted, s.Rejected, s.HandlerErrors)
}

// Shared is the process-wide HMI state. It is created once at startup and
// lives for the lifetime of the process.
type Shared struct {
	reflash     atomic.Bool
	ledsEnabled atomic.Bool
	green       atomic.Bool
	border      atomic.Uint32

	cursorX  atomic.Int32
	cursorY  atomic.Int32
	dutyRed  atomic.Uint32
	dutyBlue atomic.Uint32

	gates         [logic.NumButtons]*logic.Gate
	handlerErrors atomic.Uint32
	iterations    atomic.Uint64

	startTime time.Time
	config    Config
}

// NewShared creates the shared state with LEDs enabled, the green indicator
// off, a rectangular border and the cursor at its resting position.
func NewShared(startTime time.Time, cfg Config, width int16) *Shared {
	s := &Shared{startTime: startTime, config: cfg}
	s.ledsEnabled.Store(true)
	s.border.Store(uint32(logic.BorderRectangular))
	rest := logic.RestingCursor(width)
	s.SetCursor(rest)
	return s
}

// RequestReflash latches the reflash flag.
func (s *Shared) RequestReflash() {
	s.reflash.Store(true)
}

// TakeReflash clears the reflash flag and reports whether it was set.
func (s *Shared) TakeReflash() bool {
	return s.reflash.Swap(false)
}

// ToggleLEDs inverts the LED enable state and returns the new value.
func (s *Shared) ToggleLEDs() bool {
	return toggle(&s.ledsEnabled)
}

// LEDsEnabled reports whether the PWM LEDs follow the joystick.
func (s *Shared) LEDsEnabled() bool {
	return s.ledsEnabled.Load()
}

// ToggleGreen inverts the green indicator and returns the new value.
func (s *Shared) ToggleGreen() bool {
	return toggle(&s.green)
}

// Green reports the green indicator state.
func (s *Shared) Green() bool {
	return s.green.Load()
}

// ToggleBorder switches the border style and returns the new style.
func (s *Shared) ToggleBorder() logic.BorderStyle {
	for {
		old := s.border.Load()
		next := logic.BorderStyle(old).Toggle()
		if s.border.CompareAndSwap(old, uint32(next)) {
			return next
		}
	}
}

// Border returns the current border style.
func (s *Shared) Border() logic.BorderStyle {
	return logic.BorderStyle(s.border.Load())
}

// SetCursor records the last drawn cursor position.
func (s *Shared) SetCursor(c logic.Cursor) {
	s.cursorX.Store(int32(c.X))
	s.cursorY.Store(int32(c.Y))
}

// SetDuties records the last duties pushed to the LEDs.
func (s *Shared) SetDuties(red, blue uint8) {
	s.dutyRed.Store(uint32(red))
	s.dutyBlue.Store(uint32(blue))
}

// AttachGate lets snapshots report the trigger counts of a button's gate.
func (s *Shared) AttachGate(b logic.Button, g *logic.Gate) {
	s.gates[b] = g
}

// NoteHandlerError counts a collaborator failure inside an edge handler,
// where logging is not allowed.
func (s *Shared) NoteHandlerError() {
	s.handlerErrors.Add(1)
}

// NoteIteration counts a completed loop iteration.
func (s *Shared) NoteIteration() {
	s.iterations.Add(1)
}

// Snapshot returns a point-in-time copy of the shared state.
// The Now field is set to the current time at the moment of the call.
func (s *Shared) Snapshot() Snapshot {
	snap := Snapshot{
		LEDsEnabled:   s.ledsEnabled.Load(),
		Green:         s.green.Load(),
		Border:        logic.BorderStyle(s.border.Load()),
		Cursor:        logic.Cursor{X: int16(s.cursorX.Load()), Y: int16(s.cursorY.Load())},
		DutyRed:       uint8(s.dutyRed.Load()),
		DutyBlue:      uint8(s.dutyBlue.Load()),
		Reflash:       s.reflash.Load(),
		HandlerErrors: s.handlerErrors.Load(),
		Iterations:    s.iterations.Load(),
		StartTime:     s.startTime,
		Config:        s.config,
	}
	for i, g := range s.gates {
		if g != nil {
			snap.Accepted[i], snap.Rejected[i] = g.Counts()
		}
	}
	snap.Now = time.Now()
	return snap
}

func toggle(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
