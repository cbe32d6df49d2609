package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/joyhmi/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	LEDsEnabled   bool         `json:"leds_enabled"`
	Green         bool         `json:"green"`
	Border        string       `json:"border"`
	Cursor        CursorJSON   `json:"cursor"`
	Duty          DutyJSON     `json:"duty"`
	Reflash       bool         `json:"reflash_pending"`
	Buttons       []ButtonJSON `json:"buttons"`
	HandlerErrors uint32       `json:"handler_errors"`
	Iterations    uint64       `json:"iterations"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Config        ConfigJSON   `json:"config"`
}

// CursorJSON is the JSON representation of the cursor position.
type CursorJSON struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// DutyJSON is the JSON representation of the LED duties.
type DutyJSON struct {
	Red  uint8 `json:"red"`
	Blue uint8 `json:"blue"`
}

// ButtonJSON reports trigger counts for one button.
type ButtonJSON struct {
	Name     string `json:"name"`
	Accepted uint32 `json:"accepted"`
	Rejected uint32 `json:"rejected"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Board       string `json:"board"`
	IntervalMs  int64  `json:"interval_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	SettleMs    int64  `json:"settle_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		LEDsEnabled:   snap.LEDsEnabled,
		Green:         snap.Green,
		Border:        snap.Border.String(),
		Cursor:        CursorJSON{X: snap.Cursor.X, Y: snap.Cursor.Y},
		Duty:          DutyJSON{Red: snap.DutyRed, Blue: snap.DutyBlue},
		Reflash:       snap.Reflash,
		HandlerErrors: snap.HandlerErrors,
		Iterations:    snap.Iterations,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			Board:       snap.Config.Board,
			IntervalMs:  snap.Config.IntervalMs,
			DebounceMs:  snap.Config.DebounceMs,
			SettleMs:    snap.Config.SettleMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
		},
	}
	for b := logic.Button(0); b < logic.NumButtons; b++ {
		inner.Buttons = append(inner.Buttons, ButtonJSON{
			Name:     b.String(),
			Accepted: snap.Accepted[b],
			Rejected: snap.Rejected[b],
		})
	}
	return inner
}

// FormatJSON returns the indented JSON status (no event).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the compact JSON status tagged with an event name.
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
