package logic

import (
	"sync/atomic"
	"time"
)

// DefaultWindow is the refractory window applied to every button.
const DefaultWindow = 200 * time.Millisecond

// Gate rejects repeated triggers inside a refractory window.
//
// TryAccept may be called concurrently from an edge handler and from the polling
// loop on the same Gate; the compare-and-swap on the last timestamp guarantees at
// most one acceptance per window.
type Gate struct {
	windowMs int64
	last     atomic.Int64

	accepted atomic.Uint32
	rejected atomic.Uint32
}

// NewGate creates a gate with the given window. The gate starts out as never
// triggered, so the first trigger at any non-negative timestamp is accepted.
func NewGate(window time.Duration) *Gate {
	g := &Gate{windowMs: window.Milliseconds()}
	g.last.Store(-g.windowMs)
	return g
}

// TryAccept reports whether a trigger at nowMs is outside the window of the
// last accepted trigger. Only an accepted trigger moves the window.
func (g *Gate) TryAccept(nowMs int64) bool {
	for {
		last := g.last.Load()
		if nowMs-last < g.windowMs {
			g.rejected.Add(1)
			return false
		}
		if g.last.CompareAndSwap(last, nowMs) {
			g.accepted.Add(1)
			return true
		}
	}
}

// Window returns the refractory window.
func (g *Gate) Window() time.Duration {
	return time.Duration(g.windowMs) * time.Millisecond
}

// Counts returns the number of accepted and rejected triggers since creation.
func (g *Gate) Counts() (accepted, rejected uint32) {
	return g.accepted.Load(), g.rejected.Load()
}
