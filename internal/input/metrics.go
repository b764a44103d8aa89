package input

import "sync/atomic"

// Metrics counts session activity. Counters are safe to read from any
// goroutine.
type Metrics struct {
	keys             atomic.Uint64
	consumed         atomic.Uint64
	hookConsumptions atomic.Uint64
	timeouts         atomic.Uint64
	switches         atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Keys             uint64
	Consumed         uint64
	HookConsumptions uint64
	Timeouts         uint64
	Switches         uint64
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Keys:             m.keys.Load(),
		Consumed:         m.consumed.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		Timeouts:         m.timeouts.Load(),
		Switches:         m.switches.Load(),
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.keys.Store(0)
	m.consumed.Store(0)
	m.hookConsumptions.Store(0)
	m.timeouts.Store(0)
	m.switches.Store(0)
}
