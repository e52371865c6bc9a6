// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Counter registry for runtime monitoring. Counters are created on
// first use and safe to bump from any thread.

package control

import (
	"github.com/llxisdsh/pb"

	"github.com/momentics/corun/core/atomics"
)

// Counter names reported by the scheduler.
const (
	MetricSpawns    = "coro.spawns"
	MetricSwitches  = "coro.switches"
	MetricParks     = "coro.parks"
	MetricWakes     = "coro.wakes"
	MetricTimeouts  = "coro.timeouts"
	MetricDeadlocks = "coro.deadlocks"
)

// Metrics holds named monotonic counters.
type Metrics struct {
	counters pb.MapOf[string, *atomics.Uint64]
}

// NewMetrics creates an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc bumps a counter by one.
func (m *Metrics) Inc(name string) {
	m.Add(name, 1)
}

// Add bumps a counter by delta.
func (m *Metrics) Add(name string, delta uint64) {
	c, _ := m.counters.LoadOrStore(name, &atomics.Uint64{})
	c.FetchAdd(delta, atomics.Relaxed)
}

// Get returns a counter's current value (zero if never bumped).
func (m *Metrics) Get(name string) uint64 {
	c, ok := m.counters.Load(name)
	if !ok {
		return 0
	}
	return c.Load(atomics.Acquire)
}

// Snapshot returns the latest values of all counters.
func (m *Metrics) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	m.counters.Range(func(name string, c *atomics.Uint64) bool {
		out[name] = c.Load(atomics.Acquire)
		return true
	})
	return out
}
