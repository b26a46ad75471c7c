package control

import (
	"sync"
	"time"

	"github.com/xprotocol/mysqlx-engine/protocol"
)

// Metrics is a thread-safe registry of engine counters, periodically
// refreshed from one or more protocol.Engine snapshots.
//
// Grounded on the teacher's control/metrics.go MetricsRegistry, same
// map-of-any-plus-timestamp shape, specialized here to pull from
// Engine.Stats instead of being set by arbitrary callers.
type Metrics struct {
	mu      sync.RWMutex
	values  map[string]int64
	updated time.Time
}

// NewMetrics creates an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{values: make(map[string]int64)}
}

// Observe folds one engine's Stats snapshot into the registry, keyed
// by name so multiple engines can be tracked side by side (e.g.
// "conn42.frames_sent").
func (m *Metrics) Observe(name string, e *protocol.Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range e.Stats() {
		m.values[name+"."+k] = v
	}
	m.updated = time.Now()
}

// Snapshot returns a copy of every counter currently recorded.
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// LastUpdated reports when Observe was last called.
func (m *Metrics) LastUpdated() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updated
}
