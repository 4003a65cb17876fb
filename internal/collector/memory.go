// Package collector provides snapshot collectors: external consumers of
// the per-tick state the simulation emits. The core only produces
// snapshots; everything about retaining, formatting, or persisting them
// lives here.
package collector

import (
	"sync"

	"github.com/mgraziano/virusnet/internal/sim"
)

// Memory retains every snapshot of a run in order. It is the in-process
// equivalent of the model's data collector.
type Memory struct {
	mu    sync.Mutex
	snaps []sim.Snapshot
}

// NewMemory creates an empty in-memory collector.
func NewMemory() *Memory {
	return &Memory{}
}

// Collect appends a snapshot to the series.
func (m *Memory) Collect(s sim.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = append(m.snaps, s)
}

// Series returns a copy of the collected snapshots in tick order.
func (m *Memory) Series() []sim.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sim.Snapshot, len(m.snaps))
	copy(out, m.snaps)
	return out
}

// Len returns the number of collected snapshots.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snaps)
}

// Last returns the most recent snapshot and whether one exists.
func (m *Memory) Last() (sim.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.snaps) == 0 {
		return sim.Snapshot{}, false
	}
	return m.snaps[len(m.snaps)-1], true
}
