// Package scenario provides a test harness for validating emergent
// dynamics of full simulation runs.
//
// Scenarios exercise the real Simulation, network builder, and random
// source — no mocks. Each scenario pins a seed, runs a configurable
// number of ticks while collecting every snapshot, and hands the series
// to property-based assertions.
package scenario

import (
	"context"
	"testing"

	"github.com/mgraziano/virusnet/internal/collector"
	"github.com/mgraziano/virusnet/internal/sim"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name   string
	Config sim.Config

	// Ticks overrides Config.Ticks when positive.
	Ticks int
}

// Result captures the outcome of a scenario run.
type Result struct {
	Seed       int64
	Series     []sim.Snapshot
	Final      sim.Snapshot
	FinalState sim.State

	// NodeStates is the per-node view at the end of the run.
	NodeStates []sim.NodeState
}

// Run executes the scenario and returns the collected results.
func Run(t *testing.T, sc Scenario) Result {
	t.Helper()

	s, err := sim.New(sc.Config)
	if err != nil {
		t.Fatalf("scenario %s: New: %v", sc.Name, err)
	}

	mem := collector.NewMemory()
	s.AttachCollector(mem)

	ticks := sc.Config.Ticks
	if sc.Ticks > 0 {
		ticks = sc.Ticks
	}

	final, err := s.Run(context.Background(), ticks)
	if err != nil {
		t.Fatalf("scenario %s: Run: %v", sc.Name, err)
	}

	return Result{
		Seed:       s.Seed(),
		Series:     mem.Series(),
		Final:      final,
		FinalState: s.State(),
		NodeStates: s.NodeStates(),
	}
}
