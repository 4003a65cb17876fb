package collector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mgraziano/virusnet/internal/sim"
)

// newRecorder creates a recorder on an isolated database.
func newRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newRecorder(t)
	ctx := context.Background()

	cfg := sim.DefaultConfig()
	if err := r.BeginRun(ctx, 42, cfg); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	r.Collect(snap(1, 3, 0, 147))
	r.Collect(snap(2, 7, 1, 142))
	if err := r.Err(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	series, err := r.Ticks(ctx, r.RunID())
	if err != nil {
		t.Fatalf("Ticks: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	if series[0] != snap(1, 3, 0, 147) {
		t.Errorf("tick 1 = %+v", series[0])
	}
	if series[1] != snap(2, 7, 1, 142) {
		t.Errorf("tick 2 = %+v", series[1])
	}
}

func TestSQLiteRecorder_Runs(t *testing.T) {
	r := newRecorder(t)
	ctx := context.Background()

	if err := r.BeginRun(ctx, 1, sim.DefaultConfig()); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	first := r.RunID()
	if err := r.BeginRun(ctx, 2, sim.DefaultConfig()); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	runs, err := r.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	// Most recent first.
	if runs[0].Seed != 2 || runs[1].Seed != 1 {
		t.Errorf("seeds = %d, %d, want 2, 1", runs[0].Seed, runs[1].Seed)
	}
	if runs[1].ID != first {
		t.Errorf("first run id = %d, want %d", runs[1].ID, first)
	}
}

func TestSQLiteRecorder_CollectBeforeBeginRun(t *testing.T) {
	r := newRecorder(t)

	r.Collect(snap(1, 1, 0, 9))

	if r.Err() == nil {
		t.Error("expected error for Collect before BeginRun")
	}
}

func TestSQLiteRecorder_SeparateRunsSeparateSeries(t *testing.T) {
	r := newRecorder(t)
	ctx := context.Background()

	if err := r.BeginRun(ctx, 1, sim.DefaultConfig()); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	firstID := r.RunID()
	r.Collect(snap(1, 5, 0, 5))

	if err := r.BeginRun(ctx, 2, sim.DefaultConfig()); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	r.Collect(snap(1, 9, 0, 1))

	series, err := r.Ticks(ctx, firstID)
	if err != nil {
		t.Fatalf("Ticks: %v", err)
	}
	if len(series) != 1 || series[0].Infected != 5 {
		t.Errorf("first run series = %+v, want one row with 5 infected", series)
	}
}
