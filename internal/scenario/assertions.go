package scenario

import "testing"

// AssertPartition asserts that the three counts sum to the population at
// every collected tick.
func AssertPartition(t *testing.T, result Result, population int) {
	t.Helper()
	for _, s := range result.Series {
		if total := s.Infected + s.Resistant + s.Susceptible; total != population {
			t.Errorf("AssertPartition: tick %d: counts sum to %d, want %d", s.Tick, total, population)
		}
	}
}

// AssertResistantMonotonic asserts the resistant count never decreases:
// resistance is terminal, so losing it would be an illegal transition.
func AssertResistantMonotonic(t *testing.T, result Result) {
	t.Helper()
	prev := 0
	for _, s := range result.Series {
		if s.Resistant < prev {
			t.Errorf("AssertResistantMonotonic: tick %d: resistant dropped %d -> %d", s.Tick, prev, s.Resistant)
		}
		prev = s.Resistant
	}
}

// AssertNeighborSymmetry asserts the undirected neighbor relation holds
// both ways for every node in the final per-node state.
func AssertNeighborSymmetry(t *testing.T, result Result) {
	t.Helper()
	byID := make(map[int]map[int]bool, len(result.NodeStates))
	for _, n := range result.NodeStates {
		set := make(map[int]bool, len(n.Neighbors))
		for _, nb := range n.Neighbors {
			set[nb] = true
		}
		byID[n.ID] = set
	}
	for _, n := range result.NodeStates {
		for _, nb := range n.Neighbors {
			if !byID[nb][n.ID] {
				t.Errorf("AssertNeighborSymmetry: %d lists %d but not vice versa", n.ID, nb)
			}
		}
	}
}

// AssertSeriesEqual asserts two runs produced identical snapshot series.
func AssertSeriesEqual(t *testing.T, a, b Result) {
	t.Helper()
	if len(a.Series) != len(b.Series) {
		t.Fatalf("AssertSeriesEqual: lengths differ: %d vs %d", len(a.Series), len(b.Series))
	}
	for i := range a.Series {
		if a.Series[i] != b.Series[i] {
			t.Errorf("AssertSeriesEqual: tick %d: %+v vs %+v", a.Series[i].Tick, a.Series[i], b.Series[i])
		}
	}
}
