package visualization

import (
	"strings"
	"testing"

	"github.com/mgraziano/virusnet/internal/sim"
)

// chainGraph returns counts and per-node state for a 3-node chain 0-1-2
// with node 1 infected.
func chainGraph() (sim.Snapshot, []sim.NodeState) {
	snap := sim.Snapshot{
		Tick:        4,
		Infected:    1,
		Resistant:   0,
		Susceptible: 2,
	}
	nodes := []sim.NodeState{
		{ID: 0, X: 0, Y: 0, Health: "susceptible", Neighbors: []int{1}},
		{ID: 1, X: 5, Y: 5, Health: "infected", Neighbors: []int{0, 2}},
		{ID: 2, X: 9, Y: 9, Health: "susceptible", Neighbors: []int{1}},
	}
	return snap, nodes
}

func TestRenderDOT(t *testing.T) {
	out, err := RenderDOT(chainGraph())
	if err != nil {
		t.Fatalf("RenderDOT: %v", err)
	}

	if !strings.HasPrefix(out, "graph virusnet {") {
		t.Errorf("missing graph header: %q", out)
	}
	if !strings.Contains(out, `label="tick 4"`) {
		t.Error("missing tick label")
	}
	if !strings.Contains(out, `n1 [label="1", fillcolor="tomato"`) {
		t.Errorf("infected node not colored tomato:\n%s", out)
	}
	if !strings.Contains(out, `fillcolor="lightgray"`) {
		t.Error("susceptible nodes not colored lightgray")
	}
}

func TestRenderDOT_EdgesEmittedOnce(t *testing.T) {
	out, err := RenderDOT(chainGraph())
	if err != nil {
		t.Fatalf("RenderDOT: %v", err)
	}

	if got := strings.Count(out, "n0 -- n1;"); got != 1 {
		t.Errorf("edge 0-1 emitted %d times, want 1", got)
	}
	if strings.Contains(out, "n1 -- n0") {
		t.Error("edge 0-1 also emitted in reverse")
	}
	if got := strings.Count(out, " -- "); got != 2 {
		t.Errorf("total edges = %d, want 2", got)
	}
}

func TestRenderDOT_UnknownHealthFallsBack(t *testing.T) {
	snap, nodes := chainGraph()
	nodes[0].Health = "zombie"

	out, err := RenderDOT(snap, nodes)
	if err != nil {
		t.Fatalf("RenderDOT: %v", err)
	}
	if !strings.Contains(out, `fillcolor="white"`) {
		t.Error("unknown health should fall back to white")
	}
}

func TestRenderDOT_NoNodeState(t *testing.T) {
	if _, err := RenderDOT(sim.Snapshot{Tick: 1}, nil); err == nil {
		t.Error("expected error for missing node state")
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(chainGraph())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	if out["tick"] != 4 {
		t.Errorf("tick = %v, want 4", out["tick"])
	}
	nodes, ok := out["nodes"].([]map[string]interface{})
	if !ok || len(nodes) != 3 {
		t.Fatalf("nodes = %v", out["nodes"])
	}
	if nodes[1]["health"] != "infected" {
		t.Errorf("node 1 health = %v", nodes[1]["health"])
	}
	edges, ok := out["edges"].([]map[string]interface{})
	if !ok || len(edges) != 2 {
		t.Fatalf("edges = %v, want 2 undirected edges", out["edges"])
	}
}

func TestRenderJSON_NoNodeState(t *testing.T) {
	if _, err := RenderJSON(sim.Snapshot{}, nil); err == nil {
		t.Error("expected error for missing node state")
	}
}
