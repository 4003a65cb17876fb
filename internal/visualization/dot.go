// Package visualization renders contact-network snapshots in various
// output formats. It is pull-based: callers take aggregate counts and
// per-node state from the simulation and hand them here, there is no
// callback into the core.
package visualization

import (
	"fmt"
	"strings"

	"github.com/mgraziano/virusnet/internal/sim"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// healthColors maps health states to DOT colors.
var healthColors = map[string]string{
	"infected":    "tomato",
	"resistant":   "mediumseagreen",
	"susceptible": "lightgray",
}

// RenderDOT produces a Graphviz DOT representation of the contact network
// at the snapshot's tick. Edges are undirected and emitted once.
func RenderDOT(snap sim.Snapshot, nodes []sim.NodeState) (string, error) {
	if nodes == nil {
		return "", fmt.Errorf("no per-node state")
	}

	var b strings.Builder
	b.WriteString("graph virusnet {\n")
	fmt.Fprintf(&b, "  label=\"tick %d\";\n", snap.Tick)
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n\n")

	for _, n := range nodes {
		color := healthColors[n.Health]
		if color == "" {
			color = "white"
		}
		fmt.Fprintf(&b, "  n%d [label=\"%d\", fillcolor=%q, pos=\"%d,%d!\"];\n",
			n.ID, n.ID, color, n.X, n.Y)
	}
	b.WriteString("\n")

	// Each undirected edge appears in both endpoints' neighbor lists;
	// emit it only from the lower ID.
	for _, n := range nodes {
		for _, nb := range n.Neighbors {
			if n.ID < nb {
				fmt.Fprintf(&b, "  n%d -- n%d;\n", n.ID, nb)
			}
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// RenderJSON produces a JSON-ready graph representation with nodes and
// edges arrays plus the tick's aggregate counts.
func RenderJSON(snap sim.Snapshot, nodes []sim.NodeState) (map[string]interface{}, error) {
	if nodes == nil {
		return nil, fmt.Errorf("no per-node state")
	}

	nodeList := make([]map[string]interface{}, 0, len(nodes))
	for _, n := range nodes {
		nodeList = append(nodeList, map[string]interface{}{
			"id":     n.ID,
			"x":      n.X,
			"y":      n.Y,
			"health": n.Health,
		})
	}

	edges := make([]map[string]interface{}, 0)
	for _, n := range nodes {
		for _, nb := range n.Neighbors {
			if n.ID < nb {
				edges = append(edges, map[string]interface{}{
					"source": n.ID,
					"target": nb,
				})
			}
		}
	}

	return map[string]interface{}{
		"tick":        snap.Tick,
		"infected":    snap.Infected,
		"resistant":   snap.Resistant,
		"susceptible": snap.Susceptible,
		"nodes":       nodeList,
		"edges":       edges,
	}, nil
}
