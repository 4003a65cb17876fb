// Package graph holds the contact network: nodes with positions and health
// states, and the builder that grows the spatially-clustered edge set.
package graph

import (
	"math"
	"sort"
)

// Health is a node's epidemic state. Exactly one state holds at a time.
type Health int

const (
	Susceptible Health = iota
	Infected
	Resistant
)

// String returns the lowercase state name.
func (h Health) String() string {
	switch h {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Resistant:
		return "resistant"
	default:
		return "unknown"
	}
}

// Position is a node's fixed 2D coordinate, drawn once at creation.
type Position struct {
	X int
	Y int
}

// Node is a population member. The ID and position are immutable after
// creation; health state and check timer mutate through the methods below.
type Node struct {
	ID         int
	Pos        Position
	Health     Health
	CheckTimer int

	neighbors map[int]*Node
}

// NewNode creates a susceptible node at pos. checkTimer phases the node's
// health checks and should be drawn from [0, checkFrequency).
func NewNode(id int, pos Position, checkTimer int) *Node {
	return &Node{
		ID:         id,
		Pos:        pos,
		Health:     Susceptible,
		CheckTimer: checkTimer,
		neighbors:  make(map[int]*Node),
	}
}

// Link adds an undirected edge between n and other. Self-links are ignored
// and re-linking an existing neighbor is a no-op, so the neighbor relation
// stays symmetric and simple.
func (n *Node) Link(other *Node) {
	if other == nil || other.ID == n.ID {
		return
	}
	n.neighbors[other.ID] = other
	other.neighbors[n.ID] = n
}

// HasNeighbor reports whether id is in n's neighbor set.
func (n *Node) HasNeighbor(id int) bool {
	_, ok := n.neighbors[id]
	return ok
}

// Degree returns the size of n's neighbor set.
func (n *Node) Degree() int {
	return len(n.neighbors)
}

// Neighbors returns n's neighbors ordered by ID. The stable order matters:
// stochastic phases permute this slice, and map iteration order would break
// run reproducibility.
func (n *Node) Neighbors() []*Node {
	out := make([]*Node, 0, len(n.neighbors))
	for _, nb := range n.neighbors {
		out = append(out, nb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NeighborIDs returns the IDs of n's neighbors in ascending order.
func (n *Node) NeighborIDs() []int {
	out := make([]int, 0, len(n.neighbors))
	for id := range n.neighbors {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Infect marks the node infected. Called both for outbreak seeding and for
// spread; infecting an already-infected node is a no-op.
func (n *Node) Infect() {
	n.Health = Infected
}

// BecomeSusceptible moves an infected node back to susceptible after a
// failed resistance draw.
func (n *Node) BecomeSusceptible() {
	n.Health = Susceptible
}

// BecomeResistant moves an infected node to resistant. Resistant is
// terminal: spread skips resistant nodes, so it never flips back.
func (n *Node) BecomeResistant() {
	n.Health = Resistant
}

// AdvanceTimer increments the check timer, wrapping to zero when it reaches
// frequency. A node is eligible for a health check on ticks where the
// timer is zero.
func (n *Node) AdvanceTimer(frequency int) {
	n.CheckTimer++
	if n.CheckTimer >= frequency {
		n.CheckTimer = 0
	}
}

// DistanceTo returns the Euclidean distance between the two node positions.
// Only network construction uses this; the epidemic update is purely
// topological.
func (n *Node) DistanceTo(other *Node) float64 {
	dx := float64(n.Pos.X - other.Pos.X)
	dy := float64(n.Pos.Y - other.Pos.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
