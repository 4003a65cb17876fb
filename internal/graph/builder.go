package graph

import (
	"errors"
	"math"

	"github.com/mgraziano/virusnet/internal/rng"
)

// ErrNetworkIncomplete reports that construction ran out of eligible
// anchors before reaching the target edge count. The caller may proceed
// with the sparser network or abort the run.
var ErrNetworkIncomplete = errors.New("network incomplete: no eligible anchors before target edge count")

// Builder grows a spatially-clustered contact network: a random anchor is
// repeatedly joined to its nearest not-yet-connected node until the target
// edge count is reached.
type Builder struct {
	rng       *rng.Source
	avgDegree float64
}

// NewBuilder creates a builder targeting the given average node degree.
func NewBuilder(r *rng.Source, avgDegree float64) *Builder {
	return &Builder{rng: r, avgDegree: avgDegree}
}

// TargetEdges returns the total edge count implied by an average degree
// over n nodes.
func TargetEdges(avgDegree float64, n int) int {
	return int(math.Round(avgDegree * float64(n) / 2))
}

// Build adds undirected edges to nodes until TargetEdges is reached.
//
// Each iteration draws an anchor uniformly from the nodes that still have
// at least one unconnected candidate, then links it to the closest such
// candidate (ties broken by population order). Drawing only from eligible
// anchors guarantees every iteration adds exactly one edge, so the loop
// cannot spin on saturated nodes; if no eligible anchor remains short of
// the target, Build returns ErrNetworkIncomplete.
func (b *Builder) Build(nodes []*Node) error {
	target := TargetEdges(b.avgDegree, len(nodes))

	for edges := b.edgeCount(nodes); edges < target; edges++ {
		eligible := make([]int, 0, len(nodes))
		for i, n := range nodes {
			if n.Degree() < len(nodes)-1 {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			return ErrNetworkIncomplete
		}

		anchor := nodes[eligible[b.rng.Intn(len(eligible))]]
		anchor.Link(b.nearestCandidate(anchor, nodes))
	}
	return nil
}

// nearestCandidate returns the closest node not yet connected to anchor.
// Callers only pass anchors known to have a candidate.
func (b *Builder) nearestCandidate(anchor *Node, nodes []*Node) *Node {
	var best *Node
	var bestDist float64
	for _, cand := range nodes {
		if cand.ID == anchor.ID || anchor.HasNeighbor(cand.ID) {
			continue
		}
		d := anchor.DistanceTo(cand)
		if best == nil || d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best
}

// edgeCount returns the number of undirected edges currently in the graph.
func (b *Builder) edgeCount(nodes []*Node) int {
	sum := 0
	for _, n := range nodes {
		sum += n.Degree()
	}
	return sum / 2
}
