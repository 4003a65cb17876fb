// Package sim drives the epidemic model: it owns the node population,
// runs the per-tick update protocol (spread, health check, bookkeeping),
// and exposes state snapshots for external reporting.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mgraziano/virusnet/internal/graph"
	"github.com/mgraziano/virusnet/internal/rng"
)

// ErrNotReady reports a Step on a simulation whose Setup has not run.
var ErrNotReady = errors.New("simulation not set up")

// State is the simulation lifecycle marker. Exhausted is a soft-terminal
// state, not an error: further steps are legal no-ops.
type State int

const (
	Uninitialized State = iota
	Ready
	Stepping
	Exhausted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Stepping:
		return "stepping"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Simulation is a single-threaded epidemic run over a fixed population.
// Each Step fully resolves its phases before returning; no partial state
// is observable between them.
type Simulation struct {
	cfg        Config
	rng        *rng.Source
	population []*graph.Node
	tick       int
	state      State
	collectors []Collector
	logger     *slog.Logger
}

// New validates cfg and creates an uninitialized simulation. The random
// seed is resolved here — explicit from cfg, otherwise derived from OS
// entropy — so the run is reproducible either way.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := rng.NewSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	return &Simulation{
		cfg:   cfg,
		rng:   rng.New(seed),
		state: Uninitialized,
	}, nil
}

// AttachCollector registers a collector to receive per-tick snapshots.
func (s *Simulation) AttachCollector(c Collector) {
	s.collectors = append(s.collectors, c)
}

// SetLogger attaches an operational logger. Without one the simulation
// runs silently.
func (s *Simulation) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Seed returns the effective random seed of this run.
func (s *Simulation) Seed() int64 {
	return s.rng.Seed()
}

// Config returns the run configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Simulation) State() State {
	return s.state
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int {
	return s.tick
}

// Setup creates the population, grows the contact network, and seeds the
// initial outbreak. It must be called exactly once before stepping.
// ErrNetworkIncomplete from the builder is passed through; the caller may
// treat the sparser network as acceptable or abort.
func (s *Simulation) Setup() error {
	if s.state != Uninitialized {
		return fmt.Errorf("setup already complete (state %s)", s.state)
	}

	s.population = make([]*graph.Node, s.cfg.PopulationSize)
	for id := range s.population {
		pos := graph.Position{
			X: s.rng.Intn(s.cfg.SpaceWidth),
			Y: s.rng.Intn(s.cfg.SpaceHeight),
		}
		s.population[id] = graph.NewNode(id, pos, s.rng.Intn(s.cfg.CheckFrequency))
	}

	if err := graph.NewBuilder(s.rng, s.cfg.AverageNodeDegree).Build(s.population); err != nil {
		return err
	}

	outbreak, err := s.rng.Sample(len(s.population), s.cfg.InitialOutbreakSize)
	if err != nil {
		// Validate bounds the outbreak size, so this is unreachable.
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	for _, idx := range outbreak {
		s.population[idx].Infect()
	}

	s.state = Ready
	if s.logger != nil {
		s.logger.Debug("setup complete",
			"population", len(s.population),
			"edges", s.edgeCount(),
			"outbreak", len(outbreak),
			"seed", s.Seed())
	}
	return nil
}

// Step advances the simulation one tick: spread, health checks, timer
// advance, tick increment, snapshot emission. When no infected node
// remains the simulation parks in Exhausted and the call is a no-op that
// returns the unchanged snapshot. Step cannot fail after a successful
// Setup.
func (s *Simulation) Step() (Snapshot, error) {
	if s.state == Uninitialized {
		return Snapshot{}, ErrNotReady
	}

	if s.countHealth(graph.Infected) == 0 {
		if s.state != Exhausted && s.logger != nil {
			s.logger.Debug("no infected nodes remain", "tick", s.tick)
		}
		s.state = Exhausted
		return s.Snapshot(), nil
	}
	s.state = Stepping

	s.spreadPhase()
	s.healthCheckPhase()
	for _, n := range s.population {
		n.AdvanceTimer(s.cfg.CheckFrequency)
	}
	s.tick++

	snap := s.Snapshot()
	for _, c := range s.collectors {
		c.Collect(snap)
	}
	if s.logger != nil {
		s.logger.Debug("tick complete",
			"tick", snap.Tick,
			"infected", snap.Infected,
			"resistant", snap.Resistant,
			"susceptible", snap.Susceptible)
	}
	return snap, nil
}

// Run executes Setup if needed, then steps up to nTicks times, stopping
// early at exhaustion when configured. It returns the last snapshot.
func (s *Simulation) Run(ctx context.Context, nTicks int) (Snapshot, error) {
	if s.state == Uninitialized {
		if err := s.Setup(); err != nil {
			return Snapshot{}, err
		}
	}

	snap := s.Snapshot()
	for i := 0; i < nTicks; i++ {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		var err error
		if snap, err = s.Step(); err != nil {
			return snap, err
		}
		if s.cfg.StopWhenExhausted && s.state == Exhausted {
			break
		}
	}
	return snap, nil
}

// spreadPhase walks the nodes infected at phase start in random order and
// draws an infection chance for each of their non-resistant neighbors, in
// random order. Nodes infected during the phase are not in the phase-start
// set, so they first transmit on the next tick.
func (s *Simulation) spreadPhase() {
	infected := s.withHealth(graph.Infected)

	for _, i := range s.rng.Perm(len(infected)) {
		src := infected[i]

		targets := make([]*graph.Node, 0, src.Degree())
		for _, nb := range src.Neighbors() {
			if nb.Health != graph.Resistant {
				targets = append(targets, nb)
			}
		}

		for _, j := range s.rng.Perm(len(targets)) {
			// The draw happens for every non-resistant neighbor,
			// already-infected ones included; re-infection is a no-op but
			// consumes the same random value.
			if s.rng.Chance() < s.cfg.VirusSpreadChance {
				targets[j].Infect()
			}
		}
	}
}

// healthCheckPhase resolves infections for nodes whose check timer is due.
// A first draw under RecoveryChance clears the infection; a second draw
// under GainResistanceChance decides resistant versus susceptible. Nodes
// failing the first draw stay infected.
func (s *Simulation) healthCheckPhase() {
	due := make([]*graph.Node, 0)
	for _, n := range s.population {
		if n.Health == graph.Infected && n.CheckTimer == 0 {
			due = append(due, n)
		}
	}

	for _, i := range s.rng.Perm(len(due)) {
		n := due[i]
		if s.rng.Chance() < s.cfg.RecoveryChance {
			if s.rng.Chance() < s.cfg.GainResistanceChance {
				n.BecomeResistant()
			} else {
				n.BecomeSusceptible()
			}
		}
	}
}

// Snapshot returns the aggregate counts at the current tick.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:        s.tick,
		Infected:    s.countHealth(graph.Infected),
		Resistant:   s.countHealth(graph.Resistant),
		Susceptible: s.countHealth(graph.Susceptible),
	}
}

// NodeStates returns the full per-node state in population order, for
// rendering and export.
func (s *Simulation) NodeStates() []NodeState {
	states := make([]NodeState, len(s.population))
	for i, n := range s.population {
		states[i] = NodeState{
			ID:        n.ID,
			X:         n.Pos.X,
			Y:         n.Pos.Y,
			Health:    n.Health.String(),
			Neighbors: n.NeighborIDs(),
		}
	}
	return states
}

// withHealth returns the population members currently in state h, in
// population order.
func (s *Simulation) withHealth(h graph.Health) []*graph.Node {
	out := make([]*graph.Node, 0)
	for _, n := range s.population {
		if n.Health == h {
			out = append(out, n)
		}
	}
	return out
}

func (s *Simulation) countHealth(h graph.Health) int {
	count := 0
	for _, n := range s.population {
		if n.Health == h {
			count++
		}
	}
	return count
}

func (s *Simulation) edgeCount() int {
	sum := 0
	for _, n := range s.population {
		sum += n.Degree()
	}
	return sum / 2
}
