package sim

import (
	"errors"
	"fmt"
)

// ErrConfiguration reports an invalid configuration value. It is raised at
// construction time and is fatal to that simulation instance.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds the parameters of a run. All values are fixed before Setup
// and read-only while stepping. Chances are expressed on a 0-100 scale,
// matching the uniform [0, 100) draws they gate.
type Config struct {
	// PopulationSize is the fixed number of nodes in the population.
	PopulationSize int `yaml:"population_size" json:"population_size"`

	// SpaceWidth and SpaceHeight bound the integer coordinate range nodes
	// are positioned in.
	SpaceWidth  int `yaml:"space_width" json:"space_width"`
	SpaceHeight int `yaml:"space_height" json:"space_height"`

	// AverageNodeDegree sets the target mean edge count per node. The
	// network builder grows edges until round(degree * population / 2).
	AverageNodeDegree float64 `yaml:"average_node_degree" json:"average_node_degree"`

	// InitialOutbreakSize is how many distinct nodes start infected.
	InitialOutbreakSize int `yaml:"initial_outbreak_size" json:"initial_outbreak_size"`

	// VirusSpreadChance gates each infection attempt along an edge.
	VirusSpreadChance float64 `yaml:"virus_spread_chance" json:"virus_spread_chance"`

	// RecoveryChance gates whether a health check resolves the infection.
	RecoveryChance float64 `yaml:"recovery_chance" json:"recovery_chance"`

	// GainResistanceChance gates whether a resolved infection leaves the
	// node resistant rather than susceptible.
	GainResistanceChance float64 `yaml:"gain_resistance_chance" json:"gain_resistance_chance"`

	// CheckFrequency is the tick period of per-node health checks; each
	// node's check timer wraps at this value.
	CheckFrequency int `yaml:"check_frequency" json:"check_frequency"`

	// Ticks is the default tick budget for Run.
	Ticks int `yaml:"ticks" json:"ticks"`

	// StopWhenExhausted stops Run early once no infected node remains.
	StopWhenExhausted bool `yaml:"stop_when_exhausted" json:"stop_when_exhausted"`

	// Seed pins the random source. When nil, a seed is derived from OS
	// entropy at construction and recorded for reproducibility.
	Seed *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultConfig returns the canonical model parameters: 150 nodes on a
// 41x41 space, degree 6, an outbreak of 3, and low spread/recovery rates.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       150,
		SpaceWidth:           41,
		SpaceHeight:          41,
		AverageNodeDegree:    6,
		InitialOutbreakSize:  3,
		VirusSpreadChance:    2.5,
		RecoveryChance:       5,
		GainResistanceChance: 5,
		CheckFrequency:       1,
		Ticks:                150,
		StopWhenExhausted:    true,
	}
}

// Validate checks the configuration, wrapping ErrConfiguration on the
// first violation found.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size must be positive, got %d", ErrConfiguration, c.PopulationSize)
	}
	if c.SpaceWidth <= 0 || c.SpaceHeight <= 0 {
		return fmt.Errorf("%w: space dimensions must be positive, got %dx%d", ErrConfiguration, c.SpaceWidth, c.SpaceHeight)
	}
	if c.AverageNodeDegree <= 0 {
		return fmt.Errorf("%w: average_node_degree must be positive, got %f", ErrConfiguration, c.AverageNodeDegree)
	}
	if c.InitialOutbreakSize < 0 || c.InitialOutbreakSize > c.PopulationSize {
		return fmt.Errorf("%w: initial_outbreak_size must be in [0, %d], got %d", ErrConfiguration, c.PopulationSize, c.InitialOutbreakSize)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"virus_spread_chance", c.VirusSpreadChance},
		{"recovery_chance", c.RecoveryChance},
		{"gain_resistance_chance", c.GainResistanceChance},
	} {
		if p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: %s must be in [0, 100], got %f", ErrConfiguration, p.name, p.value)
		}
	}
	if c.CheckFrequency < 1 {
		return fmt.Errorf("%w: check_frequency must be at least 1, got %d", ErrConfiguration, c.CheckFrequency)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be non-negative, got %d", ErrConfiguration, c.Ticks)
	}
	return nil
}
