package sim

// Snapshot is a read-only report of aggregate state at a given tick. The
// three counts always partition the population. Snapshot is a plain value
// and comparable, so collected series can be diffed directly.
type Snapshot struct {
	Tick        int `json:"tick"`
	Infected    int `json:"infected"`
	Resistant   int `json:"resistant"`
	Susceptible int `json:"susceptible"`
}

// NodeState is the per-node view exposed on demand for rendering and
// export, separate from the per-tick Snapshot counts.
type NodeState struct {
	ID        int    `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Health    string `json:"health"`
	Neighbors []int  `json:"neighbors"`
}

// Collector receives the per-tick snapshot emitted at the end of each
// Step. Collectors are external to the core: file formats, storage, and
// rendering are their concern.
type Collector interface {
	Collect(Snapshot)
}
