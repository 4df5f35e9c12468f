package sim

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/telemetry"
	"github.com/pthm-cable/petri/world"
)

// Params are the construction knobs of an Engine. They correspond one to
// one with the sliders the control surface exposes.
type Params struct {
	WorldWidth      int
	WorldHeight     int
	PopulationSize  int
	GenomeLength    int
	InternalNeurons int
	StepsPerGen     int
	MutationRate    float64
	Selection       Selection
}

// Engine owns the population, the grid and the generation counters, and
// drives the spawn -> step -> select -> reproduce cycle. The population is
// an ordered list; an individual's index is its stable identity for the
// generation, and every tick walks the list in index order. All state is
// single-threaded: callers may pause between ticks or generations but must
// not interrupt a tick.
type Engine struct {
	params Params

	grid        *world.Grid
	individuals []*Individual

	generation  int
	currentStep int
	killCount   int

	history []telemetry.GenerationStats

	rng *rand.Rand
}

// NewEngine creates an engine with an empty population. A seed of 0 uses
// the current time. Call SpawnGeneration before stepping.
func NewEngine(p Params, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		params: p,
		grid:   world.NewGrid(p.WorldWidth, p.WorldHeight),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Params returns the engine's construction parameters.
func (e *Engine) Params() Params { return e.params }

// Grid returns the spatial substrate for display. Read-only for callers.
func (e *Engine) Grid() *world.Grid { return e.grid }

// Individuals returns the current population in index order.
func (e *Engine) Individuals() []*Individual { return e.individuals }

// Generation returns the current generation number.
func (e *Engine) Generation() int { return e.generation }

// CurrentStep returns the step index within the current generation.
func (e *Engine) CurrentStep() int { return e.currentStep }

// KillCount returns the kill tally for the current generation.
func (e *Engine) KillCount() int { return e.killCount }

// History returns the append-only per-generation stat records.
func (e *Engine) History() []telemetry.GenerationStats { return e.history }

// AddBarrier places a permanent obstacle. Barriers are part of run setup
// and must be placed before the first spawn.
func (e *Engine) AddBarrier(x, y int) {
	e.grid.AddBarrier(x, y)
}

// SpawnGeneration replaces the whole population. Grid occupancy is wiped
// (barriers survive) and the step and kill counters reset. A nil genome
// list means generation 1: PopulationSize random genomes are created. Each
// genome produces one individual at an independently drawn random empty
// cell; placement order is genome order, so index assignment is
// deterministic even though positions are not.
func (e *Engine) SpawnGeneration(genomes []genome.Genome) {
	e.grid.Clear()
	e.individuals = e.individuals[:0]
	e.currentStep = 0
	e.killCount = 0

	if genomes == nil {
		genomes = make([]genome.Genome, e.params.PopulationSize)
		for i := range genomes {
			genomes[i] = genome.NewRandomGenome(e.rng, e.params.GenomeLength)
		}
	}

	for i, g := range genomes {
		x, y := e.grid.RandomEmptyLocation(e.rng)
		ind := NewIndividual(g, x, y, e.params.InternalNeurons)
		e.individuals = append(e.individuals, ind)
		e.grid.Set(x, y, i)
	}
}

// RunStep advances one tick: every living individual senses, thinks and
// acts, strictly in population order. This is not a synchronous update; an
// individual later in the list observes grid mutations made earlier in the
// same tick, so the first mover wins contested cells. That ordering is a
// behavioral contract, not an iteration accident.
func (e *Engine) RunStep() {
	for _, ind := range e.individuals {
		ind.TakeStep(e.grid, e.currentStep, e.params.StepsPerGen, e.rng)
	}
	e.currentStep++
}

// RunAllSteps runs every remaining tick of the current generation. Use
// RunStep directly when a caller wants to pace or render between ticks.
func (e *Engine) RunAllSteps() {
	for e.currentStep < e.params.StepsPerGen {
		e.RunStep()
	}
}

// ApplySelection evaluates the selection predicate against every living
// individual's final position and returns the survivors.
func (e *Engine) ApplySelection() []*Individual {
	var survivors []*Individual
	for _, ind := range e.individuals {
		if !ind.Alive {
			continue
		}
		if e.params.Selection.Survives(ind.X, ind.Y, e.params.WorldWidth, e.params.WorldHeight) {
			survivors = append(survivors, ind)
		}
	}
	return survivors
}

// Reproduce builds PopulationSize child genomes from the survivors.
// Zero survivors is extinction: the run restarts with fresh random genomes
// rather than aborting. A single survivor reproduces asexually, a cloned
// genome with one mutation pass per child. Two or more reproduce sexually:
// each child crosses over two distinct uniformly chosen parents, then
// mutates exactly once (crossover itself never mutates).
func (e *Engine) Reproduce(survivors []*Individual) []genome.Genome {
	children := make([]genome.Genome, 0, e.params.PopulationSize)

	if len(survivors) == 0 {
		slog.Warn("extinction, repopulating with random genomes",
			"generation", e.generation,
		)
		for i := 0; i < e.params.PopulationSize; i++ {
			children = append(children, genome.NewRandomGenome(e.rng, e.params.GenomeLength))
		}
		return children
	}

	if len(survivors) == 1 {
		parent := survivors[0].Genome
		for i := 0; i < e.params.PopulationSize; i++ {
			child := parent.Copy()
			child.Mutate(e.rng, e.params.MutationRate)
			children = append(children, child)
		}
		return children
	}

	for i := 0; i < e.params.PopulationSize; i++ {
		a := e.rng.Intn(len(survivors))
		b := e.rng.Intn(len(survivors) - 1)
		if b >= a {
			b++
		}
		child := genome.Crossover(e.rng, survivors[a].Genome, survivors[b].Genome)
		child.Mutate(e.rng, e.params.MutationRate)
		children = append(children, child)
	}
	return children
}

// RunOneGeneration runs one full cycle: remaining steps, selection, stats,
// reproduction, then spawns the children. Returns the generation's stats.
func (e *Engine) RunOneGeneration() telemetry.GenerationStats {
	e.RunAllSteps()

	moved := 0
	for _, ind := range e.individuals {
		if ind.Alive && (ind.LastDX != 0 || ind.LastDY != 0) {
			moved++
		}
	}
	slog.Debug("generation steps complete",
		"generation", e.generation,
		"moved", moved,
		"population", len(e.individuals),
	)

	survivors := e.ApplySelection()

	avgGenomeLen := 0.0
	for _, s := range survivors {
		avgGenomeLen += float64(s.Genome.Len())
	}
	if len(survivors) > 0 {
		avgGenomeLen /= float64(len(survivors))
	}

	stats := telemetry.GenerationStats{
		Generation:      e.generation,
		Survivors:       len(survivors),
		SurvivalRate:    float64(len(survivors)) / float64(e.params.PopulationSize),
		KillCount:       e.killCount,
		AvgGenomeLength: avgGenomeLen,
	}
	e.history = append(e.history, stats)

	children := e.Reproduce(survivors)
	e.generation++
	e.SpawnGeneration(children)

	return stats
}

// Run drives n full generations headless.
func (e *Engine) Run(n int) {
	for i := 0; i < n; i++ {
		e.RunOneGeneration()
	}
}
