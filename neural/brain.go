// Package neural resolves genomes into fixed-size recurrent circuits and
// evaluates them one forward pass per simulation tick.
package neural

import (
	"math"

	"github.com/pthm-cable/petri/genome"
)

// Connection is one resolved edge of a brain. Unlike a raw gene, its
// indices have already been folded onto the concrete sensor, neuron and
// action ranges of the circuit.
type Connection struct {
	Source      genome.SourceKind
	SourceIndex int
	Sink        genome.SinkKind
	SinkIndex   int
	Weight      float64
}

// Brain is the evaluable circuit derived from a genome for fixed sensor,
// action and internal-neuron counts. The connection list is built once and
// never re-folded; the neuron output vector is the circuit's recurrent
// memory and persists across ticks for the owning individual's lifetime.
type Brain struct {
	numSensors  int
	numActions  int
	numInternal int

	connections   []Connection
	neuronOutputs []float64
}

// NewBrain resolves a genome into a brain. Raw gene IDs fold modulo the
// relevant count: sensor sources mod numSensors, action sinks mod
// numActions, neuron endpoints mod numInternal. The same genome therefore
// yields a different circuit when the counts change. Internal neuron
// outputs start at zero. numInternal and numActions must be positive.
func NewBrain(g genome.Genome, numSensors, numActions, numInternal int) *Brain {
	connections := make([]Connection, 0, len(g.Genes))
	for _, gene := range g.Genes {
		c := Connection{
			Source: gene.Source,
			Sink:   gene.Sink,
			Weight: gene.Weight,
		}

		if gene.Source == genome.FromSensor {
			c.SourceIndex = int(gene.SourceID) % numSensors
		} else {
			c.SourceIndex = int(gene.SourceID) % numInternal
		}

		if gene.Sink == genome.ToAction {
			c.SinkIndex = int(gene.SinkID) % numActions
		} else {
			c.SinkIndex = int(gene.SinkID) % numInternal
		}

		connections = append(connections, c)
	}

	return &Brain{
		numSensors:    numSensors,
		numActions:    numActions,
		numInternal:   numInternal,
		connections:   connections,
		neuronOutputs: make([]float64, numInternal),
	}
}

// Evaluate runs one recurrent forward pass. Sensor sources read the
// supplied values (missing keys read 0); neuron sources read the previous
// tick's stored outputs, never the in-progress accumulators, so
// neuron-to-neuron feedback is always one tick stale and no cycle
// detection is needed. After all connections accumulate, the neuron
// accumulators are tanh-squashed into a fresh output vector that replaces
// the old one in a single swap, and the tanh-squashed action accumulators
// are returned keyed by action index.
func (b *Brain) Evaluate(sensors map[int]float64) map[int]float64 {
	neuronAcc := make([]float64, b.numInternal)
	actionAcc := make([]float64, b.numActions)

	for _, c := range b.connections {
		var source float64
		if c.Source == genome.FromSensor {
			source = sensors[c.SourceIndex]
		} else {
			source = b.neuronOutputs[c.SourceIndex]
		}

		signal := source * c.Weight
		if c.Sink == genome.ToAction {
			actionAcc[c.SinkIndex] += signal
		} else {
			neuronAcc[c.SinkIndex] += signal
		}
	}

	next := make([]float64, b.numInternal)
	for i, acc := range neuronAcc {
		next[i] = math.Tanh(acc)
	}
	b.neuronOutputs = next

	actions := make(map[int]float64, b.numActions)
	for i, acc := range actionAcc {
		actions[i] = math.Tanh(acc)
	}
	return actions
}

// Connections returns the resolved connection list for inspection and
// wiring diagrams. The slice is shared; callers must not modify it.
func (b *Brain) Connections() []Connection {
	return b.connections
}

// NeuronOutputs returns a copy of the current recurrent memory vector.
func (b *Brain) NeuronOutputs() []float64 {
	out := make([]float64, len(b.neuronOutputs))
	copy(out, b.neuronOutputs)
	return out
}
