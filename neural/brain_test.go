package neural

import (
	"math"
	"testing"

	"github.com/pthm-cable/petri/genome"
)

const (
	testSensors  = 12
	testActions  = 5
	testInternal = 3
)

func conn(source genome.SourceKind, sourceID uint8, sink genome.SinkKind, sinkID uint8, weight float64) genome.Gene {
	return genome.Gene{
		Source:   source,
		SourceID: sourceID,
		Sink:     sink,
		SinkID:   sinkID,
		Weight:   weight,
	}
}

func TestNewBrainFoldsIDs(t *testing.T) {
	tests := []struct {
		name     string
		gene     genome.Gene
		wantSrc  int
		wantSink int
	}{
		{"in range", conn(genome.FromSensor, 5, genome.ToAction, 2, 1), 5, 2},
		{"sensor folds", conn(genome.FromSensor, 13, genome.ToAction, 0, 1), 13 % testSensors, 0},
		{"action folds", conn(genome.FromSensor, 0, genome.ToAction, 127, 1), 0, 127 % testActions},
		{"neuron source folds", conn(genome.FromNeuron, 100, genome.ToAction, 0, 1), 100 % testInternal, 0},
		{"neuron sink folds", conn(genome.FromSensor, 0, genome.ToNeuron, 7, 1), 0, 7 % testInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBrain(genome.Genome{Genes: []genome.Gene{tt.gene}}, testSensors, testActions, testInternal)

			conns := b.Connections()
			if len(conns) != 1 {
				t.Fatalf("got %d connections, want 1", len(conns))
			}
			if conns[0].SourceIndex != tt.wantSrc {
				t.Errorf("source index = %d, want %d", conns[0].SourceIndex, tt.wantSrc)
			}
			if conns[0].SinkIndex != tt.wantSink {
				t.Errorf("sink index = %d, want %d", conns[0].SinkIndex, tt.wantSink)
			}
		})
	}
}

func TestEvaluateDirectConnection(t *testing.T) {
	g := genome.Genome{Genes: []genome.Gene{
		conn(genome.FromSensor, 0, genome.ToAction, 0, 2.0),
	}}
	b := NewBrain(g, testSensors, testActions, testInternal)

	out := b.Evaluate(map[int]float64{0: 0.5})

	want := math.Tanh(0.5 * 2.0)
	if math.Abs(out[0]-want) > 1e-12 {
		t.Errorf("action 0 = %v, want %v", out[0], want)
	}
	for i := 1; i < testActions; i++ {
		if out[i] != 0 {
			t.Errorf("action %d = %v, want 0", i, out[i])
		}
	}
}

func TestEvaluateMissingSensorReadsZero(t *testing.T) {
	g := genome.Genome{Genes: []genome.Gene{
		conn(genome.FromSensor, 3, genome.ToAction, 1, 4.0),
	}}
	b := NewBrain(g, testSensors, testActions, testInternal)

	out := b.Evaluate(map[int]float64{})
	if out[1] != 0 {
		t.Errorf("action 1 = %v, want 0 for missing sensor", out[1])
	}
}

func TestEvaluateNeuronFeedbackIsOneTickStale(t *testing.T) {
	// sensor0 -> neuron0, neuron0 -> action0. The action must see the
	// neuron's value from the previous tick, not this one.
	g := genome.Genome{Genes: []genome.Gene{
		conn(genome.FromSensor, 0, genome.ToNeuron, 0, 1.0),
		conn(genome.FromNeuron, 0, genome.ToAction, 0, 1.0),
	}}
	b := NewBrain(g, testSensors, testActions, testInternal)

	first := b.Evaluate(map[int]float64{0: 1.0})
	if first[0] != 0 {
		t.Fatalf("tick 1 action = %v, want 0 (neuron output not yet stored)", first[0])
	}

	second := b.Evaluate(map[int]float64{0: 0.0})
	want := math.Tanh(math.Tanh(1.0))
	if math.Abs(second[0]-want) > 1e-12 {
		t.Errorf("tick 2 action = %v, want %v", second[0], want)
	}
}

func TestEvaluateSelfLoopReadsPreviousBuffer(t *testing.T) {
	// sensor0 -> neuron0 plus neuron0 -> neuron0: the self loop must read
	// last tick's stored output, never the in-progress accumulator.
	g := genome.Genome{Genes: []genome.Gene{
		conn(genome.FromSensor, 0, genome.ToNeuron, 0, 1.0),
		conn(genome.FromNeuron, 0, genome.ToNeuron, 0, 1.0),
	}}
	b := NewBrain(g, testSensors, testActions, testInternal)

	b.Evaluate(map[int]float64{0: 1.0})
	got := b.NeuronOutputs()[0]
	if want := math.Tanh(1.0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("tick 1 neuron = %v, want %v", got, want)
	}

	b.Evaluate(map[int]float64{0: 1.0})
	got = b.NeuronOutputs()[0]
	if want := math.Tanh(1.0 + math.Tanh(1.0)); math.Abs(got-want) > 1e-12 {
		t.Errorf("tick 2 neuron = %v, want %v", got, want)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	genes := []genome.Gene{
		conn(genome.FromSensor, 2, genome.ToNeuron, 0, 1.5),
		conn(genome.FromNeuron, 0, genome.ToNeuron, 1, -2.0),
		conn(genome.FromNeuron, 1, genome.ToAction, 3, 3.0),
		conn(genome.FromSensor, 7, genome.ToAction, 3, -0.5),
	}
	a := NewBrain(genome.Genome{Genes: genes}, testSensors, testActions, testInternal)
	b := NewBrain(genome.Genome{Genes: genes}, testSensors, testActions, testInternal)

	inputs := []map[int]float64{
		{2: 0.9, 7: 0.1},
		{2: 0.0, 7: 1.0},
		{2: 0.5},
	}

	for step, in := range inputs {
		outA := a.Evaluate(in)
		outB := b.Evaluate(in)
		for i := 0; i < testActions; i++ {
			if outA[i] != outB[i] {
				t.Fatalf("step %d action %d: %v != %v", step, i, outA[i], outB[i])
			}
		}
	}
}

func TestEvaluateUnexercisedCircuitIsAllZero(t *testing.T) {
	// A resolved gene whose source sensor is never supplied drives nothing:
	// every accumulator stays 0 and tanh(0) = 0 everywhere.
	g := genome.Genome{Genes: []genome.Gene{
		conn(genome.FromSensor, 11, genome.ToNeuron, 2, 4.0),
	}}
	b := NewBrain(g, testSensors, testActions, testInternal)

	out := b.Evaluate(map[int]float64{})
	for i := 0; i < testActions; i++ {
		if out[i] != 0 {
			t.Errorf("action %d = %v, want 0", i, out[i])
		}
	}
	for i, v := range b.NeuronOutputs() {
		if v != 0 {
			t.Errorf("neuron %d = %v, want 0", i, v)
		}
	}
}
