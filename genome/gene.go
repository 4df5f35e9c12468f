// Package genome implements the heritable wiring of an agent: packed
// connection genes, gene sequences, and the mutation and crossover
// operators that evolution acts on.
package genome

import (
	"fmt"
	"math"
	"math/rand"
)

// SourceKind selects where a connection reads its input from.
type SourceKind uint8

// SinkKind selects where a connection delivers its signal.
type SinkKind uint8

const (
	// FromNeuron reads the previous tick's output of an internal neuron.
	FromNeuron SourceKind = 0
	// FromSensor reads a sensor value supplied at evaluation time.
	FromSensor SourceKind = 1
)

const (
	// ToNeuron accumulates into an internal neuron.
	ToNeuron SinkKind = 0
	// ToAction accumulates into an action output.
	ToAction SinkKind = 1
)

// Weight quantization: 16-bit signed code over the [-4, 4] weight range.
const (
	MaxWeight   = 4.0
	weightScale = 32767.0
)

// Gene is one directed weighted connection descriptor. IDs are raw 7-bit
// values with no validity constraint; they are folded onto concrete
// sensor/neuron/action indices only when a brain is built. The canonical
// form is the 32-bit word produced by Pack.
type Gene struct {
	Source   SourceKind
	SourceID uint8
	Sink     SinkKind
	SinkID   uint8
	Weight   float64
}

// NewRandomGene returns a gene with uniform kinds, uniform 7-bit IDs and a
// weight drawn uniformly from [-4, 4].
func NewRandomGene(rng *rand.Rand) Gene {
	return Gene{
		Source:   SourceKind(rng.Intn(2)),
		SourceID: uint8(rng.Intn(128)),
		Sink:     SinkKind(rng.Intn(2)),
		SinkID:   uint8(rng.Intn(128)),
		Weight:   rng.Float64()*2*MaxWeight - MaxWeight,
	}
}

// Pack encodes the gene into its canonical 32-bit word:
// bit 31 source kind, bits 30-24 source ID, bit 23 sink kind,
// bits 22-16 sink ID, bits 15-0 two's-complement weight code.
// The weight code saturates at the int16 range rather than erroring.
func (g Gene) Pack() uint32 {
	code := math.Round(g.Weight / MaxWeight * weightScale)
	if code > math.MaxInt16 {
		code = math.MaxInt16
	}
	if code < math.MinInt16 {
		code = math.MinInt16
	}

	return uint32(g.Source&1)<<31 |
		uint32(g.SourceID&0x7F)<<24 |
		uint32(g.Sink&1)<<23 |
		uint32(g.SinkID&0x7F)<<16 |
		uint32(uint16(int16(code)))
}

// Unpack decodes a 32-bit word into a gene. Every bit pattern decodes to
// some valid gene; there is no failure case. Decoding is lossy to roughly
// 1/8192 weight precision, but re-packing a decoded gene reproduces the
// identical word.
func Unpack(packed uint32) Gene {
	code := int16(uint16(packed & 0xFFFF))
	return Gene{
		Source:   SourceKind(packed>>31) & 1,
		SourceID: uint8(packed>>24) & 0x7F,
		Sink:     SinkKind(packed>>23) & 1,
		SinkID:   uint8(packed>>16) & 0x7F,
		Weight:   float64(code) / weightScale * MaxWeight,
	}
}

// Hex renders the packed gene as 8 lowercase hex digits.
func (g Gene) Hex() string {
	return fmt.Sprintf("%08x", g.Pack())
}

// Mutate flips one uniformly chosen bit of the packed form and replaces
// all fields from the result. Half of the bit positions land in the weight
// code, so roughly half of all point mutations perturb weight magnitude or
// sign and the rest retarget IDs or flip a kind.
func (g *Gene) Mutate(rng *rand.Rand) {
	*g = Unpack(g.Pack() ^ (1 << rng.Intn(32)))
}

// Copy returns a value copy with no shared ownership.
func (g Gene) Copy() Gene {
	return g
}
