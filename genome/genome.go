package genome

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MaxGenes caps genome length; insertion and crossover both respect it.
const MaxGenes = 50

// Genome is an ordered sequence of genes. Order is irrelevant to brain
// evaluation (accumulation is commutative) but meaningful to crossover and
// serialization. A genome is never empty: operators that would empty it
// substitute a single random gene instead.
type Genome struct {
	Genes []Gene
}

// NewRandomGenome returns a genome of n random genes.
func NewRandomGenome(rng *rand.Rand, n int) Genome {
	genes := make([]Gene, n)
	for i := range genes {
		genes[i] = NewRandomGene(rng)
	}
	return Genome{Genes: genes}
}

// Len returns the number of genes.
func (g Genome) Len() int {
	return len(g.Genes)
}

// Copy deep-copies the genome; mutating the copy never affects the original.
func (g Genome) Copy() Genome {
	genes := make([]Gene, len(g.Genes))
	copy(genes, g.Genes)
	return Genome{Genes: genes}
}

// Mutate applies three independent stochastic edits in one call:
// every gene point-mutates with probability rate; one uniformly chosen gene
// is deleted with probability 0.2*rate (only while more than one remains);
// one random gene is appended with probability 0.2*rate (only below
// MaxGenes). The events are independent, not mutually exclusive.
func (g *Genome) Mutate(rng *rand.Rand, rate float64) {
	for i := range g.Genes {
		if rng.Float64() < rate {
			g.Genes[i].Mutate(rng)
		}
	}

	if rng.Float64() < rate*0.2 && len(g.Genes) > 1 {
		i := rng.Intn(len(g.Genes))
		g.Genes = append(g.Genes[:i], g.Genes[i+1:]...)
	}

	if rng.Float64() < rate*0.2 && len(g.Genes) < MaxGenes {
		g.Genes = append(g.Genes, NewRandomGene(rng))
	}
}

// Crossover recombines two parents: independent uniform cut points
// ca in [0, len(a)] and cb in [0, len(b)], child = a[:ca] ++ b[cb:].
// The child is truncated to MaxGenes and replaced by one random gene if the
// cuts produce nothing. Genes are value-copied; the child never aliases a
// parent. Crossover is pure recombination: it performs no mutation of its
// own, the reproduction step owns the single mutation pass.
func Crossover(rng *rand.Rand, a, b Genome) Genome {
	ca := rng.Intn(len(a.Genes) + 1)
	cb := rng.Intn(len(b.Genes) + 1)

	child := make([]Gene, 0, ca+len(b.Genes)-cb)
	child = append(child, a.Genes[:ca]...)
	child = append(child, b.Genes[cb:]...)

	if len(child) > MaxGenes {
		child = child[:MaxGenes]
	}
	if len(child) == 0 {
		child = append(child, NewRandomGene(rng))
	}

	return Genome{Genes: child}
}

// String serializes the genome as comma-separated 8-digit hex words in
// gene order.
func (g Genome) String() string {
	var sb strings.Builder
	for i, gene := range g.Genes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(gene.Hex())
	}
	return sb.String()
}

// ParseHex inverts String: it decodes a comma-separated list of 8-digit hex
// words into a genome, preserving gene order.
func ParseHex(s string) (Genome, error) {
	parts := strings.Split(s, ",")
	genes := make([]Gene, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		packed, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return Genome{}, fmt.Errorf("parsing gene %q: %w", part, err)
		}
		genes = append(genes, Unpack(uint32(packed)))
	}
	if len(genes) == 0 {
		return Genome{}, fmt.Errorf("genome is empty")
	}
	return Genome{Genes: genes}, nil
}
