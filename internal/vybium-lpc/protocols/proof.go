package protocols

import (
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
)

// FRIRoundOpening opens the whole fiber of one query in one round.
// Leaves[m] is the leaf at fiber member m, Proofs[m] its authentication path.
type FRIRoundOpening[E any] struct {
	Leaves [][]E
	Proofs []*core.MerkleProof
}

// FRIQuery holds every round opening of a single query
type FRIQuery[E any] struct {
	// Index is the position in D0 the query was drawn at
	Index  int
	Rounds []FRIRoundOpening[E]
}

// FRIProof is the non-interactive FRI argument for one or more columns
type FRIProof[E any] struct {
	// Roots holds the commitments of rounds 1..r-1; round 0 is committed by the caller
	Roots [][]byte
	// FinalPolys holds one polynomial over the last domain per column
	FinalPolys []*core.Polynomial[E]
	Queries    []FRIQuery[E]
}

// Size returns the serialized size of the proof in bytes
func (p *FRIProof[E]) Size(f core.Field[E]) int {
	size := 0
	for _, root := range p.Roots {
		size += len(root)
	}
	for _, poly := range p.FinalPolys {
		size += poly.Len() * f.ElementSize()
	}
	for _, q := range p.Queries {
		size += 8
		for _, round := range q.Rounds {
			for _, leaf := range round.Leaves {
				size += len(leaf) * f.ElementSize()
			}
			for _, proof := range round.Proofs {
				size += 8
				for _, node := range proof.Path {
					size += len(node)
				}
			}
		}
	}
	return size
}

// LPCProof is an evaluation proof for a batch of committed polynomials.
// Z[i][j] is the claimed value of polynomial i at its j-th evaluation point.
type LPCProof[E any] struct {
	Z    [][]E
	Root []byte
	// FRI holds one proof with shared folding, or one proof per independent repetition
	FRI []*FRIProof[E]
}

// Size returns the serialized size of the proof in bytes
func (p *LPCProof[E]) Size(f core.Field[E]) int {
	size := len(p.Root)
	for _, z := range p.Z {
		size += len(z) * f.ElementSize()
	}
	for _, fri := range p.FRI {
		size += fri.Size(f)
	}
	return size
}
