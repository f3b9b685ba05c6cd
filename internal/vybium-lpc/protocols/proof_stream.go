package protocols

import (
	"encoding/binary"
	"fmt"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
)

// ProofStreamError represents errors that can occur while decoding a proof
type ProofStreamError struct {
	Type    ProofStreamErrorType
	Message string
}

type ProofStreamErrorType int

const (
	ProofStreamErrorEmptyQueue ProofStreamErrorType = iota
	ProofStreamErrorInvalidItem
	ProofStreamErrorTrailingData
)

func (e ProofStreamError) Error() string {
	return fmt.Sprintf("ProofStream error [%d]: %s", e.Type, e.Message)
}

// ProofStream is the byte queue a proof is serialized into.
// The prover enqueues items, the verifier dequeues them in the same order.
// Every item is a big-endian uint32 or a length-prefixed run of bytes or elements.
type ProofStream[E any] struct {
	field core.Field[E]
	data  []byte
	pos   int
}

// NewProofStream creates an empty stream for encoding
func NewProofStream[E any](f core.Field[E]) *ProofStream[E] {
	return &ProofStream[E]{field: f}
}

// ProofStreamFromBytes creates a stream positioned at the start of data
func ProofStreamFromBytes[E any](f core.Field[E], data []byte) *ProofStream[E] {
	return &ProofStream[E]{field: f, data: data}
}

// Bytes returns the encoded items
func (ps *ProofStream[E]) Bytes() []byte {
	return ps.data
}

// Remaining returns the number of bytes not yet dequeued
func (ps *ProofStream[E]) Remaining() int {
	return len(ps.data) - ps.pos
}

func (ps *ProofStream[E]) EnqueueUint(v int) {
	ps.data = binary.BigEndian.AppendUint32(ps.data, uint32(v))
}

func (ps *ProofStream[E]) EnqueueBytes(b []byte) {
	ps.EnqueueUint(len(b))
	ps.data = append(ps.data, b...)
}

func (ps *ProofStream[E]) EnqueueElements(xs []E) {
	ps.EnqueueUint(len(xs))
	ps.data = append(ps.data, core.ElementsToBytes(ps.field, xs)...)
}

func (ps *ProofStream[E]) DequeueUint() (int, error) {
	if ps.Remaining() < 4 {
		return 0, ProofStreamError{
			Type:    ProofStreamErrorEmptyQueue,
			Message: "no more items in proof stream",
		}
	}
	v := binary.BigEndian.Uint32(ps.data[ps.pos:])
	ps.pos += 4
	return int(v), nil
}

// DequeueCount reads a length and checks that count items of itemSize bytes can follow
func (ps *ProofStream[E]) DequeueCount(itemSize int) (int, error) {
	n, err := ps.DequeueUint()
	if err != nil {
		return 0, err
	}
	if itemSize > 0 && n > ps.Remaining()/itemSize {
		return 0, ProofStreamError{
			Type:    ProofStreamErrorInvalidItem,
			Message: fmt.Sprintf("length %d exceeds the %d remaining bytes", n, ps.Remaining()),
		}
	}
	return n, nil
}

func (ps *ProofStream[E]) DequeueBytes() ([]byte, error) {
	n, err := ps.DequeueCount(1)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, ps.data[ps.pos:ps.pos+n])
	ps.pos += n
	return out, nil
}

func (ps *ProofStream[E]) DequeueElements() ([]E, error) {
	size := ps.field.ElementSize()
	n, err := ps.DequeueCount(size)
	if err != nil {
		return nil, err
	}
	out := make([]E, n)
	for i := range out {
		out[i] = ps.field.SetBytes(ps.data[ps.pos : ps.pos+size])
		ps.pos += size
	}
	return out, nil
}

// EncodeFRIProof appends proof to the stream
func (ps *ProofStream[E]) EncodeFRIProof(proof *FRIProof[E]) {
	ps.EnqueueUint(len(proof.Roots))
	for _, root := range proof.Roots {
		ps.EnqueueBytes(root)
	}
	ps.EnqueueUint(len(proof.FinalPolys))
	for _, poly := range proof.FinalPolys {
		ps.EnqueueElements(poly.Coefficients())
	}
	ps.EnqueueUint(len(proof.Queries))
	for _, q := range proof.Queries {
		ps.EnqueueUint(q.Index)
		ps.EnqueueUint(len(q.Rounds))
		for _, round := range q.Rounds {
			ps.EnqueueUint(len(round.Leaves))
			for _, leaf := range round.Leaves {
				ps.EnqueueElements(leaf)
			}
			ps.EnqueueUint(len(round.Proofs))
			for _, mp := range round.Proofs {
				ps.EnqueueUint(mp.Index)
				ps.EnqueueUint(len(mp.Path))
				for _, node := range mp.Path {
					ps.EnqueueBytes(node)
				}
			}
		}
	}
}

// DecodeFRIProof dequeues a proof written by EncodeFRIProof
func (ps *ProofStream[E]) DecodeFRIProof() (*FRIProof[E], error) {
	proof := &FRIProof[E]{}

	numRoots, err := ps.DequeueCount(4)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	proof.Roots = make([][]byte, numRoots)
	for i := range proof.Roots {
		if proof.Roots[i], err = ps.DequeueBytes(); err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
	}

	numPolys, err := ps.DequeueCount(4)
	if err != nil {
		return nil, fmt.Errorf("final polynomials: %w", err)
	}
	proof.FinalPolys = make([]*core.Polynomial[E], numPolys)
	for i := range proof.FinalPolys {
		coeffs, err := ps.DequeueElements()
		if err != nil {
			return nil, fmt.Errorf("final polynomial %d: %w", i, err)
		}
		proof.FinalPolys[i] = core.NewPolynomial(ps.field, coeffs)
	}

	numQueries, err := ps.DequeueCount(8)
	if err != nil {
		return nil, fmt.Errorf("queries: %w", err)
	}
	proof.Queries = make([]FRIQuery[E], numQueries)
	for i := range proof.Queries {
		if proof.Queries[i], err = ps.decodeQuery(); err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
	}
	return proof, nil
}

func (ps *ProofStream[E]) decodeQuery() (FRIQuery[E], error) {
	var q FRIQuery[E]
	var err error
	if q.Index, err = ps.DequeueUint(); err != nil {
		return q, err
	}
	numRounds, err := ps.DequeueCount(8)
	if err != nil {
		return q, err
	}
	q.Rounds = make([]FRIRoundOpening[E], numRounds)
	for j := range q.Rounds {
		round := &q.Rounds[j]
		numLeaves, err := ps.DequeueCount(4)
		if err != nil {
			return q, err
		}
		round.Leaves = make([][]E, numLeaves)
		for m := range round.Leaves {
			if round.Leaves[m], err = ps.DequeueElements(); err != nil {
				return q, err
			}
		}
		numProofs, err := ps.DequeueCount(8)
		if err != nil {
			return q, err
		}
		round.Proofs = make([]*core.MerkleProof, numProofs)
		for m := range round.Proofs {
			mp := &core.MerkleProof{}
			if mp.Index, err = ps.DequeueUint(); err != nil {
				return q, err
			}
			depth, err := ps.DequeueCount(4)
			if err != nil {
				return q, err
			}
			mp.Path = make([][]byte, depth)
			for d := range mp.Path {
				if mp.Path[d], err = ps.DequeueBytes(); err != nil {
					return q, err
				}
			}
			round.Proofs[m] = mp
		}
	}
	return q, nil
}

// EncodeLPCProof serializes proof
func EncodeLPCProof[E any](f core.Field[E], proof *LPCProof[E]) []byte {
	ps := NewProofStream(f)
	ps.EnqueueBytes(proof.Root)
	ps.EnqueueUint(len(proof.Z))
	for _, z := range proof.Z {
		ps.EnqueueElements(z)
	}
	ps.EnqueueUint(len(proof.FRI))
	for _, fri := range proof.FRI {
		ps.EncodeFRIProof(fri)
	}
	return ps.Bytes()
}

// DecodeLPCProof parses the output of EncodeLPCProof; trailing bytes are an error
func DecodeLPCProof[E any](f core.Field[E], data []byte) (*LPCProof[E], error) {
	ps := ProofStreamFromBytes(f, data)
	proof := &LPCProof[E]{}

	var err error
	if proof.Root, err = ps.DequeueBytes(); err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	numZ, err := ps.DequeueCount(4)
	if err != nil {
		return nil, fmt.Errorf("claims: %w", err)
	}
	proof.Z = make([][]E, numZ)
	for i := range proof.Z {
		if proof.Z[i], err = ps.DequeueElements(); err != nil {
			return nil, fmt.Errorf("claims %d: %w", i, err)
		}
	}
	numFRI, err := ps.DequeueCount(12)
	if err != nil {
		return nil, fmt.Errorf("fri proofs: %w", err)
	}
	proof.FRI = make([]*FRIProof[E], numFRI)
	for i := range proof.FRI {
		if proof.FRI[i], err = ps.DecodeFRIProof(); err != nil {
			return nil, fmt.Errorf("fri proof %d: %w", i, err)
		}
	}

	if ps.Remaining() != 0 {
		return nil, ProofStreamError{
			Type:    ProofStreamErrorTrailingData,
			Message: fmt.Sprintf("%d trailing bytes", ps.Remaining()),
		}
	}
	return proof, nil
}
