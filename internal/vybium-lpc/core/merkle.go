package core

import (
	"bytes"
	"fmt"
)

// MerkleTree is a binary hash tree over a power-of-two number of leaves.
// leaf node = H(leaf), inner node = H(left || right).
type MerkleTree struct {
	hasher    Hasher
	numLeaves int
	// levels[0] holds the leaf hashes, the last level holds the root
	levels [][][]byte
}

// MerkleProof is the authentication path of one leaf, ordered from the leaf up
type MerkleProof struct {
	Index int      `json:"index"`
	Path  [][]byte `json:"path"`
}

// NewMerkleTree hashes the leaves and builds every level.
// A leaf count that is not a power of two is padded with zero leaves of the first leaf's length.
func NewMerkleTree(h Hasher, leaves [][]byte) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with empty data")
	}

	n := NextPowerOfTwo(len(leaves))
	padding := make([]byte, len(leaves[0]))
	current := make([][]byte, n)
	ParallelizeAbove(n, func(start, end int) {
		for i := start; i < end; i++ {
			if i < len(leaves) {
				current[i] = h.Sum(leaves[i])
			} else {
				current[i] = h.Sum(padding)
			}
		}
	})

	levels := [][][]byte{current}
	for len(current) > 1 {
		prev := current
		next := make([][]byte, len(prev)/2)
		ParallelizeAbove(len(next), func(start, end int) {
			for i := start; i < end; i++ {
				next[i] = h.Sum(prev[2*i], prev[2*i+1])
			}
		})
		levels = append(levels, next)
		current = next
	}

	return &MerkleTree{
		hasher:    h,
		numLeaves: len(leaves),
		levels:    levels,
	}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() []byte {
	root := mt.levels[len(mt.levels)-1][0]
	out := make([]byte, len(root))
	copy(out, root)
	return out
}

// NumLeaves returns the number of leaves before padding
func (mt *MerkleTree) NumLeaves() int {
	return mt.numLeaves
}

// Depth returns the length of every authentication path
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// Open returns the authentication path for the leaf at index
func (mt *MerkleTree) Open(index int) (*MerkleProof, error) {
	if index < 0 || index >= len(mt.levels[0]) {
		return nil, fmt.Errorf("leaf %d of %d: %w", index, len(mt.levels[0]), ErrIndexOutOfRange)
	}

	path := make([][]byte, 0, mt.Depth())
	current := index
	for level := 0; level < mt.Depth(); level++ {
		path = append(path, mt.levels[level][current^1])
		current >>= 1
	}
	return &MerkleProof{Index: index, Path: path}, nil
}

// Verify checks that leaf sits at p.Index under root.
// Bit j of the index tells whether the running hash is the right child at height j.
func (p *MerkleProof) Verify(h Hasher, root, leaf []byte) bool {
	if p == nil || len(p.Path) > 62 || p.Index < 0 || p.Index >= 1<<len(p.Path) {
		return false
	}
	current := h.Sum(leaf)
	index := p.Index
	for _, sibling := range p.Path {
		if len(sibling) != h.Size() {
			return false
		}
		if index&1 == 0 {
			current = h.Sum(current, sibling)
		} else {
			current = h.Sum(sibling, current)
		}
		index >>= 1
	}
	return bytes.Equal(current, root)
}

// VerifyProof verifies a Merkle proof for a tree of numLeaves leaves
func VerifyProof(h Hasher, root, leaf []byte, proof *MerkleProof, numLeaves int) bool {
	if proof == nil || len(proof.Path) != Log2(NextPowerOfTwo(numLeaves)) {
		return false
	}
	return proof.Verify(h, root, leaf)
}
