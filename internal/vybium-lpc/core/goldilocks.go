package core

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

const (
	// goldilocksTwoAdicity is the largest k with 2^k | p-1 for p = 2^64 - 2^32 + 1
	goldilocksTwoAdicity = 32
	// goldilocksGenerator generates the multiplicative group
	goldilocksGenerator = 7
)

// Goldilocks is the 64-bit field p = 2^64 - 2^32 + 1 backed by vybium-crypto
type Goldilocks struct{}

// NewGoldilocks returns the Goldilocks field
func NewGoldilocks() *Goldilocks {
	return &Goldilocks{}
}

func (g *Goldilocks) Name() string {
	return "goldilocks"
}

func (g *Goldilocks) Modulus() *big.Int {
	return new(big.Int).SetUint64(field.P)
}

func (g *Goldilocks) ElementSize() int {
	return 8
}

func (g *Goldilocks) Zero() field.Element {
	return field.Zero
}

func (g *Goldilocks) One() field.Element {
	return field.One
}

func (g *Goldilocks) FromUint64(v uint64) field.Element {
	return field.New(v % field.P)
}

func (g *Goldilocks) Add(a, b field.Element) field.Element {
	return a.Add(b)
}

func (g *Goldilocks) Sub(a, b field.Element) field.Element {
	return a.Sub(b)
}

func (g *Goldilocks) Mul(a, b field.Element) field.Element {
	return a.Mul(b)
}

func (g *Goldilocks) Neg(a field.Element) field.Element {
	return field.Zero.Sub(a)
}

func (g *Goldilocks) Inverse(a field.Element) field.Element {
	if a.IsZero() {
		return field.Zero
	}
	return a.Inverse()
}

func (g *Goldilocks) Exp(a field.Element, k uint64) field.Element {
	return a.ModPow(k)
}

func (g *Goldilocks) Equal(a, b field.Element) bool {
	return a.Value() == b.Value()
}

func (g *Goldilocks) IsZero(a field.Element) bool {
	return a.Value() == 0
}

func (g *Goldilocks) RootOfUnity(n int) (field.Element, error) {
	if !IsPowerOfTwo(n) {
		return field.Zero, fmt.Errorf("root of unity of order %d: %w", n, ErrNotPowerOfTwo)
	}
	if Log2(n) > goldilocksTwoAdicity {
		return field.Zero, fmt.Errorf("goldilocks has two-adicity %d, order %d requested: %w",
			goldilocksTwoAdicity, n, ErrNoRootOfUnity)
	}
	// derived from the group generator; field.PrimitiveRootOfUnity does not return roots of unity
	w := g.Exp(field.New(goldilocksGenerator), (field.P-1)/uint64(n))
	if !g.Equal(g.Exp(w, uint64(n)), field.One) || (n > 1 && g.Equal(g.Exp(w, uint64(n/2)), field.One)) {
		return field.Zero, fmt.Errorf("goldilocks root of order %d is not primitive: %w", n, ErrNoRootOfUnity)
	}
	return w, nil
}

func (g *Goldilocks) Bytes(a field.Element) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, a.Value())
	return out
}

// SetBytes reduces the big-endian integer b modulo p, one byte at a time
func (g *Goldilocks) SetBytes(b []byte) field.Element {
	acc := uint64(0)
	for _, c := range b {
		// acc * 256 + c fits in 72 bits
		hi, lo := bits.Mul64(acc, 256)
		lo, carry := bits.Add64(lo, uint64(c), 0)
		_, acc = bits.Div64(hi+carry, lo, field.P)
	}
	return field.New(acc)
}

func (g *Goldilocks) String(a field.Element) string {
	return fmt.Sprintf("%d", a.Value())
}

var _ Field[field.Element] = (*Goldilocks)(nil)
