package core

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	bn254Modulus    = "21888242871839275222246405745257275088548364400416034343698204186575808495617"
	bn254TwoAdicity = 28
	// bn254Generator generates the multiplicative group of the scalar field
	bn254Generator = 5
)

// BN254 is the scalar field of the BN254 curve backed by gnark-crypto
type BN254 struct {
	modulus *big.Int
}

// NewBN254 returns the BN254 scalar field
func NewBN254() *BN254 {
	m, _ := new(big.Int).SetString(bn254Modulus, 10)
	return &BN254{modulus: m}
}

func (f *BN254) Name() string {
	return "bn254"
}

func (f *BN254) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

func (f *BN254) ElementSize() int {
	return 32
}

func (f *BN254) Zero() fr.Element {
	return fr.Element{}
}

func (f *BN254) One() fr.Element {
	var one fr.Element
	one.SetOne()
	return one
}

func (f *BN254) FromUint64(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func (f *BN254) Add(a, b fr.Element) fr.Element {
	var c fr.Element
	c.Add(&a, &b)
	return c
}

func (f *BN254) Sub(a, b fr.Element) fr.Element {
	var c fr.Element
	c.Sub(&a, &b)
	return c
}

func (f *BN254) Mul(a, b fr.Element) fr.Element {
	var c fr.Element
	c.Mul(&a, &b)
	return c
}

func (f *BN254) Neg(a fr.Element) fr.Element {
	var c fr.Element
	c.Neg(&a)
	return c
}

func (f *BN254) Inverse(a fr.Element) fr.Element {
	if a.IsZero() {
		return fr.Element{}
	}
	var c fr.Element
	c.Inverse(&a)
	return c
}

// Exp is square-and-multiply over the bits of k
func (f *BN254) Exp(a fr.Element, k uint64) fr.Element {
	res := f.One()
	base := a
	for k > 0 {
		if k&1 == 1 {
			res.Mul(&res, &base)
		}
		base.Square(&base)
		k >>= 1
	}
	return res
}

func (f *BN254) Equal(a, b fr.Element) bool {
	return a.Equal(&b)
}

func (f *BN254) IsZero(a fr.Element) bool {
	return a.IsZero()
}

func (f *BN254) RootOfUnity(n int) (fr.Element, error) {
	if !IsPowerOfTwo(n) {
		return fr.Element{}, fmt.Errorf("root of unity of order %d: %w", n, ErrNotPowerOfTwo)
	}
	if Log2(n) > bn254TwoAdicity {
		return fr.Element{}, fmt.Errorf("bn254 has two-adicity %d, order %d requested: %w",
			bn254TwoAdicity, n, ErrNoRootOfUnity)
	}
	exponent := new(big.Int).Sub(f.modulus, big.NewInt(1))
	exponent.Div(exponent, big.NewInt(int64(n)))

	// (p-1)/n does not fit in 64 bits, so walk the big exponent
	res := f.One()
	base := f.FromUint64(bn254Generator)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			res.Mul(&res, &base)
		}
		base.Square(&base)
	}
	return res, nil
}

func (f *BN254) Bytes(a fr.Element) []byte {
	var v big.Int
	a.ToBigIntRegular(&v)
	out := make([]byte, 32)
	v.FillBytes(out)
	return out
}

func (f *BN254) SetBytes(b []byte) fr.Element {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, f.modulus)
	var e fr.Element
	e.SetBigInt(v)
	return e
}

func (f *BN254) String(a fr.Element) string {
	return a.String()
}

var _ Field[fr.Element] = (*BN254)(nil)
