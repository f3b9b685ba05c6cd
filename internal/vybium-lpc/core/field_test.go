package core

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func checkFieldAxioms[E any](t *testing.T, f Field[E]) {
	t.Helper()

	a := f.FromUint64(123456789)
	b := f.FromUint64(987654321)

	assert.True(t, f.Equal(f.Add(a, b), f.Add(b, a)), "addition commutes")
	assert.True(t, f.Equal(f.Sub(f.Add(a, b), b), a), "sub undoes add")
	assert.True(t, f.IsZero(f.Add(a, f.Neg(a))), "a + (-a) = 0")
	assert.True(t, f.Equal(f.Mul(a, f.Inverse(a)), f.One()), "a * a^-1 = 1")
	assert.True(t, f.IsZero(f.Inverse(f.Zero())), "inverse of zero is zero")
	assert.True(t, f.Equal(f.Exp(a, 3), f.Mul(a, f.Mul(a, a))), "a^3")
	assert.True(t, f.Equal(f.Exp(a, 0), f.One()), "a^0")

	q, err := Div(f, a, b)
	require.NoError(t, err)
	assert.True(t, f.Equal(f.Mul(q, b), a))
	_, err = Div(f, a, f.Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	enc := f.Bytes(a)
	assert.Len(t, enc, f.ElementSize())
	assert.True(t, f.Equal(f.SetBytes(enc), a), "bytes round trip")

	// p + 5 reduces to 5
	over := new(big.Int).Add(f.Modulus(), big.NewInt(5))
	assert.True(t, f.Equal(f.SetBytes(over.Bytes()), f.FromUint64(5)), "SetBytes reduces")

	for _, n := range []int{1, 2, 16, 1024} {
		w, err := f.RootOfUnity(n)
		require.NoError(t, err)
		assert.True(t, f.Equal(f.Exp(w, uint64(n)), f.One()), "w^n = 1 for n=%d", n)
		if n > 1 {
			assert.False(t, f.Equal(f.Exp(w, uint64(n/2)), f.One()), "w is primitive for n=%d", n)
		}
	}
	_, err = f.RootOfUnity(12)
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)

	r1, err := RandomElement(f, nil)
	require.NoError(t, err)
	r2, err := RandomElement(f, nil)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(f.Bytes(r1), f.Bytes(r2)))
}

func TestFields(t *testing.T) {
	t.Run("prime", func(t *testing.T) {
		checkFieldAxioms[PrimeElement](t, DefaultPrimeField)
	})
	t.Run("goldilocks", func(t *testing.T) {
		checkFieldAxioms[field.Element](t, NewGoldilocks())
	})
	t.Run("bn254", func(t *testing.T) {
		checkFieldAxioms[fr.Element](t, NewBN254())
	})
}

func TestPrimeFieldTwoAdicity(t *testing.T) {
	assert.Equal(t, 30, DefaultPrimeField.TwoAdicity())

	_, err := DefaultPrimeField.RootOfUnity(1 << 31)
	assert.ErrorIs(t, err, ErrNoRootOfUnity)

	_, err = NewPrimeFieldFromUint64(15)
	assert.Error(t, err)
}

func TestBN254TooLargeSubgroup(t *testing.T) {
	_, err := NewBN254().RootOfUnity(1 << 29)
	assert.ErrorIs(t, err, ErrNoRootOfUnity)
}

func TestBatchInverse(t *testing.T) {
	f := DefaultPrimeField
	xs := make([]PrimeElement, 2000)
	for i := range xs {
		xs[i] = f.FromUint64(uint64(i + 1))
	}

	for name, invert := range map[string]func(Field[PrimeElement], []PrimeElement) ([]PrimeElement, error){
		"sequential": BatchInverse[PrimeElement],
		"parallel":   ParallelBatchInverse[PrimeElement],
	} {
		t.Run(name, func(t *testing.T) {
			inv, err := invert(f, xs)
			require.NoError(t, err)
			for i := range xs {
				if !f.Equal(f.Mul(xs[i], inv[i]), f.One()) {
					t.Fatalf("element %d: wrong inverse", i)
				}
			}
		})
	}

	_, err := BatchInverse[PrimeElement](f, []PrimeElement{f.One(), f.Zero()})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}
