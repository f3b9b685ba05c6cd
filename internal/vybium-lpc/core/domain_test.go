package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func TestFFTMatchesNaiveEvaluation(t *testing.T) {
	f := DefaultPrimeField
	tests := []struct {
		name   string
		size   int
		offset uint64
		coeffs []uint64
	}{
		{"subgroup", 8, 1, []uint64{1, 3, 4}},
		{"coset", 16, 7, []uint64{5, 0, 2, 9, 1}},
		{"full length", 4, 3, []uint64{1, 2, 3, 4}},
		{"constant", 2, 1, []uint64{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewCosetDomain[PrimeElement](f, tt.size, f.FromUint64(tt.offset))
			require.NoError(t, err)
			p := NewPolynomialFromUint64[PrimeElement](f, tt.coeffs)

			values, err := d.FFT(p.Coefficients())
			require.NoError(t, err)
			for i, x := range d.Elements() {
				if !f.Equal(values[i], p.Eval(x)) {
					t.Fatalf("value %d: got %s, want %s", i, f.String(values[i]), f.String(p.Eval(x)))
				}
			}

			back, err := d.IFFT(values)
			require.NoError(t, err)
			assert.True(t, NewPolynomial[PrimeElement](f, back).Equal(p), "IFFT(FFT(p)) = p")
		})
	}
}

func TestNTTParallelLargeDomain(t *testing.T) {
	f := DefaultPrimeField
	size := 1 << 12
	d, err := NewDomain[PrimeElement](f, size)
	require.NoError(t, err)

	coeffs := make([]PrimeElement, size)
	for i := range coeffs {
		coeffs[i] = f.FromUint64(uint64(i*i + 1))
	}
	values, err := d.FFT(coeffs)
	require.NoError(t, err)

	p := NewPolynomial[PrimeElement](f, coeffs)
	for _, i := range []int{0, 1, 77, size - 1} {
		assert.True(t, f.Equal(values[i], p.Eval(d.Element(i))), "index %d", i)
	}

	back, err := d.IFFT(values)
	require.NoError(t, err)
	for i := range coeffs {
		if !f.Equal(back[i], coeffs[i]) {
			t.Fatalf("coefficient %d differs after round trip", i)
		}
	}
}

func TestDomainErrors(t *testing.T) {
	f := DefaultPrimeField

	_, err := NewDomain[PrimeElement](f, 12)
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)

	d, err := NewDomain[PrimeElement](f, 4)
	require.NoError(t, err)
	_, err = d.FFT(make([]PrimeElement, 5))
	assert.ErrorIs(t, err, ErrDegreeTooLarge)
	_, err = d.IFFT(make([]PrimeElement, 3))
	assert.ErrorIs(t, err, ErrDomainMismatch)
}

func TestDomainHalve(t *testing.T) {
	f := DefaultPrimeField
	d, err := NewCosetDomain[PrimeElement](f, 16, f.FromUint64(3))
	require.NoError(t, err)

	h, err := d.Halve()
	require.NoError(t, err)
	assert.Equal(t, 8, h.Size)

	// x and -x = x * w^(n/2) square to the same element of the halved domain
	for i := 0; i < d.Size; i++ {
		sq := Square[PrimeElement](f, d.Element(i))
		assert.Equal(t, i%h.Size, h.IndexOf(sq))
	}
	assert.True(t, f.Equal(d.Element(8), f.Neg(d.Element(0))))

	assert.True(t, d.Contains(d.Element(5)))
	assert.False(t, d.Contains(f.Zero()))
}

func TestGoldilocksDomain(t *testing.T) {
	f := NewGoldilocks()

	one, err := f.RootOfUnity(1)
	require.NoError(t, err)
	assert.True(t, f.Equal(one, f.One()), "root of order 1")

	for _, n := range []int{2, 4, 16, 1024, 1 << 32} {
		w, err := f.RootOfUnity(n)
		require.NoError(t, err)
		assert.True(t, f.Equal(f.Exp(w, uint64(n)), f.One()), "w^n = 1 for n=%d", n)
		assert.False(t, f.Equal(f.Exp(w, uint64(n/2)), f.One()), "w is primitive for n=%d", n)
	}
	w2, err := f.RootOfUnity(2)
	require.NoError(t, err)
	assert.True(t, f.Equal(w2, f.Neg(f.One())), "the root of order 2 is -1")

	_, err = f.RootOfUnity(1 << 33)
	assert.ErrorIs(t, err, ErrNoRootOfUnity)

	d, err := NewCosetDomain[field.Element](f, 32, f.FromUint64(7))
	require.NoError(t, err)
	p := NewPolynomialFromUint64[field.Element](f, []uint64{4, 8, 15, 16, 23, 42, 1, 2})
	values, err := d.FFT(p.Coefficients())
	require.NoError(t, err)
	for i := 0; i < d.Size; i++ {
		if !f.Equal(values[i], p.Eval(d.Element(i))) {
			t.Fatalf("value %d: got %s, want %s", i, f.String(values[i]), f.String(p.Eval(d.Element(i))))
		}
	}
	back, err := d.IFFT(values)
	require.NoError(t, err)
	assert.True(t, NewPolynomial[field.Element](f, back).Equal(p), "IFFT(FFT(p)) = p")
}
