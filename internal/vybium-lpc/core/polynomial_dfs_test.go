package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialDFS(t *testing.T) {
	f := DefaultPrimeField
	d, err := NewDomain[PrimeElement](f, 8)
	require.NoError(t, err)

	p := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 3, 4})
	q := NewPolynomialFromUint64[PrimeElement](f, []uint64{2, 0, 0, 5})

	pd, err := FromCoefficients(d, p)
	require.NoError(t, err)
	qd, err := FromCoefficients(d, q)
	require.NoError(t, err)
	assert.Equal(t, 2, pd.Degree())

	back, err := pd.Coefficients()
	require.NoError(t, err)
	assert.True(t, back.Equal(p))

	sum, err := pd.Add(qd)
	require.NoError(t, err)
	sumCoeffs, err := sum.Coefficients()
	require.NoError(t, err)
	assert.True(t, sumCoeffs.Equal(p.Add(q)))

	diff, err := pd.Sub(qd)
	require.NoError(t, err)
	diffCoeffs, err := diff.Coefficients()
	require.NoError(t, err)
	assert.True(t, diffCoeffs.Equal(p.Sub(q)))

	prod, err := pd.Mul(qd)
	require.NoError(t, err)
	assert.Equal(t, 5, prod.Degree())
	prodCoeffs, err := prod.Coefficients()
	require.NoError(t, err)
	assert.True(t, prodCoeffs.Equal(p.Mul(q)))

	x := f.FromUint64(5)
	v, err := pd.Evaluate(x)
	require.NoError(t, err)
	assert.True(t, f.Equal(v, f.FromUint64(116)))
	v, err = pd.Evaluate(d.Element(3))
	require.NoError(t, err)
	assert.True(t, f.Equal(v, pd.Value(3)))

	recovered, err := NewPolynomialDFS(d, pd.Values())
	require.NoError(t, err)
	assert.Equal(t, 2, recovered.Degree())
}

func TestPolynomialDFSDomainMismatch(t *testing.T) {
	f := DefaultPrimeField
	d8, err := NewDomain[PrimeElement](f, 8)
	require.NoError(t, err)
	d16, err := NewDomain[PrimeElement](f, 16)
	require.NoError(t, err)

	p := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 2})
	a, err := FromCoefficients(d8, p)
	require.NoError(t, err)
	b, err := FromCoefficients(d16, p)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.ErrorIs(t, err, ErrDomainMismatch)
	_, err = a.Mul(b)
	assert.ErrorIs(t, err, ErrDomainMismatch)

	big := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 1, 1, 1, 1})
	c, err := FromCoefficients(d8, big)
	require.NoError(t, err)
	_, err = c.Mul(c)
	assert.ErrorIs(t, err, ErrDegreeTooLarge)
}

func TestPolynomialDFSResize(t *testing.T) {
	f := DefaultPrimeField
	d, err := NewDomain[PrimeElement](f, 8)
	require.NoError(t, err)
	p := NewPolynomialFromUint64[PrimeElement](f, []uint64{7, 1, 2})
	pd, err := FromCoefficients(d, p)
	require.NoError(t, err)

	for _, size := range []int{4, 32} {
		r, err := pd.Resize(size)
		require.NoError(t, err)
		assert.Equal(t, size, r.Size())
		c, err := r.Coefficients()
		require.NoError(t, err)
		assert.True(t, c.Equal(p), "size %d", size)
	}

	_, err = pd.Resize(2)
	assert.ErrorIs(t, err, ErrDegreeTooLarge)
}
