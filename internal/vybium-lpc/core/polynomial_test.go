package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialBasics(t *testing.T) {
	f := DefaultPrimeField
	p := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 3, 4, 0, 0})

	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, -1, ZeroPolynomial[PrimeElement](f).Degree())
	assert.True(t, f.Equal(p.Eval(f.FromUint64(5)), f.FromUint64(116)))
	assert.Equal(t, "4x^2 + 3x + 1", p.String())

	q := NewPolynomialFromUint64[PrimeElement](f, []uint64{2, 1})
	sum := p.Add(q)
	assert.True(t, sum.Equal(NewPolynomialFromUint64[PrimeElement](f, []uint64{3, 4, 4})))
	assert.True(t, sum.Sub(q).Equal(p))
	assert.True(t, p.Sub(p).IsZero())
	assert.True(t, p.Add(p.Neg()).IsZero())

	prod := p.Mul(q)
	assert.True(t, prod.Equal(NewPolynomialFromUint64[PrimeElement](f, []uint64{2, 7, 11, 4})))
	assert.True(t, p.MulScalar(f.Zero()).IsZero())

	shifted := p.ShiftUp(2)
	assert.Equal(t, 4, shifted.Degree())
	assert.True(t, shifted.Equal(p.Mul(NewPolynomialFromUint64[PrimeElement](f, []uint64{0, 0, 1}))))
	assert.True(t, ZeroPolynomial[PrimeElement](f).ShiftUp(3).IsZero())
	assert.True(t, p.ShiftUp(0).Equal(p))
}

func TestMulNTTMatchesSchoolbook(t *testing.T) {
	f := DefaultPrimeField
	a := make([]uint64, 100)
	b := make([]uint64, 70)
	for i := range a {
		a[i] = uint64(3*i + 1)
	}
	for i := range b {
		b[i] = uint64(i*i + 2)
	}
	p := NewPolynomialFromUint64[PrimeElement](f, a)
	q := NewPolynomialFromUint64[PrimeElement](f, b)

	got := p.Mul(q)
	require.Equal(t, 168, got.Degree())

	x := f.FromUint64(11)
	assert.True(t, f.Equal(got.Eval(x), f.Mul(p.Eval(x), q.Eval(x))))

	want := make([]PrimeElement, len(a)+len(b)-1)
	for i := range want {
		want[i] = f.Zero()
	}
	for i := range a {
		for j := range b {
			want[i+j] = f.Add(want[i+j], f.Mul(f.FromUint64(a[i]), f.FromUint64(b[j])))
		}
	}
	assert.True(t, got.Equal(NewPolynomial[PrimeElement](f, want)))
}

func TestDivRem(t *testing.T) {
	f := DefaultPrimeField
	tests := []struct {
		name     string
		dividend []uint64
		divisor  []uint64
	}{
		{"exact", []uint64{2, 7, 11, 4}, []uint64{2, 1}},
		{"with remainder", []uint64{5, 0, 1, 8, 3}, []uint64{1, 1, 1}},
		{"divisor larger", []uint64{1, 2}, []uint64{1, 2, 3}},
		{"constant divisor", []uint64{4, 6, 8}, []uint64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPolynomialFromUint64[PrimeElement](f, tt.dividend)
			b := NewPolynomialFromUint64[PrimeElement](f, tt.divisor)
			q, r, err := a.DivRem(b)
			require.NoError(t, err)
			assert.Less(t, r.Degree(), b.Degree())
			assert.True(t, q.Mul(b).Add(r).Equal(a), "a = q*b + r")
		})
	}

	a := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 0, 1})
	_, err := a.Div(NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 1}))
	assert.ErrorIs(t, err, ErrDivisionRemainder)

	_, _, err = a.DivRem(ZeroPolynomial[PrimeElement](f))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestInterpolateAndVanishing(t *testing.T) {
	f := DefaultPrimeField
	p := NewPolynomialFromUint64[PrimeElement](f, []uint64{9, 8, 7, 6})

	xs := []PrimeElement{f.FromUint64(2), f.FromUint64(5), f.FromUint64(11), f.FromUint64(100)}
	ys := make([]PrimeElement, len(xs))
	for i, x := range xs {
		ys[i] = p.Eval(x)
	}
	u, err := Interpolate[PrimeElement](f, xs, ys)
	require.NoError(t, err)
	assert.True(t, u.Equal(p))

	// fewer points give a lower degree interpolant that still agrees
	u2, err := Interpolate[PrimeElement](f, xs[:2], ys[:2])
	require.NoError(t, err)
	assert.LessOrEqual(t, u2.Degree(), 1)
	for i := 0; i < 2; i++ {
		assert.True(t, f.Equal(u2.Eval(xs[i]), ys[i]))
	}

	v := Vanishing[PrimeElement](f, xs)
	assert.Equal(t, len(xs), v.Degree())
	assert.True(t, f.Equal(v.LeadingCoefficient(), f.One()))
	for _, x := range xs {
		assert.True(t, f.IsZero(v.Eval(x)))
	}
	assert.True(t, Vanishing[PrimeElement](f, nil).Equal(ConstantPolynomial[PrimeElement](f, f.One())))

	_, err = Interpolate[PrimeElement](f, []PrimeElement{xs[0], xs[0]}, ys[:2])
	assert.ErrorIs(t, err, ErrDuplicatePoint)

	empty, err := Interpolate[PrimeElement](f, nil, nil)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestQuotientByVanishing(t *testing.T) {
	f := DefaultPrimeField
	g := NewPolynomialFromUint64[PrimeElement](f, []uint64{1, 3, 4, 10, 2, 7})
	points := []PrimeElement{f.FromUint64(5), f.FromUint64(17), f.FromUint64(23)}

	zs := make([]PrimeElement, len(points))
	for i, pt := range points {
		zs[i] = g.Eval(pt)
	}
	u, err := Interpolate[PrimeElement](f, points, zs)
	require.NoError(t, err)
	v := Vanishing[PrimeElement](f, points)

	q, err := g.Sub(u).Div(v)
	require.NoError(t, err)
	assert.Equal(t, g.Degree()-len(points), q.Degree())
	assert.True(t, q.Mul(v).Add(u).Equal(g), "Q*V + U = g")

	// a wrong claimed value leaves a remainder
	zs[1] = f.Add(zs[1], f.One())
	bad, err := Interpolate[PrimeElement](f, points, zs)
	require.NoError(t, err)
	_, err = g.Sub(bad).Div(v)
	assert.ErrorIs(t, err, ErrDivisionRemainder)
}
