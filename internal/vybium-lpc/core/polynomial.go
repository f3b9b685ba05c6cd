package core

import (
	"fmt"
	"strings"
)

// nttMulThreshold is the product length above which Mul switches to NTT
const nttMulThreshold = 64

// Polynomial is a polynomial in coefficient form; coefficient i multiplies x^i.
// Trailing zero coefficients are trimmed, so the zero polynomial has none.
type Polynomial[E any] struct {
	coefficients []E
	field        Field[E]
}

// NewPolynomial creates a polynomial from a copy of the given coefficients
func NewPolynomial[E any](f Field[E], coefficients []E) *Polynomial[E] {
	c := make([]E, len(coefficients))
	copy(c, coefficients)
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

// NewPolynomialFromUint64 creates a polynomial from small integer coefficients
func NewPolynomialFromUint64[E any](f Field[E], coefficients []uint64) *Polynomial[E] {
	c := make([]E, len(coefficients))
	for i, v := range coefficients {
		c[i] = f.FromUint64(v)
	}
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

// ZeroPolynomial returns the zero polynomial
func ZeroPolynomial[E any](f Field[E]) *Polynomial[E] {
	return &Polynomial[E]{field: f}
}

// ConstantPolynomial returns the polynomial c
func ConstantPolynomial[E any](f Field[E], c E) *Polynomial[E] {
	return NewPolynomial(f, []E{c})
}

func trim[E any](f Field[E], c []E) []E {
	n := len(c)
	for n > 0 && f.IsZero(c[n-1]) {
		n--
	}
	return c[:n]
}

// Degree returns the degree of the polynomial, -1 for the zero polynomial
func (p *Polynomial[E]) Degree() int {
	return len(p.coefficients) - 1
}

// Len returns the number of coefficients after trimming
func (p *Polynomial[E]) Len() int {
	return len(p.coefficients)
}

// Field returns the field the polynomial is defined over
func (p *Polynomial[E]) Field() Field[E] {
	return p.field
}

// IsZero reports whether p is the zero polynomial
func (p *Polynomial[E]) IsZero() bool {
	return len(p.coefficients) == 0
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial[E]) Coefficient(degree int) E {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// LeadingCoefficient returns the coefficient of the highest degree term
func (p *Polynomial[E]) LeadingCoefficient() E {
	return p.Coefficient(p.Degree())
}

// Coefficients returns a copy of the coefficients
func (p *Polynomial[E]) Coefficients() []E {
	c := make([]E, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Eval evaluates the polynomial at the given point using Horner's rule
func (p *Polynomial[E]) Eval(point E) E {
	f := p.field
	result := f.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = f.Add(f.Mul(result, point), p.coefficients[i])
	}
	return result
}

// Add adds two polynomials
func (p *Polynomial[E]) Add(other *Polynomial[E]) *Polynomial[E] {
	f := p.field
	n := max(len(p.coefficients), len(other.coefficients))
	c := make([]E, n)
	for i := 0; i < n; i++ {
		c[i] = f.Add(p.Coefficient(i), other.Coefficient(i))
	}
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

// Sub subtracts other from p
func (p *Polynomial[E]) Sub(other *Polynomial[E]) *Polynomial[E] {
	f := p.field
	n := max(len(p.coefficients), len(other.coefficients))
	c := make([]E, n)
	for i := 0; i < n; i++ {
		c[i] = f.Sub(p.Coefficient(i), other.Coefficient(i))
	}
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

// Neg returns -p
func (p *Polynomial[E]) Neg() *Polynomial[E] {
	f := p.field
	c := make([]E, len(p.coefficients))
	for i, coeff := range p.coefficients {
		c[i] = f.Neg(coeff)
	}
	return &Polynomial[E]{coefficients: c, field: f}
}

// MulScalar multiplies every coefficient by scalar
func (p *Polynomial[E]) MulScalar(scalar E) *Polynomial[E] {
	f := p.field
	c := make([]E, len(p.coefficients))
	for i, coeff := range p.coefficients {
		c[i] = f.Mul(coeff, scalar)
	}
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

// ShiftUp returns x^k * p
func (p *Polynomial[E]) ShiftUp(k int) *Polynomial[E] {
	if p.IsZero() || k <= 0 {
		return p.Clone()
	}
	c := make([]E, k+len(p.coefficients))
	for i := 0; i < k; i++ {
		c[i] = p.field.Zero()
	}
	copy(c[k:], p.coefficients)
	return &Polynomial[E]{coefficients: c, field: p.field}
}

// Mul multiplies two polynomials.
// Long products go through the NTT when the field has a large enough two-adic subgroup.
func (p *Polynomial[E]) Mul(other *Polynomial[E]) *Polynomial[E] {
	f := p.field
	if p.IsZero() || other.IsZero() {
		return ZeroPolynomial(f)
	}
	n := len(p.coefficients) + len(other.coefficients) - 1
	if n > nttMulThreshold {
		if c, err := mulNTT(f, p.coefficients, other.coefficients, n); err == nil {
			return &Polynomial[E]{coefficients: trim(f, c), field: f}
		}
	}

	c := make([]E, n)
	for i := range c {
		c[i] = f.Zero()
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			c[i+j] = f.Add(c[i+j], f.Mul(a, b))
		}
	}
	return &Polynomial[E]{coefficients: trim(f, c), field: f}
}

func mulNTT[E any](f Field[E], a, b []E, n int) ([]E, error) {
	d, err := NewDomain(f, NextPowerOfTwo(n))
	if err != nil {
		return nil, err
	}
	va, err := d.FFT(a)
	if err != nil {
		return nil, err
	}
	vb, err := d.FFT(b)
	if err != nil {
		return nil, err
	}
	for i := range va {
		va[i] = f.Mul(va[i], vb[i])
	}
	c, err := d.IFFT(va)
	if err != nil {
		return nil, err
	}
	return c[:n], nil
}

// DivRem divides p by divisor using long division, returning quotient and remainder
func (p *Polynomial[E]) DivRem(divisor *Polynomial[E]) (*Polynomial[E], *Polynomial[E], error) {
	f := p.field
	if divisor.IsZero() {
		return nil, nil, fmt.Errorf("polynomial division: %w", ErrDivisionByZero)
	}
	if divisor.Degree() > p.Degree() {
		return ZeroPolynomial(f), p.Clone(), nil
	}

	dd := divisor.Degree()
	quotient := make([]E, p.Degree()-dd+1)
	remainder := p.Coefficients()
	leadInv := f.Inverse(divisor.LeadingCoefficient())

	for i := len(quotient) - 1; i >= 0; i-- {
		q := f.Mul(remainder[i+dd], leadInv)
		quotient[i] = q
		if f.IsZero(q) {
			continue
		}
		// subtract q * divisor * x^i
		for j := 0; j <= dd; j++ {
			remainder[i+j] = f.Sub(remainder[i+j], f.Mul(q, divisor.coefficients[j]))
		}
	}

	return &Polynomial[E]{coefficients: trim(f, quotient), field: f},
		&Polynomial[E]{coefficients: trim(f, remainder[:dd]), field: f}, nil
}

// Div is exact division; a non-zero remainder is reported as ErrDivisionRemainder
func (p *Polynomial[E]) Div(divisor *Polynomial[E]) (*Polynomial[E], error) {
	q, r, err := p.DivRem(divisor)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, fmt.Errorf("remainder of degree %d: %w", r.Degree(), ErrDivisionRemainder)
	}
	return q, nil
}

// Equal reports whether both polynomials have the same coefficients
func (p *Polynomial[E]) Equal(other *Polynomial[E]) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.field.Equal(p.coefficients[i], other.coefficients[i]) {
			return false
		}
	}
	return true
}

// Clone creates a copy of the polynomial
func (p *Polynomial[E]) Clone() *Polynomial[E] {
	return &Polynomial[E]{coefficients: p.Coefficients(), field: p.field}
}

// String returns a string representation of the polynomial
func (p *Polynomial[E]) String() string {
	f := p.field
	var terms []string
	for i := p.Degree(); i >= 0; i-- {
		coeff := p.coefficients[i]
		if f.IsZero(coeff) {
			continue
		}
		isOne := f.Equal(coeff, f.One())
		switch {
		case i == 0:
			terms = append(terms, f.String(coeff))
		case i == 1 && isOne:
			terms = append(terms, "x")
		case i == 1:
			terms = append(terms, f.String(coeff)+"x")
		case isOne:
			terms = append(terms, fmt.Sprintf("x^%d", i))
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", f.String(coeff), i))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// Vanishing returns the monic polynomial prod (x - p_i); the empty product is 1
func Vanishing[E any](f Field[E], points []E) *Polynomial[E] {
	c := make([]E, 1, len(points)+1)
	c[0] = f.One()
	for _, pt := range points {
		// multiply by (x - pt)
		c = append(c, f.Zero())
		for i := len(c) - 1; i > 0; i-- {
			c[i] = f.Sub(c[i-1], f.Mul(c[i], pt))
		}
		c[0] = f.Neg(f.Mul(c[0], pt))
	}
	return &Polynomial[E]{coefficients: c, field: f}
}

// Interpolate returns the unique polynomial of degree < len(xs) through (xs[i], ys[i]).
// The points must be distinct. No points give the zero polynomial.
func Interpolate[E any](f Field[E], xs, ys []E) (*Polynomial[E], error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolation over %d abscissas and %d values", len(xs), len(ys))
	}
	k := len(xs)
	if k == 0 {
		return ZeroPolynomial(f), nil
	}

	// w_i = prod_{j != i} (x_i - x_j)
	weights := make([]E, k)
	for i := 0; i < k; i++ {
		w := f.One()
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			diff := f.Sub(xs[i], xs[j])
			if f.IsZero(diff) {
				return nil, fmt.Errorf("abscissa %s at %d and %d: %w", f.String(xs[i]), j, i, ErrDuplicatePoint)
			}
			w = f.Mul(w, diff)
		}
		weights[i] = w
	}
	weights, err := BatchInverse(f, weights)
	if err != nil {
		return nil, err
	}

	full := Vanishing(f, xs).coefficients
	result := make([]E, k)
	for i := range result {
		result[i] = f.Zero()
	}
	basis := make([]E, k)
	for i := 0; i < k; i++ {
		// basis = full / (x - x_i) by synthetic division
		carry := f.Zero()
		for j := k; j > 0; j-- {
			carry = f.Add(full[j], f.Mul(carry, xs[i]))
			basis[j-1] = carry
		}
		scale := f.Mul(ys[i], weights[i])
		for j := 0; j < k; j++ {
			result[j] = f.Add(result[j], f.Mul(basis[j], scale))
		}
	}
	return &Polynomial[E]{coefficients: trim(f, result), field: f}, nil
}
