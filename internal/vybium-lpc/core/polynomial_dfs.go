package core

import "fmt"

// PolynomialDFS is a polynomial held by its values over a power-of-two domain, in natural order.
// Degree is tracked alongside and is an upper bound after Add and Sub.
type PolynomialDFS[E any] struct {
	domain *Domain[E]
	values []E
	degree int
}

// FromCoefficients evaluates p over d
func FromCoefficients[E any](d *Domain[E], p *Polynomial[E]) (*PolynomialDFS[E], error) {
	values, err := d.FFT(p.coefficients)
	if err != nil {
		return nil, err
	}
	return &PolynomialDFS[E]{domain: d, values: values, degree: p.Degree()}, nil
}

// NewPolynomialDFS wraps evaluations over d; the degree is recovered by interpolation
func NewPolynomialDFS[E any](d *Domain[E], values []E) (*PolynomialDFS[E], error) {
	coeffs, err := d.IFFT(values)
	if err != nil {
		return nil, err
	}
	v := make([]E, len(values))
	copy(v, values)
	return &PolynomialDFS[E]{domain: d, values: v, degree: len(trim(d.Field, coeffs)) - 1}, nil
}

// Domain returns the evaluation domain
func (p *PolynomialDFS[E]) Domain() *Domain[E] {
	return p.domain
}

// Size returns the number of evaluations
func (p *PolynomialDFS[E]) Size() int {
	return len(p.values)
}

// Degree returns the tracked degree, -1 for zero
func (p *PolynomialDFS[E]) Degree() int {
	return p.degree
}

// Values returns a copy of the evaluations in natural domain order
func (p *PolynomialDFS[E]) Values() []E {
	v := make([]E, len(p.values))
	copy(v, p.values)
	return v
}

// Value returns the evaluation at domain element i
func (p *PolynomialDFS[E]) Value(i int) E {
	return p.values[i]
}

// Coefficients interpolates back to coefficient form
func (p *PolynomialDFS[E]) Coefficients() (*Polynomial[E], error) {
	coeffs, err := p.domain.IFFT(p.values)
	if err != nil {
		return nil, err
	}
	return &Polynomial[E]{coefficients: trim(p.domain.Field, coeffs), field: p.domain.Field}, nil
}

func (p *PolynomialDFS[E]) checkDomain(other *PolynomialDFS[E]) error {
	if !p.domain.Equal(other.domain) {
		return fmt.Errorf("sizes %d and %d: %w", p.domain.Size, other.domain.Size, ErrDomainMismatch)
	}
	return nil
}

// Add adds pointwise
func (p *PolynomialDFS[E]) Add(other *PolynomialDFS[E]) (*PolynomialDFS[E], error) {
	if err := p.checkDomain(other); err != nil {
		return nil, err
	}
	f := p.domain.Field
	values := make([]E, len(p.values))
	for i := range values {
		values[i] = f.Add(p.values[i], other.values[i])
	}
	return &PolynomialDFS[E]{domain: p.domain, values: values, degree: max(p.degree, other.degree)}, nil
}

// Sub subtracts pointwise
func (p *PolynomialDFS[E]) Sub(other *PolynomialDFS[E]) (*PolynomialDFS[E], error) {
	if err := p.checkDomain(other); err != nil {
		return nil, err
	}
	f := p.domain.Field
	values := make([]E, len(p.values))
	for i := range values {
		values[i] = f.Sub(p.values[i], other.values[i])
	}
	return &PolynomialDFS[E]{domain: p.domain, values: values, degree: max(p.degree, other.degree)}, nil
}

// Mul multiplies pointwise; the product degree must stay below the domain size
func (p *PolynomialDFS[E]) Mul(other *PolynomialDFS[E]) (*PolynomialDFS[E], error) {
	if err := p.checkDomain(other); err != nil {
		return nil, err
	}
	degree := p.degree + other.degree
	if p.degree < 0 || other.degree < 0 {
		degree = -1
	}
	if degree >= p.domain.Size {
		return nil, fmt.Errorf("product degree %d on a domain of size %d: %w",
			degree, p.domain.Size, ErrDegreeTooLarge)
	}
	f := p.domain.Field
	values := make([]E, len(p.values))
	for i := range values {
		values[i] = f.Mul(p.values[i], other.values[i])
	}
	return &PolynomialDFS[E]{domain: p.domain, values: values, degree: degree}, nil
}

// Evaluate evaluates at an arbitrary point
func (p *PolynomialDFS[E]) Evaluate(point E) (E, error) {
	if i := p.domain.IndexOf(point); i >= 0 {
		return p.values[i], nil
	}
	coeffs, err := p.Coefficients()
	if err != nil {
		var zero E
		return zero, err
	}
	return coeffs.Eval(point), nil
}

// Resize re-evaluates the polynomial over the coset of the same offset with newSize elements
func (p *PolynomialDFS[E]) Resize(newSize int) (*PolynomialDFS[E], error) {
	if newSize <= p.degree {
		return nil, fmt.Errorf("degree %d does not fit %d evaluations: %w", p.degree, newSize, ErrDegreeTooLarge)
	}
	d, err := NewCosetDomain(p.domain.Field, newSize, p.domain.Offset)
	if err != nil {
		return nil, err
	}
	coeffs, err := p.Coefficients()
	if err != nil {
		return nil, err
	}
	return FromCoefficients(d, coeffs)
}
