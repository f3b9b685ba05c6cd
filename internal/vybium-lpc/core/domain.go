package core

import "fmt"

// Domain is the multiplicative coset {offset * generator^i : i = 0..size-1}.
// Size is a power of two and generator a primitive size-th root of unity.
type Domain[E any] struct {
	Field     Field[E]
	Offset    E
	Generator E
	Size      int
}

// NewDomain creates the subgroup of the given power-of-two size
func NewDomain[E any](f Field[E], size int) (*Domain[E], error) {
	return NewCosetDomain(f, size, f.One())
}

// NewCosetDomain creates the coset offset * <omega> of the given power-of-two size
func NewCosetDomain[E any](f Field[E], size int, offset E) (*Domain[E], error) {
	if !IsPowerOfTwo(size) {
		return nil, fmt.Errorf("domain size %d: %w", size, ErrNotPowerOfTwo)
	}
	if f.IsZero(offset) {
		return nil, fmt.Errorf("domain offset must be non-zero")
	}
	generator, err := f.RootOfUnity(size)
	if err != nil {
		return nil, err
	}
	return &Domain[E]{
		Field:     f,
		Offset:    offset,
		Generator: generator,
		Size:      size,
	}, nil
}

// Element returns offset * generator^i
func (d *Domain[E]) Element(i int) E {
	i %= d.Size
	if i < 0 {
		i += d.Size
	}
	return d.Field.Mul(d.Offset, d.Field.Exp(d.Generator, uint64(i)))
}

// Elements returns all elements in natural order
func (d *Domain[E]) Elements() []E {
	elements := make([]E, d.Size)
	current := d.Offset
	for i := 0; i < d.Size; i++ {
		elements[i] = current
		current = d.Field.Mul(current, d.Generator)
	}
	return elements
}

// Halve returns the domain of squares: size/2, offset² and generator²
func (d *Domain[E]) Halve() (*Domain[E], error) {
	if d.Size < 2 {
		return nil, fmt.Errorf("cannot halve domain of size %d", d.Size)
	}
	return &Domain[E]{
		Field:     d.Field,
		Offset:    Square(d.Field, d.Offset),
		Generator: Square(d.Field, d.Generator),
		Size:      d.Size / 2,
	}, nil
}

// IndexOf returns i with Element(i) == x, or -1
func (d *Domain[E]) IndexOf(x E) int {
	current := d.Offset
	for i := 0; i < d.Size; i++ {
		if d.Field.Equal(current, x) {
			return i
		}
		current = d.Field.Mul(current, d.Generator)
	}
	return -1
}

// Contains reports whether x lies in the domain
func (d *Domain[E]) Contains(x E) bool {
	return d.IndexOf(x) >= 0
}

// Equal reports whether both domains enumerate the same elements in the same order
func (d *Domain[E]) Equal(other *Domain[E]) bool {
	return d.Size == other.Size &&
		d.Field.Equal(d.Offset, other.Offset) &&
		d.Field.Equal(d.Generator, other.Generator)
}

func (d *Domain[E]) String() string {
	return fmt.Sprintf("Domain{size: %d, offset: %s, generator: %s}",
		d.Size, d.Field.String(d.Offset), d.Field.String(d.Generator))
}

// FFT evaluates the polynomial with the given coefficients over the domain.
// Shorter inputs are zero-padded.
func (d *Domain[E]) FFT(coeffs []E) ([]E, error) {
	if len(coeffs) > d.Size {
		return nil, fmt.Errorf("%d coefficients on a domain of size %d: %w",
			len(coeffs), d.Size, ErrDegreeTooLarge)
	}
	f := d.Field
	values := make([]E, d.Size)
	copy(values, coeffs)
	for i := len(coeffs); i < d.Size; i++ {
		values[i] = f.Zero()
	}

	// p(offset * x) has coefficients c_i * offset^i
	if !f.Equal(d.Offset, f.One()) {
		shift := Powers(f, d.Offset, len(coeffs))
		for i := range coeffs {
			values[i] = f.Mul(values[i], shift[i])
		}
	}

	ntt(f, values, d.Generator)
	return values, nil
}

// IFFT interpolates values given in natural domain order back to coefficients (not trimmed)
func (d *Domain[E]) IFFT(values []E) ([]E, error) {
	if len(values) != d.Size {
		return nil, fmt.Errorf("%d values on a domain of size %d: %w",
			len(values), d.Size, ErrDomainMismatch)
	}
	f := d.Field
	coeffs := make([]E, d.Size)
	copy(coeffs, values)

	ntt(f, coeffs, f.Inverse(d.Generator))

	sizeInv := f.Inverse(f.FromUint64(uint64(d.Size)))
	if f.Equal(d.Offset, f.One()) {
		for i := range coeffs {
			coeffs[i] = f.Mul(coeffs[i], sizeInv)
		}
		return coeffs, nil
	}

	shift := Powers(f, f.Inverse(d.Offset), d.Size)
	for i := range coeffs {
		coeffs[i] = f.Mul(coeffs[i], f.Mul(sizeInv, shift[i]))
	}
	return coeffs, nil
}

// ntt is an in-place iterative radix-2 transform with root omega.
// The n/2 butterflies of a stage are independent and split across goroutines.
func ntt[E any](f Field[E], a []E, omega E) {
	n := len(a)
	if n <= 1 {
		return
	}
	bitReverse(a)

	twiddles := Powers(f, omega, n/2)
	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		stride := n / length
		ParallelizeAbove(n/2, func(start, end int) {
			for b := start; b < end; b++ {
				i := (b/half)*length + b%half
				j := b % half
				u := a[i]
				v := f.Mul(a[i+half], twiddles[j*stride])
				a[i] = f.Add(u, v)
				a[i+half] = f.Sub(u, v)
			}
		})
	}
}
