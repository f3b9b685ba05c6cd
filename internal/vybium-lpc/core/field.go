package core

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Field is the arithmetic capability set every component is parameterised over.
// Elements have value semantics: no operation mutates its arguments.
type Field[E any] interface {
	// Name identifies the field in configs and transcripts
	Name() string
	// Modulus returns a copy of the characteristic
	Modulus() *big.Int
	// ElementSize is the length of Bytes output
	ElementSize() int

	Zero() E
	One() E
	FromUint64(v uint64) E

	Add(a, b E) E
	Sub(a, b E) E
	Mul(a, b E) E
	Neg(a E) E
	// Inverse returns the multiplicative inverse, and zero for zero
	Inverse(a E) E
	Exp(a E, k uint64) E
	Equal(a, b E) bool
	IsZero(a E) bool

	// RootOfUnity returns a primitive n-th root of unity for a power-of-two n
	RootOfUnity(n int) (E, error)

	// Bytes is the fixed-size big-endian canonical encoding
	Bytes(a E) []byte
	// SetBytes interprets b as a big-endian integer and reduces it modulo p
	SetBytes(b []byte) E
	String(a E) string
}

// Div returns a / b
func Div[E any](f Field[E], a, b E) (E, error) {
	if f.IsZero(b) {
		var zero E
		return zero, fmt.Errorf("%s: %w", f.Name(), ErrDivisionByZero)
	}
	return f.Mul(a, f.Inverse(b)), nil
}

// Square returns a²
func Square[E any](f Field[E], a E) E {
	return f.Mul(a, a)
}

// RandomElement samples a uniformly distributed element from r.
// A nil reader means crypto/rand.
func RandomElement[E any](f Field[E], r io.Reader) (E, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, f.ElementSize()+16)
	if _, err := io.ReadFull(r, buf); err != nil {
		var zero E
		return zero, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.SetBytes(buf), nil
}

// Powers returns [1, x, x², ..., x^(n-1)]
func Powers[E any](f Field[E], x E, n int) []E {
	out := make([]E, n)
	if n == 0 {
		return out
	}
	out[0] = f.One()
	for i := 1; i < n; i++ {
		out[i] = f.Mul(out[i-1], x)
	}
	return out
}

// ElementsToBytes concatenates the canonical encodings of xs
func ElementsToBytes[E any](f Field[E], xs []E) []byte {
	size := f.ElementSize()
	out := make([]byte, 0, size*len(xs))
	for _, x := range xs {
		out = append(out, f.Bytes(x)...)
	}
	return out
}

// PrimeElement is an element of a PrimeField, always reduced
type PrimeElement struct {
	value *big.Int
}

// PrimeField is a prime field of arbitrary modulus over math/big
type PrimeField struct {
	modulus    *big.Int
	size       int
	twoAdicity int
	generator  *big.Int
}

// NewPrimeField creates a new prime field with the given modulus.
// A quadratic non-residue is searched among small integers to derive roots of unity.
func NewPrimeField(modulus *big.Int) (*PrimeField, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	if !modulus.ProbablyPrime(20) {
		return nil, fmt.Errorf("modulus %s is not prime", modulus)
	}

	pMinus1 := new(big.Int).Sub(modulus, big.NewInt(1))
	twoAdicity := 0
	for pMinus1.Bit(twoAdicity) == 0 {
		twoAdicity++
	}

	// g is a non-residue iff g^((p-1)/2) = -1; any non-residue generates the 2-Sylow subgroup
	half := new(big.Int).Rsh(pMinus1, 1)
	var generator *big.Int
	for g := int64(2); g < 1000; g++ {
		candidate := big.NewInt(g)
		if new(big.Int).Exp(candidate, half, modulus).Cmp(pMinus1) == 0 {
			generator = candidate
			break
		}
	}
	if generator == nil {
		return nil, fmt.Errorf("no quadratic non-residue below 1000 for modulus %s", modulus)
	}

	return &PrimeField{
		modulus:    new(big.Int).Set(modulus),
		size:       (modulus.BitLen() + 7) / 8,
		twoAdicity: twoAdicity,
		generator:  generator,
	}, nil
}

// NewPrimeFieldFromUint64 creates a new prime field with the given modulus
func NewPrimeFieldFromUint64(modulus uint64) (*PrimeField, error) {
	return NewPrimeField(new(big.Int).SetUint64(modulus))
}

func (f *PrimeField) Name() string {
	return fmt.Sprintf("prime(%s)", f.modulus.String())
}

func (f *PrimeField) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

func (f *PrimeField) ElementSize() int {
	return f.size
}

// TwoAdicity returns the largest k with 2^k | p-1
func (f *PrimeField) TwoAdicity() int {
	return f.twoAdicity
}

// NewElement reduces value modulo p
func (f *PrimeField) NewElement(value *big.Int) PrimeElement {
	return PrimeElement{value: new(big.Int).Mod(value, f.modulus)}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *PrimeField) NewElementFromInt64(value int64) PrimeElement {
	return f.NewElement(big.NewInt(value))
}

func (f *PrimeField) val(a PrimeElement) *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return a.value
}

func (f *PrimeField) Zero() PrimeElement {
	return PrimeElement{value: new(big.Int)}
}

func (f *PrimeField) One() PrimeElement {
	return PrimeElement{value: big.NewInt(1)}
}

func (f *PrimeField) FromUint64(v uint64) PrimeElement {
	return f.NewElement(new(big.Int).SetUint64(v))
}

func (f *PrimeField) Add(a, b PrimeElement) PrimeElement {
	return f.NewElement(new(big.Int).Add(f.val(a), f.val(b)))
}

func (f *PrimeField) Sub(a, b PrimeElement) PrimeElement {
	return f.NewElement(new(big.Int).Sub(f.val(a), f.val(b)))
}

func (f *PrimeField) Mul(a, b PrimeElement) PrimeElement {
	return f.NewElement(new(big.Int).Mul(f.val(a), f.val(b)))
}

func (f *PrimeField) Neg(a PrimeElement) PrimeElement {
	return f.NewElement(new(big.Int).Neg(f.val(a)))
}

func (f *PrimeField) Inverse(a PrimeElement) PrimeElement {
	if f.IsZero(a) {
		return f.Zero()
	}
	return PrimeElement{value: new(big.Int).ModInverse(f.val(a), f.modulus)}
}

func (f *PrimeField) Exp(a PrimeElement, k uint64) PrimeElement {
	return PrimeElement{value: new(big.Int).Exp(f.val(a), new(big.Int).SetUint64(k), f.modulus)}
}

func (f *PrimeField) Equal(a, b PrimeElement) bool {
	return f.val(a).Cmp(f.val(b)) == 0
}

func (f *PrimeField) IsZero(a PrimeElement) bool {
	return f.val(a).Sign() == 0
}

func (f *PrimeField) RootOfUnity(n int) (PrimeElement, error) {
	if !IsPowerOfTwo(n) {
		return f.Zero(), fmt.Errorf("root of unity of order %d: %w", n, ErrNotPowerOfTwo)
	}
	if Log2(n) > f.twoAdicity {
		return f.Zero(), fmt.Errorf("%s has two-adicity %d, order %d requested: %w",
			f.Name(), f.twoAdicity, n, ErrNoRootOfUnity)
	}
	exponent := new(big.Int).Sub(f.modulus, big.NewInt(1))
	exponent.Div(exponent, big.NewInt(int64(n)))
	return PrimeElement{value: new(big.Int).Exp(f.generator, exponent, f.modulus)}, nil
}

func (f *PrimeField) Bytes(a PrimeElement) []byte {
	out := make([]byte, f.size)
	f.val(a).FillBytes(out)
	return out
}

func (f *PrimeField) SetBytes(b []byte) PrimeElement {
	return f.NewElement(new(big.Int).SetBytes(b))
}

func (f *PrimeField) String(a PrimeElement) string {
	return f.val(a).String()
}

// DefaultPrimeField is 3 * 2^30 + 1, small enough to read test vectors by hand
var DefaultPrimeField, _ = NewPrimeFieldFromUint64(3221225473)

var _ Field[PrimeElement] = (*PrimeField)(nil)
