package vybiumlpc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/protocols"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/utils"
)

// Field is the arithmetic capability set a scheme is instantiated over
type Field[E any] = core.Field[E]

// Polynomial is a polynomial in coefficient form
type Polynomial[E any] = core.Polynomial[E]

// PolynomialDFS is a polynomial in evaluation form over a power-of-two domain
type PolynomialDFS[E any] = core.PolynomialDFS[E]

// Domain is a multiplicative coset of power-of-two size
type Domain[E any] = core.Domain[E]

// Commitment is the Merkle commitment to a batch of polynomials over D0
type Commitment[E any] = protocols.Precommitment[E]

// Proof is a batched evaluation proof
type Proof[E any] = protocols.LPCProof[E]

// Config represents configuration for a commitment scheme
type Config = utils.Config

// Element types of the built-in fields
type (
	GoldilocksElement = field.Element
	BN254Element      = fr.Element
	PrimeElement      = core.PrimeElement
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// NewPolynomial creates a polynomial from its coefficients, lowest degree first
func NewPolynomial[E any](f Field[E], coefficients []E) *Polynomial[E] {
	return core.NewPolynomial(f, coefficients)
}

// NewPolynomialFromUint64 creates a polynomial from small integer coefficients
func NewPolynomialFromUint64[E any](f Field[E], coefficients []uint64) *Polynomial[E] {
	return core.NewPolynomialFromUint64(f, coefficients)
}

// NewPolynomialDFS wraps evaluations over d
func NewPolynomialDFS[E any](d *Domain[E], values []E) (*PolynomialDFS[E], error) {
	return core.NewPolynomialDFS(d, values)
}

// RandomElement samples a uniform element of f from crypto/rand
func RandomElement[E any](f Field[E]) (E, error) {
	return core.RandomElement(f, nil)
}
