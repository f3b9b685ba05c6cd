package core

import "errors"

var (
	// ErrNotPowerOfTwo is returned when a size that must be a power of two is not
	ErrNotPowerOfTwo = errors.New("size must be a power of two")

	// ErrDomainMismatch is returned when DFS operands live on different domains
	ErrDomainMismatch = errors.New("evaluation domain size mismatch")

	// ErrDivisionRemainder is returned by exact division when the divisor does not divide
	ErrDivisionRemainder = errors.New("polynomial division left a non-zero remainder")

	// ErrDivisionByZero is returned when dividing by the zero polynomial or the zero element
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDuplicatePoint is returned by interpolation over repeated abscissas
	ErrDuplicatePoint = errors.New("duplicate interpolation point")

	// ErrNoRootOfUnity is returned when the field has no root of unity of the requested order
	ErrNoRootOfUnity = errors.New("no root of unity of the requested order")

	// ErrDegreeTooLarge is returned when a polynomial does not fit in a domain
	ErrDegreeTooLarge = errors.New("polynomial degree does not fit the domain")

	// ErrUnknownHash is returned for unregistered hash function names
	ErrUnknownHash = errors.New("unknown hash function")

	// ErrIndexOutOfRange is returned for Merkle openings outside the tree
	ErrIndexOutOfRange = errors.New("index out of range")
)
