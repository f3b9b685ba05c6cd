package vybiumlpc

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/protocols"
)

// ErrorCode represents a Vybium LPC error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrFieldCreation represents a field creation error
	ErrFieldCreation

	// ErrCommitment represents a failure to commit to polynomials
	ErrCommitment

	// ErrProofGeneration represents a proof generation error
	ErrProofGeneration

	// ErrInvalidInput represents an invalid input error
	ErrInvalidInput

	// ErrDomainMismatch represents evaluations over the wrong domain
	ErrDomainMismatch

	// ErrDivisionRemainder represents a claimed evaluation the polynomial does not take
	ErrDivisionRemainder
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidConfig:
		return "invalid config"
	case ErrFieldCreation:
		return "field creation"
	case ErrCommitment:
		return "commitment"
	case ErrProofGeneration:
		return "proof generation"
	case ErrInvalidInput:
		return "invalid input"
	case ErrDomainMismatch:
		return "domain mismatch"
	case ErrDivisionRemainder:
		return "division remainder"
	default:
		return "unknown"
	}
}

// LPCError represents a Vybium LPC error
type LPCError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *LPCError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-lpc error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-lpc error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *LPCError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *LPCError) Is(target error) bool {
	t, ok := target.(*LPCError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// wrapError attaches the code matching the internal cause, or fallback
func wrapError(fallback ErrorCode, message string, err error) error {
	if err == nil {
		return nil
	}
	code := fallback
	switch {
	case errors.Is(err, core.ErrDomainMismatch):
		code = ErrDomainMismatch
	case errors.Is(err, core.ErrDivisionRemainder):
		code = ErrDivisionRemainder
	case errors.Is(err, protocols.ErrInvalidParams), errors.Is(err, core.ErrUnknownHash),
		errors.Is(err, core.ErrNotPowerOfTwo), errors.Is(err, core.ErrNoRootOfUnity):
		code = ErrInvalidConfig
	case errors.Is(err, protocols.ErrPointInDomain), errors.Is(err, protocols.ErrShapeMismatch),
		errors.Is(err, core.ErrDuplicatePoint), errors.Is(err, core.ErrDegreeTooLarge):
		code = ErrInvalidInput
	}
	return &LPCError{Code: code, Message: message, Cause: err}
}
