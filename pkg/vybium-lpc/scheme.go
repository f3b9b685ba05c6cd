package vybiumlpc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/protocols"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/utils"
)

// Scheme is a configured batched polynomial commitment over the field E.
// It is safe for concurrent use; every proof and verification gets its own transcript.
type Scheme[E any] struct {
	config           *Config
	params           *protocols.LPCParams[E]
	transcriptHasher core.Hasher
}

// NewScheme builds a scheme over f; Config.Field is not consulted
func NewScheme[E any](f Field[E], config *Config) (*Scheme[E], error) {
	if config == nil {
		return nil, &LPCError{Code: ErrInvalidConfig, Message: "nil config"}
	}
	if err := config.Validate(); err != nil {
		return nil, wrapError(ErrInvalidConfig, "invalid config", err)
	}

	merkleHasher, err := core.NewHasher(config.MerkleHash)
	if err != nil {
		return nil, wrapError(ErrInvalidConfig, "merkle hash", err)
	}
	transcriptHasher, err := core.NewHasher(config.TranscriptHash)
	if err != nil {
		return nil, wrapError(ErrInvalidConfig, "transcript hash", err)
	}

	friParams, err := protocols.NewFRIParams(f, config.LogDomainSize, config.MaxDegree, config.StepList,
		f.FromUint64(config.CosetOffset), merkleHasher)
	if err != nil {
		return nil, wrapError(ErrInvalidConfig, "fri parameters", err)
	}

	return &Scheme[E]{
		config: config.Clone(),
		params: &protocols.LPCParams[E]{
			FRI:                    friParams,
			Lambda:                 config.Lambda,
			Combine:                config.Combine,
			IndependentRepetitions: config.IndependentRepetitions,
		},
		transcriptHasher: transcriptHasher,
	}, nil
}

func checkFieldName(config *Config, want string) error {
	if config != nil && config.Field != want {
		return &LPCError{
			Code:    ErrInvalidConfig,
			Message: fmt.Sprintf("config selects field %q, expected %q", config.Field, want),
		}
	}
	return nil
}

// NewGoldilocksScheme builds a scheme over the Goldilocks field
func NewGoldilocksScheme(config *Config) (*Scheme[field.Element], error) {
	if err := checkFieldName(config, utils.FieldGoldilocks); err != nil {
		return nil, err
	}
	return NewScheme[field.Element](core.NewGoldilocks(), config)
}

// NewBN254Scheme builds a scheme over the BN254 scalar field
func NewBN254Scheme(config *Config) (*Scheme[fr.Element], error) {
	if err := checkFieldName(config, utils.FieldBN254); err != nil {
		return nil, err
	}
	return NewScheme[fr.Element](core.NewBN254(), config)
}

// NewPrimeScheme builds a scheme over the prime field named by config.FieldModulus
func NewPrimeScheme(config *Config) (*Scheme[core.PrimeElement], error) {
	if err := checkFieldName(config, utils.FieldPrime); err != nil {
		return nil, err
	}
	modulus, ok := new(big.Int).SetString(config.FieldModulus, 10)
	if !ok {
		return nil, &LPCError{Code: ErrInvalidConfig, Message: "invalid field modulus"}
	}
	f, err := core.NewPrimeField(modulus)
	if err != nil {
		return nil, wrapError(ErrFieldCreation, "failed to create field", err)
	}
	return NewScheme[core.PrimeElement](f, config)
}

// Field returns the field the scheme works over
func (s *Scheme[E]) Field() Field[E] {
	return s.params.FRI.Field
}

// Domain returns the evaluation domain D0
func (s *Scheme[E]) Domain() *Domain[E] {
	return s.params.FRI.Domains[0]
}

// Config returns a copy of the configuration
func (s *Scheme[E]) Config() *Config {
	return s.config.Clone()
}

// Params exposes the protocol parameters
func (s *Scheme[E]) Params() *protocols.LPCParams[E] {
	return s.params
}

// NewTranscript returns a transcript in the initial state shared by prover and verifier
func (s *Scheme[E]) NewTranscript() *utils.Transcript {
	return utils.NewTranscript(s.transcriptHasher, []byte(s.config.TranscriptSeed))
}

// Commit commits to polynomials of degree at most MaxDegree
func (s *Scheme[E]) Commit(polys []*Polynomial[E]) (*Commitment[E], error) {
	for i, p := range polys {
		if p.Degree() > s.config.MaxDegree {
			return nil, &LPCError{
				Code:    ErrInvalidInput,
				Message: fmt.Sprintf("polynomial %d has degree %d above %d", i, p.Degree(), s.config.MaxDegree),
			}
		}
	}
	pre, err := protocols.Commit(s.params, polys)
	if err != nil {
		return nil, wrapError(ErrCommitment, "commit", err)
	}
	return pre, nil
}

// CommitDFS commits to polynomials given by their values over D0
func (s *Scheme[E]) CommitDFS(polys []*PolynomialDFS[E]) (*Commitment[E], error) {
	pre, err := protocols.CommitDFS(s.params, polys)
	if err != nil {
		return nil, wrapError(ErrCommitment, "commit", err)
	}
	return pre, nil
}

// ProveEval opens polys[i] at points[i]; commitment must come from Commit(polys)
func (s *Scheme[E]) ProveEval(points [][]E, commitment *Commitment[E], polys []*Polynomial[E]) (*Proof[E], error) {
	proof, err := protocols.ProveEval(points, commitment, polys, s.params, s.NewTranscript())
	if err != nil {
		return nil, wrapError(ErrProofGeneration, "prove evaluation", err)
	}
	return proof, nil
}

// ProveEvalShared opens every polynomial at the same points
func (s *Scheme[E]) ProveEvalShared(points []E, commitment *Commitment[E], polys []*Polynomial[E]) (*Proof[E], error) {
	proof, err := protocols.ProveEvalShared(points, commitment, polys, s.params, s.NewTranscript())
	if err != nil {
		return nil, wrapError(ErrProofGeneration, "prove evaluation", err)
	}
	return proof, nil
}

// ProveEvalDFS opens polynomials held in evaluation form
func (s *Scheme[E]) ProveEvalDFS(points [][]E, commitment *Commitment[E], polys []*PolynomialDFS[E]) (*Proof[E], error) {
	proof, err := protocols.ProveEvalDFS(points, commitment, polys, s.params, s.NewTranscript())
	if err != nil {
		return nil, wrapError(ErrProofGeneration, "prove evaluation", err)
	}
	return proof, nil
}

// VerifyEval checks proof against the points; the claimed values are proof.Z
func (s *Scheme[E]) VerifyEval(points [][]E, proof *Proof[E]) bool {
	return protocols.VerifyEval(points, proof, s.params, s.NewTranscript())
}

// VerifyEvalShared mirrors ProveEvalShared
func (s *Scheme[E]) VerifyEvalShared(points []E, proof *Proof[E]) bool {
	return protocols.VerifyEvalShared(points, proof, s.params, s.NewTranscript())
}

// EncodeProof serializes proof in the scheme's field encoding
func (s *Scheme[E]) EncodeProof(proof *Proof[E]) []byte {
	return protocols.EncodeLPCProof(s.Field(), proof)
}

// DecodeProof parses bytes produced by EncodeProof
func (s *Scheme[E]) DecodeProof(data []byte) (*Proof[E], error) {
	proof, err := protocols.DecodeLPCProof(s.Field(), data)
	if err != nil {
		return nil, wrapError(ErrInvalidInput, "decode proof", err)
	}
	return proof, nil
}
