package utils

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
)

// Field names accepted in Config.Field
const (
	FieldGoldilocks = "goldilocks"
	FieldBN254      = "bn254"
	FieldPrime      = "prime"
)

// Config represents the configuration of a commitment scheme instance
type Config struct {
	// Field is one of goldilocks, bn254 or prime
	Field string `json:"field"`
	// FieldModulus is the decimal modulus when Field is prime
	FieldModulus string `json:"field_modulus,omitempty"`

	// LogDomainSize is log2 of the size of the evaluation domain D0
	LogDomainSize int `json:"log_domain_size"`
	// MaxDegree bounds the degree of committed polynomials
	MaxDegree int `json:"max_degree"`
	// StepList holds the number of halvings performed in each FRI round
	StepList []int `json:"step_list"`
	// CosetOffset shifts D0 off the subgroup; 1 keeps the subgroup
	CosetOffset uint64 `json:"coset_offset"`

	// Lambda is the number of FRI queries
	Lambda int `json:"lambda"`
	// IndependentRepetitions runs Lambda separate one-query FRI instances instead of one shared folding
	IndependentRepetitions bool `json:"independent_repetitions"`
	// Combine folds all quotients into one FRI column with a transcript challenge
	Combine bool `json:"combine"`

	MerkleHash     string `json:"merkle_hash"`
	TranscriptHash string `json:"transcript_hash"`
	TranscriptSeed string `json:"transcript_seed"`
}

// DefaultConfig returns a configuration for polynomials of degree < 256 on a domain of 2048
func DefaultConfig() *Config {
	return &Config{
		Field:          FieldGoldilocks,
		LogDomainSize:  11,
		MaxDegree:      255,
		StepList:       []int{1, 1, 1, 1, 1, 1},
		CosetOffset:    7,
		Lambda:         20,
		Combine:        true,
		MerkleHash:     core.HashSHA3,
		TranscriptHash: core.HashSHA3,
		TranscriptSeed: "vybium-lpc",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Field {
	case FieldGoldilocks, FieldBN254:
	case FieldPrime:
		if _, ok := new(big.Int).SetString(c.FieldModulus, 10); !ok {
			return fmt.Errorf("field modulus %q is not a decimal integer", c.FieldModulus)
		}
	default:
		return fmt.Errorf("field must be '%s', '%s' or '%s', got '%s'",
			FieldGoldilocks, FieldBN254, FieldPrime, c.Field)
	}

	if c.LogDomainSize < 1 || c.LogDomainSize > 30 {
		return fmt.Errorf("log domain size must be in [1, 30], got %d", c.LogDomainSize)
	}

	if c.MaxDegree < 0 || c.MaxDegree >= 1<<c.LogDomainSize {
		return fmt.Errorf("max degree %d must be in [0, %d)", c.MaxDegree, 1<<c.LogDomainSize)
	}

	total := 0
	for i, step := range c.StepList {
		if step < 1 {
			return fmt.Errorf("step %d must be positive, got %d", i, step)
		}
		total += step
	}
	if len(c.StepList) == 0 || total > c.LogDomainSize {
		return fmt.Errorf("step list %v must be non-empty and fold at most %d times", c.StepList, c.LogDomainSize)
	}

	if (c.MaxDegree+1)%(1<<total) != 0 {
		return fmt.Errorf("max degree %d: MaxDegree+1 must be a multiple of 2^%d, the number of foldings", c.MaxDegree, total)
	}

	if c.CosetOffset == 0 {
		return fmt.Errorf("coset offset must be non-zero")
	}

	if c.Lambda <= 0 {
		return fmt.Errorf("lambda must be positive")
	}

	if _, err := core.NewHasher(c.MerkleHash); err != nil {
		return fmt.Errorf("merkle hash: %w", err)
	}
	if _, err := core.NewHasher(c.TranscriptHash); err != nil {
		return fmt.Errorf("transcript hash: %w", err)
	}

	return nil
}

// DomainSize returns |D0|
func (c *Config) DomainSize() int {
	return 1 << c.LogDomainSize
}

// WithField selects a named field
func (c *Config) WithField(name string) *Config {
	c.Field = name
	return c
}

// WithPrimeField selects a prime field of the given modulus
func (c *Config) WithPrimeField(modulus *big.Int) *Config {
	c.Field = FieldPrime
	c.FieldModulus = modulus.String()
	return c
}

// WithLogDomainSize sets log2 |D0|
func (c *Config) WithLogDomainSize(logSize int) *Config {
	c.LogDomainSize = logSize
	return c
}

// WithMaxDegree sets the degree bound
func (c *Config) WithMaxDegree(degree int) *Config {
	c.MaxDegree = degree
	return c
}

// WithStepList sets the FRI step list
func (c *Config) WithStepList(steps ...int) *Config {
	c.StepList = append([]int(nil), steps...)
	return c
}

// WithCosetOffset sets the offset of D0
func (c *Config) WithCosetOffset(offset uint64) *Config {
	c.CosetOffset = offset
	return c
}

// WithLambda sets the number of queries
func (c *Config) WithLambda(lambda int) *Config {
	c.Lambda = lambda
	return c
}

// WithCombine toggles quotient combination
func (c *Config) WithCombine(combine bool) *Config {
	c.Combine = combine
	return c
}

// WithIndependentRepetitions toggles one FRI instance per query
func (c *Config) WithIndependentRepetitions(independent bool) *Config {
	c.IndependentRepetitions = independent
	return c
}

// WithHashFunction sets both the Merkle and the transcript hash
func (c *Config) WithHashFunction(name string) *Config {
	c.MerkleHash = name
	c.TranscriptHash = name
	return c
}

// WithTranscriptSeed sets the public transcript seed
func (c *Config) WithTranscriptSeed(seed string) *Config {
	c.TranscriptSeed = seed
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.StepList = append([]int(nil), c.StepList...)
	return &clone
}
