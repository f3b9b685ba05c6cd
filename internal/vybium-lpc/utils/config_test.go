package utils

import (
	"math/big"
	"testing"
)

// TestDefaultConfig tests the DefaultConfig function
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if config.DomainSize() != 2048 {
		t.Errorf("expected domain size 2048, got %d", config.DomainSize())
	}
}

// TestConfigValidate tests rejected configurations
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown field", func(c *Config) { c.Field = "mersenne" }},
		{"prime without modulus", func(c *Config) { c.Field = FieldPrime }},
		{"zero domain", func(c *Config) { c.LogDomainSize = 0 }},
		{"degree too large", func(c *Config) { c.MaxDegree = 2048 }},
		{"negative degree", func(c *Config) { c.MaxDegree = -1 }},
		{"empty steps", func(c *Config) { c.StepList = nil }},
		{"zero step", func(c *Config) { c.StepList = []int{1, 0} }},
		{"too many folds", func(c *Config) { c.StepList = []int{6, 6} }},
		{"unaligned degree", func(c *Config) { c.MaxDegree = 254 }},
		{"zero offset", func(c *Config) { c.CosetOffset = 0 }},
		{"zero lambda", func(c *Config) { c.Lambda = 0 }},
		{"unknown merkle hash", func(c *Config) { c.MerkleHash = "md5" }},
		{"unknown transcript hash", func(c *Config) { c.TranscriptHash = "md5" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestConfigBuilders tests the With* builders and Clone
func TestConfigBuilders(t *testing.T) {
	config := DefaultConfig().
		WithPrimeField(big.NewInt(3221225473)).
		WithLogDomainSize(4).
		WithMaxDegree(3).
		WithStepList(1, 1).
		WithCosetOffset(1).
		WithLambda(2).
		WithCombine(false).
		WithIndependentRepetitions(true).
		WithHashFunction("sha256").
		WithTranscriptSeed("test")

	if err := config.Validate(); err != nil {
		t.Fatalf("config should be valid: %v", err)
	}
	if config.FieldModulus != "3221225473" || config.MerkleHash != "sha256" || config.TranscriptHash != "sha256" {
		t.Errorf("builders not applied: %+v", config)
	}

	clone := config.Clone()
	clone.StepList[0] = 2
	if config.StepList[0] != 1 {
		t.Error("Clone should copy the step list")
	}

	config.WithField(FieldBN254)
	if config.Field != FieldBN254 {
		t.Errorf("expected bn254, got %s", config.Field)
	}
}
