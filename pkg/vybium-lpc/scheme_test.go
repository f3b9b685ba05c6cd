package vybiumlpc

import (
	"errors"
	"testing"
)

func testConfig() *Config {
	return DefaultConfig().
		WithLogDomainSize(6).
		WithMaxDegree(15).
		WithStepList(1, 1, 1).
		WithLambda(8)
}

// TestGoldilocksScheme runs commit, prove and verify end to end
func TestGoldilocksScheme(t *testing.T) {
	scheme, err := NewGoldilocksScheme(testConfig())
	if err != nil {
		t.Fatalf("NewGoldilocksScheme: %v", err)
	}
	f := scheme.Field()

	polys := []*Polynomial[GoldilocksElement]{
		NewPolynomialFromUint64(f, []uint64{1, 3, 4}),
		NewPolynomialFromUint64(f, []uint64{9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2}),
	}
	commitment, err := scheme.Commit(polys)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	points := [][]GoldilocksElement{{f.FromUint64(5)}, {f.FromUint64(2), f.FromUint64(3)}}
	proof, err := scheme.ProveEval(points, commitment, polys)
	if err != nil {
		t.Fatalf("ProveEval: %v", err)
	}
	if !f.Equal(proof.Z[0][0], f.FromUint64(116)) {
		t.Errorf("expected g(5) = 116, got %s", f.String(proof.Z[0][0]))
	}
	if !scheme.VerifyEval(points, proof) {
		t.Fatal("valid proof rejected")
	}

	proof.Z[1][1] = f.Add(proof.Z[1][1], f.One())
	if scheme.VerifyEval(points, proof) {
		t.Error("corrupted claim accepted")
	}
}

// TestBN254Scheme runs the shared-points path over BN254
func TestBN254Scheme(t *testing.T) {
	config := testConfig().WithField("bn254").WithHashFunction("keccak256").WithCombine(false)
	scheme, err := NewBN254Scheme(config)
	if err != nil {
		t.Fatalf("NewBN254Scheme: %v", err)
	}
	f := scheme.Field()

	polys := []*Polynomial[BN254Element]{
		NewPolynomialFromUint64(f, []uint64{7, 7, 7, 7}),
		NewPolynomialFromUint64(f, []uint64{1, 2}),
	}
	commitment, err := scheme.Commit(polys)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	points := []BN254Element{f.FromUint64(1000)}
	proof, err := scheme.ProveEvalShared(points, commitment, polys)
	if err != nil {
		t.Fatalf("ProveEvalShared: %v", err)
	}
	if !scheme.VerifyEvalShared(points, proof) {
		t.Fatal("valid proof rejected")
	}
}

// TestPrimeSchemeDFS runs the evaluation-form path over a math/big prime field
func TestPrimeSchemeDFS(t *testing.T) {
	config := testConfig().WithField("prime").WithIndependentRepetitions(true).WithLambda(3)
	config.FieldModulus = "3221225473"
	scheme, err := NewPrimeScheme(config)
	if err != nil {
		t.Fatalf("NewPrimeScheme: %v", err)
	}
	f := scheme.Field()

	g := NewPolynomialFromUint64(f, []uint64{5, 4, 3, 2, 1})
	dfs, err := scheme.Domain().FFT(g.Coefficients())
	if err != nil {
		t.Fatal(err)
	}
	evals, err := NewPolynomialDFS(scheme.Domain(), dfs)
	if err != nil {
		t.Fatal(err)
	}

	commitment, err := scheme.CommitDFS([]*PolynomialDFS[PrimeElement]{evals})
	if err != nil {
		t.Fatalf("CommitDFS: %v", err)
	}
	points := [][]PrimeElement{{f.FromUint64(77)}}
	proof, err := scheme.ProveEvalDFS(points, commitment, []*PolynomialDFS[PrimeElement]{evals})
	if err != nil {
		t.Fatalf("ProveEvalDFS: %v", err)
	}
	if len(proof.FRI) != 3 {
		t.Errorf("expected 3 repetitions, got %d", len(proof.FRI))
	}
	if !scheme.VerifyEval(points, proof) {
		t.Fatal("valid proof rejected")
	}
}

// TestSchemeErrors checks that errors carry the matching codes
func TestSchemeErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := NewGoldilocksScheme(testConfig().WithLambda(0))
		if !errors.Is(err, &LPCError{Code: ErrInvalidConfig}) {
			t.Errorf("expected invalid config, got %v", err)
		}
	})

	t.Run("field mismatch", func(t *testing.T) {
		_, err := NewBN254Scheme(testConfig())
		if !errors.Is(err, &LPCError{Code: ErrInvalidConfig}) {
			t.Errorf("expected invalid config, got %v", err)
		}
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := NewScheme[PrimeElement](nil, nil)
		if !errors.Is(err, &LPCError{Code: ErrInvalidConfig}) {
			t.Errorf("expected invalid config, got %v", err)
		}
	})

	scheme, err := NewGoldilocksScheme(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	f := scheme.Field()

	t.Run("degree too large", func(t *testing.T) {
		coeffs := make([]uint64, 17)
		coeffs[16] = 1
		_, err := scheme.Commit([]*Polynomial[GoldilocksElement]{NewPolynomialFromUint64(f, coeffs)})
		if !errors.Is(err, &LPCError{Code: ErrInvalidInput}) {
			t.Errorf("expected invalid input, got %v", err)
		}
	})

	t.Run("point in domain", func(t *testing.T) {
		polys := []*Polynomial[GoldilocksElement]{NewPolynomialFromUint64(f, []uint64{1, 1})}
		commitment, err := scheme.Commit(polys)
		if err != nil {
			t.Fatal(err)
		}
		_, err = scheme.ProveEval([][]GoldilocksElement{{scheme.Domain().Element(2)}}, commitment, polys)
		var lpcErr *LPCError
		if !errors.As(err, &lpcErr) || lpcErr.Code != ErrInvalidInput {
			t.Errorf("expected invalid input, got %v", err)
		}
		if lpcErr != nil && lpcErr.Unwrap() == nil {
			t.Error("expected a wrapped cause")
		}
	})
}

func TestErrorMessages(t *testing.T) {
	err := &LPCError{Code: ErrCommitment, Message: "commit", Cause: errors.New("boom")}
	if err.Error() != "vybium-lpc error [3]: commit (caused by: boom)" {
		t.Errorf("unexpected message %q", err.Error())
	}
	plain := &LPCError{Code: ErrInvalidInput, Message: "bad"}
	if plain.Error() != "vybium-lpc error [5]: bad" {
		t.Errorf("unexpected message %q", plain.Error())
	}
	if ErrDomainMismatch.String() != "domain mismatch" {
		t.Errorf("unexpected code name %q", ErrDomainMismatch.String())
	}
	if wrapError(ErrUnknown, "x", nil) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

// TestProofEncoding verifies a proof after a serialization round trip
func TestProofEncoding(t *testing.T) {
	scheme, err := NewGoldilocksScheme(testConfig().WithHashFunction("tip5"))
	if err != nil {
		t.Fatalf("NewGoldilocksScheme: %v", err)
	}
	f := scheme.Field()

	polys := []*Polynomial[GoldilocksElement]{NewPolynomialFromUint64(f, []uint64{4, 8, 15, 16, 23, 42})}
	commitment, err := scheme.Commit(polys)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	points := []GoldilocksElement{f.FromUint64(11)}
	proof, err := scheme.ProveEvalShared(points, commitment, polys)
	if err != nil {
		t.Fatalf("ProveEvalShared: %v", err)
	}

	data := scheme.EncodeProof(proof)
	decoded, err := scheme.DecodeProof(data)
	if err != nil {
		t.Fatalf("DecodeProof: %v", err)
	}
	if !scheme.VerifyEvalShared(points, decoded) {
		t.Fatal("decoded proof rejected")
	}

	_, err = scheme.DecodeProof(data[:len(data)-1])
	var lpcErr *LPCError
	if !errors.As(err, &lpcErr) || lpcErr.Code != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for a truncated proof, got %v", err)
	}
}
