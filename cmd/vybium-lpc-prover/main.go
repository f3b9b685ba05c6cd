package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/vybium/vybium-lpc/pkg/vybium-lpc"
)

// OpeningRequest lists the polynomials to commit and the points to open them at
type OpeningRequest struct {
	// Polynomials holds coefficients, lowest degree first
	Polynomials [][]uint64 `json:"polynomials"`
	// Points[i] are the evaluation points of polynomial i
	Points [][]uint64 `json:"points"`
}

// OpeningResult is written to stdout as one JSON line
type OpeningResult struct {
	Field     string     `json:"field"`
	Root      string     `json:"root"`
	Claims    [][]string `json:"claims"`
	Proof     string     `json:"proof"`
	ProofSize int        `json:"proof_size"`
	FRIProofs int        `json:"fri_proofs"`
	ProveMs   int64      `json:"prove_ms"`
	VerifyMs  int64      `json:"verify_ms"`
	Valid     bool       `json:"valid"`
}

func main() {
	profileMode := flag.String("profile", "", "profile the run: cpu or mem")
	profileDir := flag.String("profile-dir", ".", "directory for profile output")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	default:
		fatal(fmt.Sprintf("Unknown profile mode %q", *profileMode))
	}

	// Line 1: config, Line 2: request
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<26)

	if !scanner.Scan() {
		fatal("Failed to read config")
	}
	config := vybiumlpc.DefaultConfig()
	if err := json.Unmarshal(scanner.Bytes(), config); err != nil {
		fatal(fmt.Sprintf("Failed to parse config: %v", err))
	}

	if !scanner.Scan() {
		fatal("Failed to read request")
	}
	var request OpeningRequest
	if err := json.Unmarshal(scanner.Bytes(), &request); err != nil {
		fatal(fmt.Sprintf("Failed to parse request: %v", err))
	}
	if len(request.Polynomials) != len(request.Points) {
		fatal(fmt.Sprintf("%d polynomials but %d point sets", len(request.Polynomials), len(request.Points)))
	}

	var (
		result *OpeningResult
		err    error
	)
	switch config.Field {
	case "goldilocks":
		scheme, serr := vybiumlpc.NewGoldilocksScheme(config)
		if serr != nil {
			fatal(fmt.Sprintf("Failed to create scheme: %v", serr))
		}
		result, err = run(scheme, request)
	case "bn254":
		scheme, serr := vybiumlpc.NewBN254Scheme(config)
		if serr != nil {
			fatal(fmt.Sprintf("Failed to create scheme: %v", serr))
		}
		result, err = run(scheme, request)
	case "prime":
		scheme, serr := vybiumlpc.NewPrimeScheme(config)
		if serr != nil {
			fatal(fmt.Sprintf("Failed to create scheme: %v", serr))
		}
		result, err = run(scheme, request)
	default:
		fatal(fmt.Sprintf("Unknown field %q", config.Field))
	}
	if err != nil {
		fatal(err.Error())
	}

	out, err := json.Marshal(result)
	if err != nil {
		fatal(fmt.Sprintf("Failed to serialize result: %v", err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func run[E any](scheme *vybiumlpc.Scheme[E], request OpeningRequest) (*OpeningResult, error) {
	f := scheme.Field()

	polys := make([]*vybiumlpc.Polynomial[E], len(request.Polynomials))
	for i, coeffs := range request.Polynomials {
		polys[i] = vybiumlpc.NewPolynomialFromUint64(f, coeffs)
	}
	points := make([][]E, len(request.Points))
	for i, ps := range request.Points {
		points[i] = make([]E, len(ps))
		for j, p := range ps {
			points[i][j] = f.FromUint64(p)
		}
	}

	logStderr(fmt.Sprintf("Committing to %d polynomials over %s...", len(polys), f.Name()))
	start := time.Now()
	commitment, err := scheme.Commit(polys)
	if err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	logStderr("Generating proof...")
	proof, err := scheme.ProveEval(points, commitment, polys)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}
	proveTime := time.Since(start)

	encoded := scheme.EncodeProof(proof)

	logStderr("Verifying proof...")
	start = time.Now()
	decoded, err := scheme.DecodeProof(encoded)
	if err != nil {
		return nil, fmt.Errorf("proof decoding failed: %w", err)
	}
	valid := scheme.VerifyEval(points, decoded)
	verifyTime := time.Since(start)
	logStderr(fmt.Sprintf("Proof of %d bytes, valid=%v", proof.Size(f), valid))

	claims := make([][]string, len(proof.Z))
	for i, zs := range proof.Z {
		claims[i] = make([]string, len(zs))
		for j, z := range zs {
			claims[i][j] = f.String(z)
		}
	}

	return &OpeningResult{
		Field:     f.Name(),
		Root:      hex.EncodeToString(proof.Root),
		Claims:    claims,
		Proof:     hex.EncodeToString(encoded),
		ProofSize: proof.Size(f),
		FRIProofs: len(proof.FRI),
		ProveMs:   proveTime.Milliseconds(),
		VerifyMs:  verifyTime.Milliseconds(),
		Valid:     valid,
	}, nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "vybium-lpc:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
