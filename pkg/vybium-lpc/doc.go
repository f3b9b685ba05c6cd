// Package vybiumlpc provides a batched list polynomial commitment built on FRI.
//
// A scheme commits to a batch of polynomials with one Merkle root over a
// power-of-two evaluation domain D0 and later proves their values at points
// outside D0. The proof reduces every opening claim to a low-degree test on
// the quotient (g - U) / V and runs FRI on the quotients, folded into one
// column when the configuration asks for it. Fiat-Shamir makes the scheme
// non-interactive.
//
// # Quick Start
//
//	config := vybiumlpc.DefaultConfig()
//	scheme, err := vybiumlpc.NewGoldilocksScheme(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	f := scheme.Field()
//	g := vybiumlpc.NewPolynomialFromUint64(f, []uint64{1, 3, 4})
//	polys := []*vybiumlpc.Polynomial[vybiumlpc.GoldilocksElement]{g}
//
//	commitment, err := scheme.Commit(polys)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	points := [][]vybiumlpc.GoldilocksElement{{f.FromUint64(5)}}
//	proof, err := scheme.ProveEval(points, commitment, polys)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if scheme.VerifyEval(points, proof) {
//		fmt.Println("g(5) =", f.String(proof.Z[0][0]))
//	}
//
// # Fields
//
// Goldilocks (p = 2^64 - 2^32 + 1) is backed by vybium-crypto, the BN254
// scalar field by gnark-crypto, and any other prime with a large enough
// two-adic subgroup by math/big.
//
// # Hashes
//
// Merkle trees and the transcript accept sha256, sha3-256, keccak256,
// blake2b-256, shake256 and tip5.
package vybiumlpc
