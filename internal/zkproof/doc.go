// Package zkproof generates Groth16 proofs for circom circuits.
//
// Contents
//
//   - witness.go: witness document parsing and field checks.
//   - keys.go: proving key loading and the per-path cache.
//   - prover.go: Prover, the domain.Prover implementation.
//
// # Notes
//
// Proving keys are snarkjs JSON files. A key is parsed once per
// (path, size, modification time); concurrent requests for the same key
// share one parse. Inputs are the full witness, so no witness calculator
// runs here.
package zkproof
