// Package ops implements domain.Operations, the text-in/text-out surface
// shared by the C boundary and the CLI.
//
// Every method decodes its textual inputs, calls into internal/crypto,
// internal/hdwallet or the configured domain.Prover, and encodes the result.
// Failures are *domain.Error values; the caller decides how to flatten them.
package ops
