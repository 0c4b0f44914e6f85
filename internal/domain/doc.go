// Package domain defines the values, error kinds and contracts shared by the
// cryptographic core, the boundary and the CLI.
//
// It contains plain types (keys, addresses, digests, signatures, proofs) and
// interfaces only. Parsing and arithmetic live in internal/crypto and
// internal/hdwallet; the domain package never imports them.
package domain
