// Package app wires application dependencies for the CLI and the C library.
//
// It loads Config (defaults, then an optional TOML file, then DVOTE_*
// environment variables), builds the zap logger, and constructs the cipher,
// prover, operations facade, boundary bridge and wallet service, exposing
// them via the Wire struct.
package app
