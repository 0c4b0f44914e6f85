// Package commands defines the dvote CLI and wires dependencies for subcommands.
//
// Commands
//
//   - address      Print the address of a private key (optionally as a QR code)
//   - pubkey       Print the public key of a private key
//   - privkey      Derive a private key from a mnemonic
//   - mnemonic     Generate a new mnemonic
//   - digest       Poseidon digest of a claim
//   - sign         Sign a message
//   - verify       Check a signature against a public key or address
//   - recover      Recover the signer's public key
//   - encrypt      Encrypt a message under a passphrase
//   - decrypt      Decrypt a message
//   - prove        Generate a Groth16 proof from a witness
//   - wallet       Create, import, list, show and unlock stored wallets
//   - config init  Write a configuration file with the current settings
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// before any subcommand runs. Every textual result is produced through the
// boundary bridge inside a scope, so the CLI exercises the same allocation
// rules as the C library.
package commands
