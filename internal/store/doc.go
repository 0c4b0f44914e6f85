// Package store provides file-based persistence for dvote wallets.
//
// It contains the concrete implementation of domain.WalletStore, serialising
// each wallet as a JSON document on disk. All methods are concurrency-safe via
// internal locking, and files are replaced atomically through a temp file and
// rename. Wallets typically live under the configured wallet directory.
//
// A wallet file holds:
//   - the wallet name, address, derivation path and creation time in clear
//   - the mnemonic, sealed with scrypt and ChaCha20-Poly1305 under the
//     wallet passphrase, with the clear fields bound as associated data
package store
