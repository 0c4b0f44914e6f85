// Package hdwallet turns BIP39 mnemonics into secp256k1 private keys.
//
// GenerateMnemonic draws entropy from the process-wide source in
// internal/crypto; DerivePrivateKey validates the phrase, builds the BIP39
// seed and walks a BIP32 path from the master key.
package hdwallet
