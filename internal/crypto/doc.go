// Package crypto exposes the primitives behind the dvote native boundary.
//
// Contents
//
//   - Hex and base64 codecs used to cross the text boundary (Hex, FromHex,
//     B64, FromB64)
//   - A process-wide secure random source (RandomBytes, SetRandomReader)
//   - secp256k1 private/public keys and Ethereum addresses (ParsePrivateKey,
//     DerivePublicKey, DeriveAddress, ChecksumAddress)
//   - Recoverable personal-message signatures (Sign, Verify, Recover)
//   - Poseidon claim digests (Digest)
//   - Passphrase symmetric encryption (Cipher)
//
// # Notes
//
// Every failure is a *domain.Error carrying its domain.ErrorKind so callers
// can flatten it to a null result at the boundary while keeping the detail for
// logs and tests. Signing is deterministic (RFC6979); encryption is not.
package crypto
