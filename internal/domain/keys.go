package domain

import "fmt"

const (
	PrivateKeySize            = 32
	CompressedPublicKeySize   = 33
	UncompressedPublicKeySize = 65
	AddressSize               = 20
	DigestSize                = 32
	SignatureSize             = 65
)

// ------------- secp256k1 -------------

// PrivateKey is a secp256k1 scalar in big-endian form.
type PrivateKey [PrivateKeySize]byte

func (k PrivateKey) Slice() []byte { return k[:] }

// PublicKey is a secp256k1 public key in compressed SEC1 form.
type PublicKey [CompressedPublicKeySize]byte

func (p PublicKey) Slice() []byte { return p[:] }

// UncompressedPublicKey is a secp256k1 public key in uncompressed SEC1 form
// (0x04 || X || Y).
type UncompressedPublicKey [UncompressedPublicKeySize]byte

func (p UncompressedPublicKey) Slice() []byte { return p[:] }

func MustPrivateKey(b []byte) PrivateKey {
	if len(b) != PrivateKeySize {
		panic(fmt.Errorf("private key: want %d bytes, got %d", PrivateKeySize, len(b)))
	}
	var out PrivateKey
	copy(out[:], b)
	return out
}

// ------------- derived values -------------

// Address is the Ethereum-style account address of a public key.
type Address [AddressSize]byte

func (a Address) Slice() []byte { return a[:] }

// Digest is a Poseidon field element, big-endian and zero-padded.
type Digest [DigestSize]byte

func (d Digest) Slice() []byte { return d[:] }

// Signature is a recoverable ECDSA signature laid out as R || S || V.
type Signature [SignatureSize]byte

func (s Signature) Slice() []byte { return s[:] }

// V returns the recovery byte.
func (s Signature) V() byte { return s[SignatureSize-1] }
