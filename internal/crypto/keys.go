package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"dvotenative/internal/domain"
)

var (
	errZeroScalar     = errors.New("scalar is zero")
	errScalarOverflow = errors.New("scalar is not below the group order")
)

// ParsePrivateKey decodes a 32-byte hex private key and checks 0 < k < n.
func ParsePrivateKey(s string) (domain.PrivateKey, error) {
	b, err := FromHex(s)
	if err != nil {
		return domain.PrivateKey{}, domain.E("parse private key", domain.KindInvalidKey, err)
	}
	defer clear(b)
	return PrivateKeyFromBytes(b)
}

// PrivateKeyFromBytes validates b as a secp256k1 private key.
func PrivateKeyFromBytes(b []byte) (domain.PrivateKey, error) {
	if len(b) != domain.PrivateKeySize {
		return domain.PrivateKey{}, domain.E("parse private key", domain.KindInvalidKey,
			fmt.Errorf("want %d bytes, got %d", domain.PrivateKeySize, len(b)))
	}
	var s secp256k1.ModNScalar
	defer s.Zero()
	if overflow := s.SetByteSlice(b); overflow {
		return domain.PrivateKey{}, domain.E("parse private key", domain.KindInvalidKey, errScalarOverflow)
	}
	if s.IsZero() {
		return domain.PrivateKey{}, domain.E("parse private key", domain.KindInvalidKey, errZeroScalar)
	}
	return domain.MustPrivateKey(b), nil
}

// DerivePublicKey returns the compressed public key of priv.
func DerivePublicKey(priv domain.PrivateKey) domain.PublicKey {
	var out domain.PublicKey
	copy(out[:], publicKey(priv).SerializeCompressed())
	return out
}

// DeriveUncompressedPublicKey returns the uncompressed public key of priv.
func DeriveUncompressedPublicKey(priv domain.PrivateKey) domain.UncompressedPublicKey {
	var out domain.UncompressedPublicKey
	copy(out[:], publicKey(priv).SerializeUncompressed())
	return out
}

// ParsePublicKey accepts compressed or uncompressed SEC1 bytes.
func ParsePublicKey(b []byte) (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, domain.E("parse public key", domain.KindInvalidEncoding, err)
	}
	return pub, nil
}

func publicKey(priv domain.PrivateKey) *btcec.PublicKey {
	key, pub := btcec.PrivKeyFromBytes(priv[:])
	key.Zero()
	return pub
}
