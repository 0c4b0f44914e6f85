package crypto

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"dvotenative/internal/domain"
)

const (
	signedMessagePrefix = "\x19Ethereum Signed Message:\n"

	// compactRecoveryBase is the header offset of btcec compact signatures
	// for uncompressed keys; Ethereum uses the same 27/28 convention for V.
	compactRecoveryBase = 27
)

// HashMessage returns the Keccak-256 hash of msg framed as an Ethereum
// personal message.
func HashMessage(msg []byte) []byte {
	return Keccak256([]byte(signedMessagePrefix), []byte(strconv.Itoa(len(msg))), msg)
}

// ParseSignature decodes a 65-byte hex signature. The recovery byte is not
// checked here.
func ParseSignature(s string) (domain.Signature, error) {
	b, err := FromHexSize(s, domain.SignatureSize)
	if err != nil {
		return domain.Signature{}, err
	}
	var sig domain.Signature
	copy(sig[:], b)
	return sig, nil
}

// Sign produces a deterministic (RFC6979) recoverable signature of msg. V is
// 27 or 28.
func Sign(priv domain.PrivateKey, msg []byte) (domain.Signature, error) {
	key, _ := btcec.PrivKeyFromBytes(priv[:])
	defer key.Zero()

	// compact is V || R || S.
	compact := ecdsa.SignCompact(key, HashMessage(msg), false)
	if len(compact) != domain.SignatureSize {
		return domain.Signature{}, domain.E("sign", domain.KindInternal,
			fmt.Errorf("compact signature is %d bytes", len(compact)))
	}
	var sig domain.Signature
	copy(sig[:64], compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// Recover returns the public key that produced sig over msg. V may be 0, 1,
// 27 or 28.
func Recover(sig domain.Signature, msg []byte) (*btcec.PublicKey, error) {
	v := sig.V()
	if v >= compactRecoveryBase {
		v -= compactRecoveryBase
	}
	if v > 1 {
		return nil, domain.E("recover signer", domain.KindInvalidSignature,
			fmt.Errorf("invalid recovery id %d", sig.V()))
	}
	compact := make([]byte, domain.SignatureSize)
	compact[0] = compactRecoveryBase + v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, HashMessage(msg))
	if err != nil {
		return nil, domain.E("recover signer", domain.KindInvalidSignature, err)
	}
	return pub, nil
}

// RecoverPublicKey returns the compressed public key of the signer.
func RecoverPublicKey(sig domain.Signature, msg []byte) (domain.PublicKey, error) {
	pub, err := Recover(sig, msg)
	if err != nil {
		return domain.PublicKey{}, err
	}
	var out domain.PublicKey
	copy(out[:], pub.SerializeCompressed())
	return out, nil
}

// RecoverUncompressedPublicKey returns the uncompressed public key of the
// signer.
func RecoverUncompressedPublicKey(sig domain.Signature, msg []byte) (domain.UncompressedPublicKey, error) {
	pub, err := Recover(sig, msg)
	if err != nil {
		return domain.UncompressedPublicKey{}, err
	}
	var out domain.UncompressedPublicKey
	copy(out[:], pub.SerializeUncompressed())
	return out, nil
}

// Verify reports whether sig is a signature of msg by signer. signer is a
// compressed or uncompressed public key, or a 20-byte address. Only a
// malformed signer yields an error; a bad signature is just false.
func Verify(sig domain.Signature, msg, signer []byte) (bool, error) {
	if len(signer) == domain.AddressSize {
		var want domain.Address
		copy(want[:], signer)
		got, err := RecoverUncompressedPublicKey(sig, msg)
		if err != nil {
			return false, nil
		}
		return AddressOf(got) == want, nil
	}

	want, err := ParsePublicKey(signer)
	if err != nil {
		return false, err
	}
	got, err := Recover(sig, msg)
	if err != nil {
		return false, nil
	}
	return got.IsEqual(want), nil
}
