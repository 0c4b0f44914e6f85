package ops

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/hdwallet"
	"dvotenative/internal/util/memzero"
)

var errNotUTF8 = errors.New("plaintext is not valid UTF-8")

// Service holds the few stateful collaborators the operations need. The
// operations themselves keep no state, so a Service is safe for concurrent
// use.
type Service struct {
	cipher *crypto.Cipher
	prover domain.Prover
	log    *zap.Logger
}

// New returns a Service. log may be nil.
func New(cipher *crypto.Cipher, prover domain.Prover, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cipher: cipher, prover: prover, log: log.Named("ops")}
}

// ComputeAddress returns the EIP-55 address of a hex private key.
func (s *Service) ComputeAddress(hexPrivateKey string) (string, error) {
	priv, err := crypto.ParsePrivateKey(hexPrivateKey)
	if err != nil {
		return "", s.fail("compute_address", err)
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))
	return crypto.ChecksumAddress(crypto.DeriveAddress(priv)), nil
}

// ComputePrivateKey derives the hex private key at hdPath.
func (s *Service) ComputePrivateKey(mnemonic, hdPath string) (string, error) {
	priv, err := hdwallet.DerivePrivateKey(mnemonic, hdPath)
	if err != nil {
		return "", s.fail("compute_private_key", err)
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))
	return crypto.Hex(priv.Slice()), nil
}

// ComputePublicKey returns the compressed public key of a hex private key.
func (s *Service) ComputePublicKey(hexPrivateKey string) (string, error) {
	priv, err := crypto.ParsePrivateKey(hexPrivateKey)
	if err != nil {
		return "", s.fail("compute_public_key", err)
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))
	pub := crypto.DerivePublicKey(priv)
	return crypto.Hex(pub.Slice()), nil
}

// ComputePublicKeyUncompressed returns the 65-byte public key.
func (s *Service) ComputePublicKeyUncompressed(hexPrivateKey string) (string, error) {
	priv, err := crypto.ParsePrivateKey(hexPrivateKey)
	if err != nil {
		return "", s.fail("compute_public_key_uncompressed", err)
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))
	pub := crypto.DeriveUncompressedPublicKey(priv)
	return crypto.Hex(pub.Slice()), nil
}

// GenerateMnemonic returns a new phrase with the given number of words.
func (s *Service) GenerateMnemonic(words int) (string, error) {
	m, err := hdwallet.GenerateMnemonic(words)
	if err != nil {
		return "", s.fail("generate_mnemonic", err)
	}
	return m.String(), nil
}

// DigestHexClaim digests the bytes of a hex claim.
func (s *Service) DigestHexClaim(hexClaim string) (string, error) {
	d, err := crypto.DigestHex(hexClaim)
	if err != nil {
		return "", s.fail("digest_hex_claim", err)
	}
	return crypto.Hex(d.Slice()), nil
}

// DigestStringClaim digests the UTF-8 bytes of claim.
func (s *Service) DigestStringClaim(claim string) (string, error) {
	d, err := crypto.DigestString(claim)
	if err != nil {
		return "", s.fail("digest_string_claim", err)
	}
	return crypto.Hex(d.Slice()), nil
}

// SignMessage signs message with the Ethereum personal-message convention.
func (s *Service) SignMessage(message, hexPrivateKey string) (string, error) {
	priv, err := crypto.ParsePrivateKey(hexPrivateKey)
	if err != nil {
		return "", s.fail("sign_message", err)
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))
	sig, err := crypto.Sign(priv, []byte(message))
	if err != nil {
		return "", s.fail("sign_message", err)
	}
	return crypto.Hex(sig.Slice()), nil
}

// IsValidSignature checks hexSignature over message against a hex public key
// (compressed or uncompressed) or address. Malformed inputs are errors; a
// well-formed signature by someone else is (false, nil).
func (s *Service) IsValidSignature(hexSignature, message, hexPublicKey string) (bool, error) {
	sig, err := crypto.ParseSignature(hexSignature)
	if err != nil {
		return false, s.fail("is_valid", err)
	}
	signer, err := crypto.FromHexSize(hexPublicKey,
		domain.AddressSize, domain.CompressedPublicKeySize, domain.UncompressedPublicKeySize)
	if err != nil {
		return false, s.fail("is_valid", err)
	}
	ok, err := crypto.Verify(sig, []byte(message), signer)
	if err != nil {
		return false, s.fail("is_valid", err)
	}
	return ok, nil
}

// RecoverSigner returns the compressed public key that produced hexSignature.
func (s *Service) RecoverSigner(hexSignature, message string) (string, error) {
	sig, err := crypto.ParseSignature(hexSignature)
	if err != nil {
		return "", s.fail("recover_signer", err)
	}
	pub, err := crypto.RecoverPublicKey(sig, []byte(message))
	if err != nil {
		return "", s.fail("recover_signer", err)
	}
	return crypto.Hex(pub.Slice()), nil
}

// RecoverSignerUncompressed is RecoverSigner returning the 65-byte key.
func (s *Service) RecoverSignerUncompressed(hexSignature, message string) (string, error) {
	sig, err := crypto.ParseSignature(hexSignature)
	if err != nil {
		return "", s.fail("recover_signer_uncompressed", err)
	}
	pub, err := crypto.RecoverUncompressedPublicKey(sig, []byte(message))
	if err != nil {
		return "", s.fail("recover_signer_uncompressed", err)
	}
	return crypto.Hex(pub.Slice()), nil
}

// EncryptSymmetric seals message under passphrase and returns base64.
func (s *Service) EncryptSymmetric(message, passphrase string) (string, error) {
	ct, err := s.cipher.Encrypt([]byte(message), passphrase)
	if err != nil {
		return "", s.fail("encrypt_symmetric", err)
	}
	return ct, nil
}

// DecryptSymmetric opens a base64 ciphertext. The plaintext must be UTF-8.
func (s *Service) DecryptSymmetric(base64Cipher, passphrase string) (string, error) {
	pt, err := s.cipher.Decrypt(base64Cipher, passphrase)
	if err != nil {
		return "", s.fail("decrypt_symmetric", err)
	}
	defer memzero.Zero(pt)
	if !utf8.Valid(pt) {
		return "", s.fail("decrypt_symmetric", domain.E("decrypt", domain.KindInvalidEncoding, errNotUTF8))
	}
	return string(pt), nil
}

// GenerateZkProof proves inputs against the proving key at provingKeyPath.
func (s *Service) GenerateZkProof(ctx context.Context, provingKeyPath, inputs string) (string, error) {
	proof, err := s.prover.Prove(ctx, provingKeyPath, []byte(inputs))
	if err != nil {
		return "", s.fail("generate_zk_proof", err)
	}
	return proof.String(), nil
}

func (s *Service) fail(op string, err error) error {
	s.log.Debug("operation failed", zap.String("op", op), zap.Stringer("kind", domain.KindOf(err)))
	return err
}

var _ domain.Operations = (*Service)(nil)
