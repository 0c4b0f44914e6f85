package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

const (
	KeyBytes   = chacha20poly1305.KeySize
	SaltBytes  = 16
	NonceBytes = chacha20poly1305.NonceSizeX

	envelopeVersion = 1

	// version | time | memory KiB | threads | salt | nonce
	headerBytes = 1 + 4 + 4 + 1 + SaltBytes + NonceBytes

	// Upper bounds for parameters read back from a ciphertext header.
	maxKDFTime      = 16
	maxKDFMemoryKiB = 256 * 1024
	maxKDFThreads   = 16
)

var (
	errShortCiphertext = errors.New("ciphertext too short")
	errBadKDFParams    = errors.New("key derivation parameters out of range")
)

// KDFParams tunes Argon2id. They travel inside every ciphertext, so changing
// them never breaks decryption of older data.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams follows the RFC 9106 second recommended option.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}
}

// Validate checks the parameters are usable and bounded.
func (p KDFParams) Validate() error {
	if p.Time == 0 || p.Time > maxKDFTime || p.Threads == 0 || p.Threads > maxKDFThreads ||
		p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxKDFMemoryKiB {
		return fmt.Errorf("%w: time=%d memory=%dKiB threads=%d", errBadKDFParams, p.Time, p.MemoryKiB, p.Threads)
	}
	return nil
}

// Cipher encrypts text under a passphrase with Argon2id and
// XChaCha20-Poly1305. The output is base64 of
//
//	version || time || memory || threads || salt || nonce || sealed
//
// where the header is bound as associated data.
type Cipher struct {
	params KDFParams
}

// NewCipher returns a Cipher sealing with p.
func NewCipher(p KDFParams) (*Cipher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Cipher{params: p}, nil
}

// Encrypt seals plaintext with a key derived from passphrase and a fresh salt.
// Two calls never return the same ciphertext.
func (c *Cipher) Encrypt(plaintext []byte, passphrase string) (string, error) {
	rnd, err := RandomBytes(SaltBytes + NonceBytes)
	if err != nil {
		return "", domain.E("encrypt", domain.KindInternal, err)
	}
	header := make([]byte, 0, headerBytes)
	header = append(header, envelopeVersion)
	header = binary.BigEndian.AppendUint32(header, c.params.Time)
	header = binary.BigEndian.AppendUint32(header, c.params.MemoryKiB)
	header = append(header, c.params.Threads)
	header = append(header, rnd...)
	salt, nonce := header[10:10+SaltBytes], header[10+SaltBytes:]

	key := deriveKey(passphrase, salt, c.params)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", domain.E("encrypt", domain.KindInternal, err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, header)
	return B64(append(header, sealed...)), nil
}

// Decrypt opens a ciphertext produced by Encrypt. A wrong passphrase or any
// tampering fails with KindAuthenticationFailed and no plaintext.
func (c *Cipher) Decrypt(ciphertext, passphrase string) ([]byte, error) {
	raw, err := FromB64(ciphertext)
	if err != nil {
		return nil, err
	}
	if len(raw) < headerBytes+chacha20poly1305.Overhead {
		return nil, domain.E("decrypt", domain.KindInvalidEncoding, errShortCiphertext)
	}
	if raw[0] != envelopeVersion {
		return nil, domain.E("decrypt", domain.KindInvalidEncoding,
			fmt.Errorf("unsupported envelope version %d", raw[0]))
	}
	params := KDFParams{
		Time:      binary.BigEndian.Uint32(raw[1:5]),
		MemoryKiB: binary.BigEndian.Uint32(raw[5:9]),
		Threads:   raw[9],
	}
	if err := params.Validate(); err != nil {
		return nil, domain.E("decrypt", domain.KindInvalidEncoding, err)
	}
	header := raw[:headerBytes]
	salt, nonce := header[10:10+SaltBytes], header[10+SaltBytes:]

	key := deriveKey(passphrase, salt, params)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, domain.E("decrypt", domain.KindInternal, err)
	}
	pt, err := aead.Open(nil, nonce, raw[headerBytes:], header)
	if err != nil {
		return nil, domain.E("decrypt", domain.KindAuthenticationFailed, nil)
	}
	return pt, nil
}

func deriveKey(passphrase string, salt []byte, p KDFParams) []byte {
	pass := []byte(passphrase)
	defer memzero.Zero(pass)
	return argon2.IDKey(pass, salt, p.Time, p.MemoryKiB, p.Threads, KeyBytes)
}
