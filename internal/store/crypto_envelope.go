package store

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

const (
	// The current supported version of the sealed blob format stored on disk.
	keystoreFormatVersion = 1

	saltBytes = 16
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted wallet")
	errScryptParams    = errors.New("scrypt parameters out of range")
)

// ScryptParams are the scrypt cost parameters used when sealing.
type ScryptParams struct {
	N, R, P int
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

func (sp ScryptParams) validate() error {
	if sp.N < 2 || sp.N > 1<<20 || sp.N&(sp.N-1) != 0 || sp.R < 1 || sp.R > 32 || sp.P < 1 || sp.P > 16 {
		return fmt.Errorf("%w: N=%d r=%d p=%d", errScryptParams, sp.N, sp.R, sp.P)
	}
	return nil
}

// blob is the on‑disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and seals raw, binding ad to the
// ciphertext next to the salt.
func seal(passphrase string, raw, ad []byte, sp ScryptParams) (blob, error) {
	salt, err := crypto.RandomBytes(saltBytes)
	if err != nil {
		return blob{}, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, sp.N, sp.R, sp.P, chacha20poly1305.KeySize)
	if err != nil {
		return blob{}, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return blob{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt‑bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], raw, append(salt, ad...))

	return blob{
		V:      keystoreFormatVersion,
		Salt:   salt,
		N:      sp.N,
		R:      sp.R,
		P:      sp.P,
		Cipher: ct,
	}, nil
}

// open reverses seal. A wrong passphrase, other associated data or any
// tampering all surface as KindAuthenticationFailed.
func open(passphrase string, bl blob, ad []byte) ([]byte, error) {
	if bl.V != keystoreFormatVersion {
		return nil, domain.E("open wallet", domain.KindInvalidEncoding, fmt.Errorf("unsupported keystore version %d", bl.V))
	}
	sp := ScryptParams{N: bl.N, R: bl.R, P: bl.P}
	if err := sp.validate(); err != nil {
		return nil, domain.E("open wallet", domain.KindInvalidEncoding, err)
	}
	if len(bl.Salt) != saltBytes {
		return nil, domain.E("open wallet", domain.KindInvalidEncoding, fmt.Errorf("salt is %d bytes", len(bl.Salt)))
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, sp.N, sp.R, sp.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, domain.E("open wallet", domain.KindInternal, err)
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, domain.E("open wallet", domain.KindInternal, err)
	}
	var nonce [chacha20poly1305.NonceSize]byte
	salted := append(append([]byte(nil), bl.Salt...), ad...)
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, salted)
	if err != nil {
		return nil, domain.E("open wallet", domain.KindAuthenticationFailed, errWrongPassphrase)
	}
	return pt, nil
}
