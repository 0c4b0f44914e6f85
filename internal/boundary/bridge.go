package boundary

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"dvotenative/internal/domain"
)

var errNUL = errors.New("result contains a NUL byte")

// Bridge exposes domain.Operations with the boundary's conventions: text
// results come back as handles, failure is the zero handle (or false), and
// the most recent failure is kept for LastError.
type Bridge struct {
	ops   domain.Operations
	alloc *Allocator
	log   *zap.Logger

	mu   sync.Mutex
	last error
}

// NewBridge returns a Bridge allocating results from alloc.
func NewBridge(ops domain.Operations, alloc *Allocator, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{ops: ops, alloc: alloc, log: log.Named("bridge")}
}

// Allocator returns the allocator results are drawn from.
func (b *Bridge) Allocator() *Allocator { return b.alloc }

func (b *Bridge) text(op string, f func() (string, error)) Handle {
	out, err := f()
	if err != nil {
		b.Fail(op, err)
		return 0
	}
	if strings.IndexByte(out, 0) >= 0 {
		b.Fail(op, domain.E(op, domain.KindInvalidEncoding, errNUL))
		return 0
	}
	return b.alloc.Alloc(out)
}

func (b *Bridge) ComputeAddress(hexPrivateKey string) Handle {
	return b.text("compute_address", func() (string, error) { return b.ops.ComputeAddress(hexPrivateKey) })
}

func (b *Bridge) ComputePrivateKey(mnemonic, hdPath string) Handle {
	return b.text("compute_private_key", func() (string, error) { return b.ops.ComputePrivateKey(mnemonic, hdPath) })
}

func (b *Bridge) ComputePublicKey(hexPrivateKey string) Handle {
	return b.text("compute_public_key", func() (string, error) { return b.ops.ComputePublicKey(hexPrivateKey) })
}

func (b *Bridge) ComputePublicKeyUncompressed(hexPrivateKey string) Handle {
	return b.text("compute_public_key_uncompressed", func() (string, error) {
		return b.ops.ComputePublicKeyUncompressed(hexPrivateKey)
	})
}

func (b *Bridge) GenerateMnemonic(words int) Handle {
	return b.text("generate_mnemonic", func() (string, error) { return b.ops.GenerateMnemonic(words) })
}

func (b *Bridge) DigestHexClaim(hexClaim string) Handle {
	return b.text("digest_hex_claim", func() (string, error) { return b.ops.DigestHexClaim(hexClaim) })
}

func (b *Bridge) DigestStringClaim(claim string) Handle {
	return b.text("digest_string_claim", func() (string, error) { return b.ops.DigestStringClaim(claim) })
}

func (b *Bridge) SignMessage(message, hexPrivateKey string) Handle {
	return b.text("sign_message", func() (string, error) { return b.ops.SignMessage(message, hexPrivateKey) })
}

// IsValid reports false both for a signature that does not match and for
// malformed input; LastError tells the two apart.
func (b *Bridge) IsValid(hexSignature, message, hexPublicKey string) bool {
	ok, err := b.ops.IsValidSignature(hexSignature, message, hexPublicKey)
	if err != nil {
		b.Fail("is_valid", err)
		return false
	}
	return ok
}

func (b *Bridge) RecoverSigner(hexSignature, message string) Handle {
	return b.text("recover_signer", func() (string, error) { return b.ops.RecoverSigner(hexSignature, message) })
}

func (b *Bridge) RecoverSignerUncompressed(hexSignature, message string) Handle {
	return b.text("recover_signer_uncompressed", func() (string, error) {
		return b.ops.RecoverSignerUncompressed(hexSignature, message)
	})
}

func (b *Bridge) EncryptSymmetric(message, passphrase string) Handle {
	return b.text("encrypt_symmetric", func() (string, error) { return b.ops.EncryptSymmetric(message, passphrase) })
}

func (b *Bridge) DecryptSymmetric(base64Cipher, passphrase string) Handle {
	return b.text("decrypt_symmetric", func() (string, error) { return b.ops.DecryptSymmetric(base64Cipher, passphrase) })
}

func (b *Bridge) GenerateZkProof(ctx context.Context, provingKeyPath, inputs string) Handle {
	return b.text("generate_zk_proof", func() (string, error) {
		return b.ops.GenerateZkProof(ctx, provingKeyPath, inputs)
	})
}

// Release frees h, recording a failure instead of returning it.
func (b *Bridge) Release(h Handle) {
	if err := b.alloc.Release(h); err != nil {
		b.Fail("release", err)
	}
}

// Fail records err as the most recent failure of op.
func (b *Bridge) Fail(op string, err error) {
	b.log.Debug("boundary call failed", zap.String("op", op), zap.Stringer("kind", domain.KindOf(err)))
	b.mu.Lock()
	b.last = err
	b.mu.Unlock()
}

// LastError returns the most recent failure, or nil if nothing has failed.
// Successful calls do not clear it.
func (b *Bridge) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// LastErrorMessage renders LastError as "Kind: message", or "" if there is
// none.
func (b *Bridge) LastErrorMessage() string {
	err := b.LastError()
	if err == nil {
		return ""
	}
	return domain.KindOf(err).String() + ": " + err.Error()
}

// ClearError forgets the recorded failure.
func (b *Bridge) ClearError() {
	b.mu.Lock()
	b.last = nil
	b.mu.Unlock()
}
