//go:build cgo

package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"context"
	"errors"
	"os"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"dvotenative/internal/app"
	"dvotenative/internal/boundary"
	"dvotenative/internal/domain"
)

var errNullPointer = errors.New("NULL pointer")

var lib struct {
	once     sync.Once
	wire     *app.Wire
	pointers *boundary.Pointers[*C.char]
}

func bridge() *boundary.Bridge {
	lib.once.Do(func() {
		w, err := app.Bootstrap(os.Getenv("DVOTE_CONFIG"))
		if err != nil {
			// Fall back to defaults so the library stays usable; the
			// configuration problem is reported through last_error.
			w, _ = app.NewWire(app.DefaultConfig(), zap.NewNop())
			w.Bridge.Fail("init", err)
		}
		lib.wire = w
		lib.pointers = boundary.NewPointers(boundary.DefaultQuarantine, func(p *C.char) {
			C.free(unsafe.Pointer(p))
		})
	})
	return lib.wire.Bridge
}

func goString(op string, p *C.char) (string, bool) {
	if p == nil {
		bridge().Fail(op, domain.E(op, domain.KindInvalidEncoding, errNullPointer))
		return "", false
	}
	return C.GoString(p), true
}

// cString copies the text behind h into C memory and binds the pointer to h.
func cString(h boundary.Handle) *C.char {
	if h == 0 {
		return nil
	}
	b := bridge()
	text, err := b.Allocator().Read(h)
	if err != nil {
		b.Fail("read", err)
		return nil
	}
	cs := C.CString(text)
	lib.pointers.Bind(cs, h)
	return cs
}

//export compute_address
func compute_address(hexPrivateKey *C.char) *C.char {
	k, ok := goString("compute_address", hexPrivateKey)
	if !ok {
		return nil
	}
	return cString(bridge().ComputeAddress(k))
}

//export compute_private_key
func compute_private_key(mnemonic, hdPath *C.char) *C.char {
	m, ok := goString("compute_private_key", mnemonic)
	if !ok {
		return nil
	}
	p, ok := goString("compute_private_key", hdPath)
	if !ok {
		return nil
	}
	return cString(bridge().ComputePrivateKey(m, p))
}

//export compute_public_key
func compute_public_key(hexPrivateKey *C.char) *C.char {
	k, ok := goString("compute_public_key", hexPrivateKey)
	if !ok {
		return nil
	}
	return cString(bridge().ComputePublicKey(k))
}

//export compute_public_key_uncompressed
func compute_public_key_uncompressed(hexPrivateKey *C.char) *C.char {
	k, ok := goString("compute_public_key_uncompressed", hexPrivateKey)
	if !ok {
		return nil
	}
	return cString(bridge().ComputePublicKeyUncompressed(k))
}

//export generate_mnemonic
func generate_mnemonic(words C.int32_t) *C.char {
	return cString(bridge().GenerateMnemonic(int(words)))
}

//export digest_hex_claim
func digest_hex_claim(hexClaim *C.char) *C.char {
	c, ok := goString("digest_hex_claim", hexClaim)
	if !ok {
		return nil
	}
	return cString(bridge().DigestHexClaim(c))
}

//export digest_string_claim
func digest_string_claim(claim *C.char) *C.char {
	c, ok := goString("digest_string_claim", claim)
	if !ok {
		return nil
	}
	return cString(bridge().DigestStringClaim(c))
}

//export sign_message
func sign_message(message, hexPrivateKey *C.char) *C.char {
	m, ok := goString("sign_message", message)
	if !ok {
		return nil
	}
	k, ok := goString("sign_message", hexPrivateKey)
	if !ok {
		return nil
	}
	return cString(bridge().SignMessage(m, k))
}

//export is_valid
func is_valid(hexSignature, message, hexPublicKey *C.char) C.bool {
	s, ok := goString("is_valid", hexSignature)
	if !ok {
		return false
	}
	m, ok := goString("is_valid", message)
	if !ok {
		return false
	}
	p, ok := goString("is_valid", hexPublicKey)
	if !ok {
		return false
	}
	return C.bool(bridge().IsValid(s, m, p))
}

//export is_valid_signature
func is_valid_signature(hexSignature, message, hexPublicKey *C.char) C.bool {
	return is_valid(hexSignature, message, hexPublicKey)
}

//export recover_signer
func recover_signer(hexSignature, message *C.char) *C.char {
	s, ok := goString("recover_signer", hexSignature)
	if !ok {
		return nil
	}
	m, ok := goString("recover_signer", message)
	if !ok {
		return nil
	}
	return cString(bridge().RecoverSigner(s, m))
}

//export recover_signature
func recover_signature(hexSignature, message *C.char) *C.char {
	return recover_signer(hexSignature, message)
}

//export recover_signer_uncompressed
func recover_signer_uncompressed(hexSignature, message *C.char) *C.char {
	s, ok := goString("recover_signer_uncompressed", hexSignature)
	if !ok {
		return nil
	}
	m, ok := goString("recover_signer_uncompressed", message)
	if !ok {
		return nil
	}
	return cString(bridge().RecoverSignerUncompressed(s, m))
}

//export encrypt_symmetric
func encrypt_symmetric(message, passphrase *C.char) *C.char {
	m, ok := goString("encrypt_symmetric", message)
	if !ok {
		return nil
	}
	p, ok := goString("encrypt_symmetric", passphrase)
	if !ok {
		return nil
	}
	return cString(bridge().EncryptSymmetric(m, p))
}

//export decrypt_symmetric
func decrypt_symmetric(base64Cipher, passphrase *C.char) *C.char {
	c, ok := goString("decrypt_symmetric", base64Cipher)
	if !ok {
		return nil
	}
	p, ok := goString("decrypt_symmetric", passphrase)
	if !ok {
		return nil
	}
	return cString(bridge().DecryptSymmetric(c, p))
}

//export generate_zk_proof
func generate_zk_proof(provingKeyPath, inputs *C.char) *C.char {
	k, ok := goString("generate_zk_proof", provingKeyPath)
	if !ok {
		return nil
	}
	in, ok := goString("generate_zk_proof", inputs)
	if !ok {
		return nil
	}
	return cString(bridge().GenerateZkProof(context.Background(), k, in))
}

//export last_error
func last_error() *C.char {
	b := bridge()
	msg := b.LastErrorMessage()
	if msg == "" {
		return nil
	}
	return cString(b.Allocator().Alloc(msg))
}

// free_cstr wipes a string returned by this library and gives it back. NULL,
// foreign and already freed pointers are recorded as failures and left
// untouched. The memory itself is returned to the C allocator only after
// DefaultQuarantine later frees, so a stale pointer is still recognised as
// freed instead of aliasing a newer result.
//
//export free_cstr
func free_cstr(p *C.char) {
	b := bridge()
	if p == nil {
		b.Fail("free_cstr", domain.E("free_cstr", domain.KindInvalidRelease, errNullPointer))
		return
	}
	h, err := lib.pointers.Unbind(p, func(s *C.char) {
		C.memset(unsafe.Pointer(s), 0, C.strlen(s))
	})
	if err != nil {
		b.Fail("free_cstr", err)
		return
	}
	b.Release(h)
}

//export release
func release(p *C.char) { free_cstr(p) }
