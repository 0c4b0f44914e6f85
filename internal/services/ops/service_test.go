package ops_test

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/services/ops"
)

const (
	keyOne        = "0x0000000000000000000000000000000000000000000000000000000000000001"
	keyOnePub     = "0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	keyOnePubFull = "0x0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	keyOneAddr    = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	testPhrase    = "test test test test test test test test test test test junk"
	groupOrder    = "0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
)

type fakeProver struct {
	calls []string
	err   error
}

func (f *fakeProver) Prove(_ context.Context, path string, inputs []byte) (domain.Proof, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	return domain.Proof(`{"proof":{},"publicSignals":["` + string(inputs) + `"]}`), nil
}

func newService(t *testing.T) (*ops.Service, *fakeProver) {
	t.Helper()
	c, err := crypto.NewCipher(crypto.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1})
	require.NoError(t, err)
	p := &fakeProver{}
	return ops.New(c, p, nil), p
}

func TestKeyOperations(t *testing.T) {
	s, _ := newService(t)

	addr, err := s.ComputeAddress(keyOne)
	require.NoError(t, err)
	assert.Equal(t, keyOneAddr, addr)

	pub, err := s.ComputePublicKey(strings.TrimPrefix(keyOne, "0x"))
	require.NoError(t, err)
	assert.Equal(t, keyOnePub, pub)

	full, err := s.ComputePublicKeyUncompressed(keyOne)
	require.NoError(t, err)
	assert.Equal(t, keyOnePubFull, full)

	priv, err := s.ComputePrivateKey(testPhrase, domain.DefaultHDPath)
	require.NoError(t, err)
	assert.Equal(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", priv)

	addr, err = s.ComputeAddress(priv)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addr)
}

func TestInvalidPrivateKeys(t *testing.T) {
	s, _ := newService(t)
	for _, k := range []string{
		"",
		"0x",
		"0xzz",
		"0x00",
		"0x0000000000000000000000000000000000000000000000000000000000000000",
		groupOrder,
		"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		keyOne + "00",
	} {
		_, err := s.ComputeAddress(k)
		assert.ErrorIs(t, err, domain.ErrInvalidKey, k)
		_, err = s.ComputePublicKey(k)
		assert.ErrorIs(t, err, domain.ErrInvalidKey, k)
		_, err = s.SignMessage("hello", k)
		assert.ErrorIs(t, err, domain.ErrInvalidKey, k)
	}
}

func TestGenerateMnemonic(t *testing.T) {
	s, _ := newService(t)
	m, err := s.GenerateMnemonic(24)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(m), 24)

	_, err = s.ComputePrivateKey(m, domain.DefaultHDPath)
	require.NoError(t, err)

	_, err = s.GenerateMnemonic(13)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSize)
}

func TestDigestClaims(t *testing.T) {
	s, _ := newService(t)
	for _, claim := range []string{"", "a", "hello world", "vocdoni ñ ✓", strings.Repeat("x", 100)} {
		fromString, err := s.DigestStringClaim(claim)
		require.NoError(t, err)
		assert.Len(t, fromString, 2+64)

		h := hex.EncodeToString([]byte(claim))
		fromHex, err := s.DigestHexClaim(h)
		require.NoError(t, err)
		assert.Equal(t, fromString, fromHex, claim)

		prefixed, err := s.DigestHexClaim("0x" + h)
		require.NoError(t, err)
		assert.Equal(t, fromString, prefixed, claim)
	}

	known, err := s.DigestHexClaim("0x045a126cbbd3c66b6d542d40d91085e3f2b5db3bbc8cda0d59615deb08784e4f833e0bb082194790143c3d01cedb4a9663cb8c7bdaaad839cb794dd309213fcf30")
	require.NoError(t, err)
	assert.Equal(t, "0x101d9ad34a53903628aa59cf510e3d0fcc14678d583f0115a5aa1a2ebd98639c", known)

	a, err := s.DigestStringClaim("a")
	require.NoError(t, err)
	b, err := s.DigestStringClaim("b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	for _, bad := range []string{"0xzz", "abc", "0x0"} {
		_, err := s.DigestHexClaim(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidEncoding, bad)
	}
}

func TestSignVerifyRecover(t *testing.T) {
	s, _ := newService(t)
	const msg = "hello vocdoni"

	sig, err := s.SignMessage(msg, keyOne)
	require.NoError(t, err)
	assert.Len(t, sig, 2+130)

	again, err := s.SignMessage(msg, keyOne)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "signing is deterministic")

	raw, err := hex.DecodeString(sig[2:])
	require.NoError(t, err)
	assert.Contains(t, []byte{27, 28}, raw[64])

	for _, signer := range []string{keyOnePub, keyOnePubFull, keyOneAddr, strings.ToLower(keyOneAddr)} {
		ok, err := s.IsValidSignature(sig, msg, signer)
		require.NoError(t, err)
		assert.True(t, ok, signer)
	}

	ok, err := s.IsValidSignature(sig, msg+"!", keyOnePub)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := s.ComputePublicKey("0x0000000000000000000000000000000000000000000000000000000000000002")
	require.NoError(t, err)
	ok, err = s.IsValidSignature(sig, msg, other)
	require.NoError(t, err)
	assert.False(t, ok)

	pub, err := s.RecoverSigner(sig, msg)
	require.NoError(t, err)
	assert.Equal(t, keyOnePub, pub)

	full, err := s.RecoverSignerUncompressed(sig, msg)
	require.NoError(t, err)
	assert.Equal(t, keyOnePubFull, full)

	// V in {0, 1} is accepted too.
	raw[64] -= 27
	pub, err = s.RecoverSigner(crypto.Hex(raw), msg)
	require.NoError(t, err)
	assert.Equal(t, keyOnePub, pub)
}

func TestIsValidSignatureRejectsFlippedBytes(t *testing.T) {
	s, _ := newService(t)
	sig, err := s.SignMessage("m", keyOne)
	require.NoError(t, err)
	raw, err := hex.DecodeString(sig[2:])
	require.NoError(t, err)

	// One byte of R, then one byte of S.
	for _, i := range []int{5, 40} {
		mod := append([]byte(nil), raw...)
		mod[i] ^= 0x80
		for _, signer := range []string{keyOnePub, keyOnePubFull, keyOneAddr} {
			ok, err := s.IsValidSignature(crypto.Hex(mod), "m", signer)
			require.NoError(t, err)
			assert.False(t, ok, "byte %d signer %s", i, signer)
		}
	}

	// X with one byte changed, still a valid point under the 0x02/0x03 prefix.
	pub, err := hex.DecodeString(keyOnePub[2:])
	require.NoError(t, err)
	found := false
	for delta := 1; delta < 256 && !found; delta++ {
		mod := append([]byte(nil), pub...)
		mod[32] ^= byte(delta)
		if _, err := crypto.ParsePublicKey(mod); err != nil {
			continue
		}
		found = true
		ok, err := s.IsValidSignature(sig, "m", crypto.Hex(mod))
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.True(t, found)
}

func TestSignatureErrors(t *testing.T) {
	s, _ := newService(t)
	sig, err := s.SignMessage("m", keyOne)
	require.NoError(t, err)

	_, err = s.IsValidSignature("0x1234", "m", keyOnePub)
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)

	_, err = s.IsValidSignature(sig, "m", "0x1234")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)

	// 33 bytes that are not a curve point.
	_, err = s.IsValidSignature(sig, "m", "0x05"+strings.Repeat("00", 32))
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)

	raw, err := hex.DecodeString(sig[2:])
	require.NoError(t, err)
	raw[64] = 30
	_, err = s.RecoverSigner(crypto.Hex(raw), "m")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	ok, err := s.IsValidSignature(crypto.Hex(raw), "m", keyOnePub)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.RecoverSigner("not hex", "m")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
}

func TestSymmetricRoundTrip(t *testing.T) {
	s, _ := newService(t)
	for _, msg := range []string{"", "hello", "vocdoni ñ ✓", strings.Repeat("z", 4096)} {
		ct, err := s.EncryptSymmetric(msg, "passphrase")
		require.NoError(t, err)

		ct2, err := s.EncryptSymmetric(msg, "passphrase")
		require.NoError(t, err)
		assert.NotEqual(t, ct, ct2)

		pt, err := s.DecryptSymmetric(ct, "passphrase")
		require.NoError(t, err)
		assert.Equal(t, msg, pt)

		_, err = s.DecryptSymmetric(ct, "wrong")
		assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	}

	_, err := s.DecryptSymmetric("%%%", "p")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
	_, err = s.DecryptSymmetric("AAAA", "p")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
}

func TestGenerateZkProofDelegates(t *testing.T) {
	s, p := newService(t)
	out, err := s.GenerateZkProof(context.Background(), "/keys/pk.json", `1`)
	require.NoError(t, err)
	assert.Equal(t, `{"proof":{},"publicSignals":["1"]}`, out)
	assert.Equal(t, []string{"/keys/pk.json"}, p.calls)

	p.err = domain.E("load proving key", domain.KindProvingKeyNotFound, nil)
	_, err = s.GenerateZkProof(context.Background(), "/keys/none.json", `1`)
	assert.ErrorIs(t, err, domain.ErrProvingKeyNotFound)
}

func TestConcurrentOperations(t *testing.T) {
	s, _ := newService(t)
	var g errgroup.Group
	for i := 1; i <= 32; i++ {
		i := i
		g.Go(func() error {
			key := fmt.Sprintf("0x%064x", i)
			msg := fmt.Sprintf("message %d", i)
			sig, err := s.SignMessage(msg, key)
			if err != nil {
				return err
			}
			want, err := s.ComputePublicKey(key)
			if err != nil {
				return err
			}
			got, err := s.RecoverSigner(sig, msg)
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("key %d: recovered %s, want %s", i, got, want)
			}
			ct, err := s.EncryptSymmetric(msg, key)
			if err != nil {
				return err
			}
			pt, err := s.DecryptSymmetric(ct, key)
			if err != nil {
				return err
			}
			if pt != msg {
				return fmt.Errorf("key %d: decrypted %q", i, pt)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
