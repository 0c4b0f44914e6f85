package hdwallet_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/hdwallet"
)

const testPhrase = "test test test test test test test test test test test junk"

func TestDerivePrivateKeyKnownVectors(t *testing.T) {
	cases := []struct {
		path, key, addr string
	}{
		{"m/44'/60'/0'/0/0", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"},
		{"m/44'/60'/0'/0/1", "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
		{"m/44h/60h/0h/0/1", "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			priv, err := hdwallet.DerivePrivateKey(testPhrase, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.key, crypto.Hex(priv.Slice()))

			assert.Equal(t, tc.addr, crypto.ChecksumAddress(crypto.DeriveAddress(priv)))
		})
	}
}

func TestDerivePrivateKeyNormalizesPhrase(t *testing.T) {
	want, err := hdwallet.DerivePrivateKey(testPhrase, domain.DefaultHDPath)
	require.NoError(t, err)
	got, err := hdwallet.DerivePrivateKey("  TEST test\ttest test test test test test test test test\n junk ", domain.DefaultHDPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDerivePrivateKeyRejectsBadInput(t *testing.T) {
	cases := []struct {
		name, phrase, path string
		kind                domain.ErrorKind
	}{
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", domain.DefaultHDPath, domain.KindInvalidMnemonic},
		{"unknown word", "test test test test test test test test test test test zzzz", domain.DefaultHDPath, domain.KindInvalidMnemonic},
		{"eleven words", "test test test test test test test test test test junk", domain.DefaultHDPath, domain.KindInvalidMnemonic},
		{"empty", "", domain.DefaultHDPath, domain.KindInvalidMnemonic},
		{"no root", testPhrase, "44'/60'/0'/0/0", domain.KindInvalidPath},
		{"bad index", testPhrase, "m/44'/x/0", domain.KindInvalidPath},
		{"index too big", testPhrase, "m/2147483648", domain.KindInvalidPath},
		{"empty component", testPhrase, "m/44'//0", domain.KindInvalidPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := hdwallet.DerivePrivateKey(tc.phrase, tc.path)
			require.Error(t, err)
			assert.Equal(t, tc.kind, domain.KindOf(err))
		})
	}
}

func TestParsePath(t *testing.T) {
	p, err := hdwallet.ParsePath("m/44'/60H/0h/0/7")
	require.NoError(t, err)
	assert.Equal(t, hdwallet.Path{0x8000002c, 0x8000003c, 0x80000000, 0, 7}, p)
	assert.Equal(t, "m/44'/60'/0'/0/7", p.String())

	root, err := hdwallet.ParsePath("m")
	require.NoError(t, err)
	assert.Empty(t, root)
	assert.Equal(t, "m", root.String())

	for _, bad := range []string{"", "/0", "m/", "m/+1", "m/-1", "m/1''", "m/4294967295"} {
		_, err := hdwallet.ParsePath(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPath, bad)
	}
}

func TestGenerateMnemonic(t *testing.T) {
	for _, words := range hdwallet.SupportedWordCounts() {
		m, err := hdwallet.GenerateMnemonic(words)
		require.NoError(t, err)
		assert.Len(t, m.Words(), words)
		assert.True(t, bip39.IsMnemonicValid(m.String()))
		require.NoError(t, hdwallet.ValidateMnemonic(m))
	}

	a, err := hdwallet.GenerateMnemonic(12)
	require.NoError(t, err)
	b, err := hdwallet.GenerateMnemonic(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateMnemonicUnsupportedSize(t *testing.T) {
	for _, words := range []int{0, 11, 13, 25, -12} {
		_, err := hdwallet.GenerateMnemonic(words)
		assert.ErrorIs(t, err, domain.ErrUnsupportedSize)
	}
}

func TestGenerateMnemonicUsesEntropySource(t *testing.T) {
	restore := crypto.SetRandomReader(bytes.NewReader(make([]byte, 16)))
	m, err := hdwallet.GenerateMnemonic(12)
	restore()
	require.NoError(t, err)
	assert.Equal(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", m.String())

	restore = crypto.SetRandomReader(bytes.NewReader(nil))
	defer restore()
	_, err = hdwallet.GenerateMnemonic(24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInternal))
}
