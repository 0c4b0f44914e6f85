package crypto_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
)

func TestKeyOneVectors(t *testing.T) {
	priv, err := crypto.ParsePrivateKey("01")
	assert.ErrorIs(t, err, domain.ErrInvalidKey, "short keys are not padded")

	priv, err = crypto.ParsePrivateKey("0x" + strings.Repeat("00", 31) + "01")
	require.NoError(t, err)

	pub := crypto.DerivePublicKey(priv)
	assert.Equal(t, "0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", crypto.Hex(pub.Slice()))

	full := crypto.DeriveUncompressedPublicKey(priv)
	assert.Equal(t, "0x0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"+
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", crypto.Hex(full.Slice()))

	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", crypto.ChecksumAddress(crypto.DeriveAddress(priv)))
}

func TestPrivateKeyRange(t *testing.T) {
	order, _ := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	_, err := crypto.PrivateKeyFromBytes(order)
	assert.ErrorIs(t, err, domain.ErrInvalidKey)

	order[31]-- // n-1 is the largest valid key
	_, err = crypto.PrivateKeyFromBytes(order)
	assert.NoError(t, err)

	_, err = crypto.PrivateKeyFromBytes(make([]byte, 32))
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
	_, err = crypto.PrivateKeyFromBytes(make([]byte, 33))
	assert.ErrorIs(t, err, domain.ErrInvalidKey)

	_, err = crypto.ParsePrivateKey("0xnothex")
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestParsePublicKey(t *testing.T) {
	priv, err := crypto.ParsePrivateKey("0x" + strings.Repeat("11", 32))
	require.NoError(t, err)
	pub := crypto.DerivePublicKey(priv)
	full := crypto.DeriveUncompressedPublicKey(priv)

	a, err := crypto.ParsePublicKey(pub.Slice())
	require.NoError(t, err)
	b, err := crypto.ParsePublicKey(full.Slice())
	require.NoError(t, err)
	assert.True(t, a.IsEqual(b))

	_, err = crypto.ParsePublicKey(append([]byte{0x07}, pub.Slice()[1:]...))
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
}

func TestKeccak256(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", crypto.Hex(crypto.Keccak256()))
	assert.Equal(t, crypto.Keccak256([]byte("ab")), crypto.Keccak256([]byte("a"), []byte("b")))
}

func TestChecksumAddress(t *testing.T) {
	for _, want := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	} {
		a, err := crypto.ParseAddress(strings.ToLower(want))
		require.NoError(t, err)
		assert.Equal(t, want, crypto.ChecksumAddress(a))

		b, err := crypto.ParseAddress(strings.ToUpper(want[2:]))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}

	_, err := crypto.ParseAddress("0x1234")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
}
