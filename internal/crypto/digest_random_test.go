package crypto_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
)

func TestDigestHexMatchesString(t *testing.T) {
	for _, s := range []string{"", "1", "claim", "a longer claim spanning more than one field element of input bytes"} {
		a, err := crypto.DigestString(s)
		require.NoError(t, err)
		b, err := crypto.DigestHex(crypto.Hex([]byte(s)))
		require.NoError(t, err)
		assert.Equal(t, a, b, s)
	}
	_, err := crypto.DigestHex("0x1")
	assert.ErrorIs(t, err, domain.ErrInvalidEncoding)
}

func TestRandomBytes(t *testing.T) {
	a, err := crypto.RandomBytes(32)
	require.NoError(t, err)
	b, err := crypto.RandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	restore := crypto.SetRandomReader(bytes.NewReader([]byte{1, 2, 3}))
	got, err := crypto.RandomBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	_, err = crypto.RandomBytes(1)
	assert.Error(t, err)
	restore()

	_, err = crypto.RandomBytes(16)
	assert.NoError(t, err)
}

func TestEncryptFailsWithoutEntropy(t *testing.T) {
	restore := crypto.SetRandomReader(bytes.NewReader(nil))
	defer restore()
	c, err := crypto.NewCipher(fastKDF)
	require.NoError(t, err)
	_, err = c.Encrypt([]byte("x"), "pw")
	assert.ErrorIs(t, err, domain.ErrInternal)
}
