package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"dvotenative/internal/domain"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// FromB64 decodes standard, padded base64.
func FromB64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, domain.E("decode base64", domain.KindInvalidEncoding, err)
	}
	return b, nil
}

// Hex returns b as 0x-prefixed lowercase hex.
func Hex(b []byte) string { return "0x" + hex.EncodeToString(b) }

// FromHex decodes hex with or without a 0x prefix. An empty string decodes to
// an empty slice.
func FromHex(s string) ([]byte, error) {
	s = strip0x(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, domain.E("decode hex", domain.KindInvalidEncoding, err)
	}
	return b, nil
}

// FromHexSize decodes hex and requires exactly one of the given byte lengths.
func FromHexSize(s string, sizes ...int) ([]byte, error) {
	b, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	for _, n := range sizes {
		if len(b) == n {
			return b, nil
		}
	}
	return nil, domain.E("decode hex", domain.KindInvalidEncoding,
		fmt.Errorf("want %v bytes, got %d", sizes, len(b)))
}

func strip0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
