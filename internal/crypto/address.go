package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"dvotenative/internal/domain"
)

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// AddressOf returns the last 20 bytes of Keccak256(X || Y).
func AddressOf(pub domain.UncompressedPublicKey) domain.Address {
	var a domain.Address
	copy(a[:], Keccak256(pub[1:])[12:])
	return a
}

// DeriveAddress returns the address controlled by priv.
func DeriveAddress(priv domain.PrivateKey) domain.Address {
	return AddressOf(DeriveUncompressedPublicKey(priv))
}

// ChecksumAddress renders a with the EIP-55 mixed-case checksum.
func ChecksumAddress(a domain.Address) string {
	lower := hex.EncodeToString(a[:])
	sum := Keccak256([]byte(lower))
	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}

// ParseAddress decodes a 20-byte hex address. The checksum casing is not
// enforced; addresses compare case-insensitively.
func ParseAddress(s string) (domain.Address, error) {
	b, err := FromHexSize(strings.ToLower(s), domain.AddressSize)
	if err != nil {
		return domain.Address{}, err
	}
	var a domain.Address
	copy(a[:], b)
	return a, nil
}
