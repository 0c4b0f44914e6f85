package crypto

import (
	"errors"
	"fmt"

	"github.com/iden3/go-iden3-crypto/poseidon"

	"dvotenative/internal/domain"
)

var errDigestRange = errors.New("poseidon result does not fit a digest")

// Digest hashes data with Poseidon over BN254 and returns the field element
// as 32 big-endian bytes. Input is absorbed in 31-byte little-endian chunks;
// empty input digests to 1.
func Digest(data []byte) (d domain.Digest, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = domain.Digest{}, domain.E("digest", domain.KindInternal, fmt.Errorf("poseidon: %v", r))
		}
	}()
	h := poseidon.HashBytes(data)
	if h == nil || h.Sign() < 0 || h.BitLen() > 8*domain.DigestSize {
		return domain.Digest{}, domain.E("digest", domain.KindInternal, errDigestRange)
	}
	h.FillBytes(d[:])
	return d, nil
}

// DigestHex decodes a hex claim (0x prefix optional) and digests its bytes.
func DigestHex(claim string) (domain.Digest, error) {
	b, err := FromHex(claim)
	if err != nil {
		return domain.Digest{}, err
	}
	return Digest(b)
}

// DigestString digests the UTF-8 bytes of claim.
func DigestString(claim string) (domain.Digest, error) {
	return Digest([]byte(claim))
}
