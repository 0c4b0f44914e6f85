package hdwallet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"dvotenative/internal/domain"
)

// maxDepth is the BIP32 serialization limit on path length.
const maxDepth = 255

var errEmptyComponent = errors.New("empty path component")

// Path is a parsed BIP32 derivation path. Hardened indexes carry
// hdkeychain.HardenedKeyStart.
type Path []uint32

// ParsePath parses "m/44'/60'/0'/0/0". Hardened components end with ', h or H.
// "m" alone selects the master key.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, domain.E("parse path", domain.KindInvalidPath, fmt.Errorf("%q must start with m", s))
	}
	parts = parts[1:]
	if len(parts) > maxDepth {
		return nil, domain.E("parse path", domain.KindInvalidPath, fmt.Errorf("depth %d exceeds %d", len(parts), maxDepth))
	}
	path := make(Path, 0, len(parts))
	for i, p := range parts {
		idx, err := parseComponent(p)
		if err != nil {
			return nil, domain.E("parse path", domain.KindInvalidPath, fmt.Errorf("component %d: %w", i+1, err))
		}
		path = append(path, idx)
	}
	return path, nil
}

func parseComponent(p string) (uint32, error) {
	var hardened bool
	if n := len(p); n > 0 && (p[n-1] == '\'' || p[n-1] == 'h' || p[n-1] == 'H') {
		hardened = true
		p = p[:n-1]
	}
	if p == "" {
		return 0, errEmptyComponent
	}
	// ParseUint accepts a leading '+'; indexes are plain digits only.
	if p[0] < '0' || p[0] > '9' {
		return 0, fmt.Errorf("%q is not a number", p)
	}
	n, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		return 0, err
	}
	if n >= hdkeychain.HardenedKeyStart {
		return 0, fmt.Errorf("index %d out of range", n)
	}
	idx := uint32(n)
	if hardened {
		idx += hdkeychain.HardenedKeyStart
	}
	return idx, nil
}

// String renders the path using ' for hardened components.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(idx), 10))
	}
	return b.String()
}
