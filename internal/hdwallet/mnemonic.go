package hdwallet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

// entropyBits maps each supported phrase length to its entropy size.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// SupportedWordCounts lists the phrase lengths GenerateMnemonic accepts.
func SupportedWordCounts() []int {
	out := make([]int, 0, len(entropyBits))
	for n := range entropyBits {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// GenerateMnemonic returns a fresh phrase of the given number of words.
func GenerateMnemonic(words int) (domain.Mnemonic, error) {
	bits, ok := entropyBits[words]
	if !ok {
		return "", domain.E("generate mnemonic", domain.KindUnsupportedSize,
			fmt.Errorf("%d words, want one of %v", words, SupportedWordCounts()))
	}
	entropy, err := crypto.RandomBytes(bits / 8)
	if err != nil {
		return "", domain.E("generate mnemonic", domain.KindInternal, err)
	}
	defer memzero.Zero(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", domain.E("generate mnemonic", domain.KindInternal, err)
	}
	return domain.Mnemonic(phrase), nil
}

// NormalizeMnemonic lowercases the phrase and collapses whitespace.
func NormalizeMnemonic(phrase string) domain.Mnemonic {
	return domain.Mnemonic(strings.Join(strings.Fields(strings.ToLower(phrase)), " "))
}

// ValidateMnemonic checks word count, wordlist membership and checksum.
func ValidateMnemonic(m domain.Mnemonic) error {
	words := m.Words()
	if _, ok := entropyBits[len(words)]; !ok {
		return domain.E("validate mnemonic", domain.KindInvalidMnemonic,
			fmt.Errorf("%d words", len(words)))
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return domain.E("validate mnemonic", domain.KindInvalidMnemonic,
				fmt.Errorf("word %d is not in the wordlist", i+1))
		}
	}
	if !bip39.IsMnemonicValid(string(m)) {
		return domain.E("validate mnemonic", domain.KindInvalidMnemonic, fmt.Errorf("checksum mismatch"))
	}
	return nil
}
