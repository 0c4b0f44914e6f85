package domain

import (
	"strings"
	"time"
)

// DefaultHDPath is the BIP44 path of the first Ethereum account.
const DefaultHDPath = "m/44'/60'/0'/0/0"

// Mnemonic is a BIP39 phrase: words from the English wordlist separated by
// single spaces.
type Mnemonic string

func (m Mnemonic) String() string { return string(m) }

// Words returns the words of the phrase.
func (m Mnemonic) Words() []string { return strings.Fields(string(m)) }

// Proof is a serialized Groth16 proof document (JSON with the proof and its
// public signals). It is not interpreted further by the core.
type Proof []byte

func (p Proof) String() string { return string(p) }

// WalletInfo is the public part of a stored wallet.
type WalletInfo struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	HDPath    string    `json:"hd_path"`
	CreatedAt time.Time `json:"created_at"`
}
