package hdwallet

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

// DerivePrivateKey derives the private key at hdPath from phrase, using an
// empty BIP39 passphrase.
func DerivePrivateKey(phrase, hdPath string) (domain.PrivateKey, error) {
	m := NormalizeMnemonic(phrase)
	if err := ValidateMnemonic(m); err != nil {
		return domain.PrivateKey{}, err
	}
	path, err := ParsePath(hdPath)
	if err != nil {
		return domain.PrivateKey{}, err
	}
	return deriveAt(m, path)
}

func deriveAt(m domain.Mnemonic, path Path) (domain.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(string(m), "")
	if err != nil {
		return domain.PrivateKey{}, domain.E("derive private key", domain.KindInvalidMnemonic, err)
	}
	defer memzero.Zero(seed)

	// The network only affects extended-key serialization, never the keys.
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return domain.PrivateKey{}, domain.E("derive private key", domain.KindDerivation, err)
	}
	for _, idx := range path {
		if key, err = key.Derive(idx); err != nil {
			return domain.PrivateKey{}, domain.E("derive private key", domain.KindDerivation, err)
		}
	}
	ec, err := key.ECPrivKey()
	if err != nil {
		return domain.PrivateKey{}, domain.E("derive private key", domain.KindDerivation, err)
	}
	defer ec.Zero()

	raw := ec.Serialize()
	defer memzero.Zero(raw)
	priv, err := crypto.PrivateKeyFromBytes(raw)
	if err != nil {
		return domain.PrivateKey{}, domain.E("derive private key", domain.KindDerivation, err)
	}
	return priv, nil
}
