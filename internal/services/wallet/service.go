package wallet

import (
	"fmt"
	"time"
	"unicode"

	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/hdwallet"
	"dvotenative/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages wallet creation and access using a backing store.
//
// A wallet contains:
//   - A BIP39 mnemonic, only ever stored sealed under the passphrase.
//   - The derivation path and the address it yields, stored in clear.
type Service struct {
	store domain.WalletStore
	now   func() time.Time
}

// New returns a wallet service backed by the given store.
func New(s domain.WalletStore) *Service { return &Service{store: s, now: time.Now} }

// CreateWallet generates a mnemonic of the given length, saves it encrypted
// with the passphrase, and returns the wallet plus the mnemonic so it can be
// backed up.
func (s *Service) CreateWallet(
	name string,
	words int,
	hdPath string,
	passphrase string,
) (domain.WalletInfo, domain.Mnemonic, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.WalletInfo{}, "", ErrWeakPassphrase
	}
	m, err := hdwallet.GenerateMnemonic(words)
	if err != nil {
		return domain.WalletInfo{}, "", err
	}
	info, err := s.save(name, m, hdPath, passphrase)
	if err != nil {
		return domain.WalletInfo{}, "", err
	}
	return info, m, nil
}

// ImportWallet stores an existing mnemonic under a new wallet name.
func (s *Service) ImportWallet(
	name string,
	mnemonic domain.Mnemonic,
	hdPath string,
	passphrase string,
) (domain.WalletInfo, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.WalletInfo{}, ErrWeakPassphrase
	}
	m := hdwallet.NormalizeMnemonic(mnemonic.String())
	if err := hdwallet.ValidateMnemonic(m); err != nil {
		return domain.WalletInfo{}, err
	}
	return s.save(name, m, hdPath, passphrase)
}

func (s *Service) save(name string, m domain.Mnemonic, hdPath, passphrase string) (domain.WalletInfo, error) {
	if hdPath == "" {
		hdPath = domain.DefaultHDPath
	}
	path, err := hdwallet.ParsePath(hdPath)
	if err != nil {
		return domain.WalletInfo{}, err
	}
	priv, err := hdwallet.DerivePrivateKey(m.String(), path.String())
	if err != nil {
		return domain.WalletInfo{}, err
	}
	defer memzero.ZeroArray32((*[32]byte)(&priv))

	info := domain.WalletInfo{
		Name:      name,
		Address:   crypto.ChecksumAddress(crypto.DeriveAddress(priv)),
		HDPath:    path.String(),
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	if err := s.store.SaveWallet(info, m, passphrase); err != nil {
		return domain.WalletInfo{}, err
	}
	return info, nil
}

// ShowWallet returns the public part of a wallet without the passphrase.
func (s *Service) ShowWallet(name string) (domain.WalletInfo, error) {
	return s.store.LoadWallet(name)
}

// ListWallets returns every stored wallet.
func (s *Service) ListWallets() ([]domain.WalletInfo, error) {
	return s.store.ListWallets()
}

// UnlockWallet decrypts and returns the wallet's mnemonic.
func (s *Service) UnlockWallet(name, passphrase string) (domain.Mnemonic, error) {
	return s.store.UnlockWallet(name, passphrase)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
