package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

const walletSuffix = ".wallet.json"

var (
	// ErrWalletNotFound is returned when no wallet file exists for a name.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletExists is returned by SaveWallet when the name is taken.
	ErrWalletExists = errors.New("wallet already exists")

	walletName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
)

// walletFile is the on-disk form of one wallet. Everything but the mnemonic
// is stored in clear and bound to the sealed mnemonic as associated data.
type walletFile struct {
	domain.WalletInfo
	Mnemonic blob `json:"mnemonic"`
}

// WalletFileStore keeps one JSON file per wallet under dir.
type WalletFileStore struct {
	dir    string
	params ScryptParams
	mu     sync.Mutex
}

// Option configures a WalletFileStore.
type Option func(*WalletFileStore)

// WithScryptParams overrides the scrypt cost used for new wallets.
func WithScryptParams(n, r, p int) Option {
	return func(s *WalletFileStore) { s.params = ScryptParams{N: n, R: r, P: p} }
}

// NewWalletFileStore returns a store rooted at dir, creating it if needed.
func NewWalletFileStore(dir string, opts ...Option) (*WalletFileStore, error) {
	s := &WalletFileStore{dir: dir, params: scryptParamsDefault()}
	for _, o := range opts {
		o(s)
	}
	if err := s.params.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *WalletFileStore) path(name string) (string, error) {
	if !walletName.MatchString(name) {
		return "", domain.E("wallet store", domain.KindInvalidEncoding, fmt.Errorf("invalid wallet name %q", name))
	}
	return filepath.Join(s.dir, name+walletSuffix), nil
}

func associatedData(info domain.WalletInfo) []byte {
	return []byte(info.Name + "\x00" + strings.ToLower(info.Address) + "\x00" + info.HDPath)
}

// SaveWallet seals mnemonic under passphrase and writes a new wallet file.
func (s *WalletFileStore) SaveWallet(info domain.WalletInfo, mnemonic domain.Mnemonic, passphrase string) error {
	path, err := s.path(info.Name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrWalletExists, info.Name)
	}
	raw := []byte(mnemonic)
	defer memzero.Zero(raw)
	bl, err := seal(passphrase, raw, associatedData(info), s.params)
	if err != nil {
		return err
	}
	return writeJSON(path, walletFile{WalletInfo: info, Mnemonic: bl}, 0o600)
}

func (s *WalletFileStore) load(name string) (walletFile, error) {
	path, err := s.path(name)
	if err != nil {
		return walletFile{}, err
	}
	var wf walletFile
	found, err := readJSON(path, &wf)
	if err != nil {
		return walletFile{}, domain.E("load wallet", domain.KindInvalidEncoding, err)
	}
	if !found {
		return walletFile{}, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return wf, nil
}

// LoadWallet returns the public part of a wallet.
func (s *WalletFileStore) LoadWallet(name string) (domain.WalletInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.load(name)
	if err != nil {
		return domain.WalletInfo{}, err
	}
	return wf.WalletInfo, nil
}

// UnlockWallet decrypts and returns the wallet's mnemonic.
func (s *WalletFileStore) UnlockWallet(name, passphrase string) (domain.Mnemonic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.load(name)
	if err != nil {
		return "", err
	}
	pt, err := open(passphrase, wf.Mnemonic, associatedData(wf.WalletInfo))
	if err != nil {
		return "", err
	}
	defer memzero.Zero(pt)
	return domain.Mnemonic(pt), nil
}

// ListWallets returns every stored wallet sorted by name.
func (s *WalletFileStore) ListWallets() ([]domain.WalletInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+walletSuffix))
	if err != nil {
		return nil, err
	}
	out := make([]domain.WalletInfo, 0, len(matches))
	for _, m := range matches {
		wf, err := s.load(strings.TrimSuffix(filepath.Base(m), walletSuffix))
		if err != nil {
			return nil, err
		}
		out = append(out, wf.WalletInfo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Compile-time assertion that WalletFileStore implements domain.WalletStore.
var _ domain.WalletStore = (*WalletFileStore)(nil)
