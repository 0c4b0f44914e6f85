package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dvotenative/internal/domain"
	"dvotenative/internal/store"
)

const phrase = "test test test test test test test test test test test junk"

func newStore(t *testing.T) (*store.WalletFileStore, string) {
	t.Helper()
	home := t.TempDir()
	s, err := store.NewWalletFileStore(home, store.WithScryptParams(1<<10, 8, 1))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, home
}

func info(name string) domain.WalletInfo {
	return domain.WalletInfo{
		Name:      name,
		Address:   "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		HDPath:    domain.DefaultHDPath,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWallet_SaveUnlock_OK(t *testing.T) {
	var ws domain.WalletStore
	s, home := newStore(t)
	ws = s

	if err := ws.SaveWallet(info("main"), phrase, "pass"); err != nil {
		t.Fatalf("save wallet: %v", err)
	}

	got, err := ws.UnlockWallet("main", "pass")
	if err != nil {
		t.Fatalf("unlock wallet: %v", err)
	}
	if got != phrase {
		t.Fatalf("mnemonic mismatch after unlock")
	}

	pub, err := ws.LoadWallet("main")
	if err != nil {
		t.Fatalf("load wallet: %v", err)
	}
	want := info("main")
	if pub.Name != want.Name || pub.Address != want.Address || pub.HDPath != want.HDPath ||
		!pub.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("info mismatch: %+v", pub)
	}

	raw, err := os.ReadFile(filepath.Join(home, "main.wallet.json"))
	if err != nil {
		t.Fatalf("read wallet file: %v", err)
	}
	if strings.Contains(string(raw), "junk") {
		t.Fatal("mnemonic stored in clear")
	}
	fi, err := os.Stat(filepath.Join(home, "main.wallet.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", fi.Mode().Perm())
	}
}

func TestWallet_WrongPassphrase_Fails(t *testing.T) {
	s, _ := newStore(t)
	if err := s.SaveWallet(info("main"), phrase, "correct"); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	_, err := s.UnlockWallet("main", "wrong")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestWallet_TamperedInfo_Fails(t *testing.T) {
	s, home := newStore(t)
	if err := s.SaveWallet(info("main"), phrase, "pass"); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	path := filepath.Join(home, "main.wallet.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	tampered := strings.Replace(string(raw), "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8", 1)
	if err := os.WriteFile(path, []byte(tampered), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.UnlockWallet("main", "pass"); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestWallet_Duplicate_And_Missing(t *testing.T) {
	s, _ := newStore(t)
	if err := s.SaveWallet(info("main"), phrase, "pass"); err != nil {
		t.Fatalf("save wallet: %v", err)
	}
	if err := s.SaveWallet(info("main"), phrase, "pass"); !errors.Is(err, store.ErrWalletExists) {
		t.Fatalf("expected ErrWalletExists, got %v", err)
	}
	if _, err := s.LoadWallet("other"); !errors.Is(err, store.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
	if _, err := s.UnlockWallet("other", "pass"); !errors.Is(err, store.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWallet_InvalidNames(t *testing.T) {
	s, _ := newStore(t)
	for _, name := range []string{"", "../evil", "a/b", ".hidden", strings.Repeat("x", 65)} {
		if err := s.SaveWallet(info(name), phrase, "pass"); !errors.Is(err, domain.ErrInvalidEncoding) {
			t.Fatalf("name %q: expected invalid encoding, got %v", name, err)
		}
	}
}

func TestWallet_List_Sorted(t *testing.T) {
	s, _ := newStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.SaveWallet(info(name), phrase, "pass"); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	list, err := s.ListWallets()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, w := range list {
		names = append(names, w.Name)
	}
	if strings.Join(names, ",") != "alpha,mid,zeta" {
		t.Fatalf("list = %v", names)
	}
}

func TestWallet_RejectsBadScryptParams(t *testing.T) {
	if _, err := store.NewWalletFileStore(t.TempDir(), store.WithScryptParams(1000, 8, 1)); err == nil {
		t.Fatal("expected error for non power-of-two N")
	}
}
