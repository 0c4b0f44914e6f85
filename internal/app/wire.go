package app

import (
	"sync"

	"go.uber.org/zap"

	"dvotenative/internal/boundary"
	"dvotenative/internal/crypto"
	"dvotenative/internal/domain"
	"dvotenative/internal/services/ops"
	"dvotenative/internal/services/wallet"
	"dvotenative/internal/store"
	"dvotenative/internal/zkproof"
)

// Wire bundles the services and the boundary for the CLI and cgo exports.
type Wire struct {
	Config Config
	Log    *zap.Logger
	Ops    domain.Operations
	Prover *zkproof.Prover
	Bridge *boundary.Bridge

	walletOnce sync.Once
	wallets    domain.WalletService
	walletErr  error
}

// NewWire constructs the dependency graph from cfg. log may be nil.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cipher, err := crypto.NewCipher(cfg.KDFParams())
	if err != nil {
		return nil, err
	}

	prover := zkproof.New(log, zkproof.WithKeyCache(cfg.ProvingKeyCache))
	opsSvc := ops.New(cipher, prover, log)
	bridge := boundary.NewBridge(opsSvc, boundary.NewAllocator(log), log)

	return &Wire{
		Config: cfg,
		Log:    log,
		Ops:    opsSvc,
		Prover: prover,
		Bridge: bridge,
	}, nil
}

// Wallets returns the wallet service, creating the wallet directory on first
// use.
func (w *Wire) Wallets() (domain.WalletService, error) {
	w.walletOnce.Do(func() {
		st, err := store.NewWalletFileStore(w.Config.Wallets())
		if err != nil {
			w.walletErr = err
			return
		}
		w.wallets = wallet.New(st)
	})
	return w.wallets, w.walletErr
}

// Close flushes the logger.
func (w *Wire) Close() error {
	_ = w.Log.Sync()
	return nil
}
