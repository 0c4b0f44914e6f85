// Package wallet manages creation, encryption and unlocking of local wallets.
//
// It enforces passphrase policy, generates or imports BIP39 mnemonics,
// derives the wallet address and persists everything via the
// domain.WalletStore.
package wallet
