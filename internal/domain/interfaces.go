package domain

import "context"

// Operations is the text-level surface of the core. Every method takes and
// returns hex, base64 or UTF-8 text and reports failures as *Error values.
type Operations interface {
	ComputeAddress(hexPrivateKey string) (string, error)
	ComputePrivateKey(mnemonic, hdPath string) (string, error)
	ComputePublicKey(hexPrivateKey string) (string, error)
	ComputePublicKeyUncompressed(hexPrivateKey string) (string, error)
	GenerateMnemonic(words int) (string, error)
	DigestHexClaim(hexClaim string) (string, error)
	DigestStringClaim(claim string) (string, error)
	SignMessage(message, hexPrivateKey string) (string, error)
	IsValidSignature(hexSignature, message, hexPublicKey string) (bool, error)
	RecoverSigner(hexSignature, message string) (string, error)
	RecoverSignerUncompressed(hexSignature, message string) (string, error)
	EncryptSymmetric(message, passphrase string) (string, error)
	DecryptSymmetric(base64Cipher, passphrase string) (string, error)
	GenerateZkProof(ctx context.Context, provingKeyPath, inputs string) (string, error)
}

// Prover produces Groth16 proofs from a proving key file and a witness
// document.
type Prover interface {
	Prove(ctx context.Context, provingKeyPath string, inputs []byte) (Proof, error)
}

// WalletStore persists mnemonics sealed under a passphrase.
type WalletStore interface {
	SaveWallet(info WalletInfo, mnemonic Mnemonic, passphrase string) error
	LoadWallet(name string) (WalletInfo, error)
	UnlockWallet(name, passphrase string) (Mnemonic, error)
	ListWallets() ([]WalletInfo, error)
}

// WalletService creates and opens passphrase-protected wallets.
type WalletService interface {
	CreateWallet(name string, words int, hdPath, passphrase string) (WalletInfo, Mnemonic, error)
	ImportWallet(name string, mnemonic Mnemonic, hdPath, passphrase string) (WalletInfo, error)
	ShowWallet(name string) (WalletInfo, error)
	ListWallets() ([]WalletInfo, error)
	UnlockWallet(name, passphrase string) (Mnemonic, error)
}
