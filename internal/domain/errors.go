package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the core can report.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidEncoding
	KindInvalidKey
	KindInvalidMnemonic
	KindInvalidPath
	KindDerivation
	KindInvalidSignature
	KindAuthenticationFailed
	KindUnsupportedSize
	KindProvingKeyNotFound
	KindProvingKeyCorrupt
	KindInvalidInputs
	KindInvalidRelease
)

var (
	ErrInternal             = errors.New("internal error")
	ErrInvalidEncoding      = errors.New("invalid encoding")
	ErrInvalidKey           = errors.New("invalid key")
	ErrInvalidMnemonic      = errors.New("invalid mnemonic")
	ErrInvalidPath          = errors.New("invalid derivation path")
	ErrDerivation           = errors.New("key derivation failed")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnsupportedSize      = errors.New("unsupported size")
	ErrProvingKeyNotFound   = errors.New("proving key not found")
	ErrProvingKeyCorrupt    = errors.New("proving key corrupt")
	ErrInvalidInputs        = errors.New("invalid proof inputs")
	ErrInvalidRelease       = errors.New("invalid release")
)

var kinds = [...]struct {
	name     string
	sentinel error
}{
	KindInternal:             {"Internal", ErrInternal},
	KindInvalidEncoding:      {"InvalidEncoding", ErrInvalidEncoding},
	KindInvalidKey:           {"InvalidKey", ErrInvalidKey},
	KindInvalidMnemonic:      {"InvalidMnemonic", ErrInvalidMnemonic},
	KindInvalidPath:          {"InvalidPath", ErrInvalidPath},
	KindDerivation:           {"DerivationError", ErrDerivation},
	KindInvalidSignature:     {"InvalidSignature", ErrInvalidSignature},
	KindAuthenticationFailed: {"AuthenticationFailed", ErrAuthenticationFailed},
	KindUnsupportedSize:      {"UnsupportedSize", ErrUnsupportedSize},
	KindProvingKeyNotFound:   {"ProvingKeyNotFound", ErrProvingKeyNotFound},
	KindProvingKeyCorrupt:    {"ProvingKeyCorrupt", ErrProvingKeyCorrupt},
	KindInvalidInputs:        {"InvalidInputs", ErrInvalidInputs},
	KindInvalidRelease:       {"InvalidRelease", ErrInvalidRelease},
}

func (k ErrorKind) valid() bool { return k >= 0 && int(k) < len(kinds) }

func (k ErrorKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kinds[k].name
}

// Sentinel returns the error value errors.Is matches for this kind.
func (k ErrorKind) Sentinel() error {
	if !k.valid() {
		return ErrInternal
	}
	return kinds[k].sentinel
}

// Error is a failure tagged with the operation that produced it and its kind.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

// E builds an *Error. err may be nil when the kind says it all.
func E(op string, kind ErrorKind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind.Sentinel())
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind.Sentinel(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool { return target == e.Kind.Sentinel() }

// KindOf returns the kind of the first *Error in err's chain, falling back to
// sentinel matching and finally KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for k := range kinds {
		if errors.Is(err, kinds[k].sentinel) {
			return ErrorKind(k)
		}
	}
	return KindInternal
}
