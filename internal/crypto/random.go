package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
)

// entropy is the single source of randomness for mnemonics, salts and
// nonces. It starts as crypto/rand.Reader, which the runtime seeds from the
// operating system, and is read under a lock so replacement readers need not
// be safe for concurrent use.
var entropy = struct {
	mu sync.Mutex
	r  io.Reader
}{r: rand.Reader}

// RandomBytes returns n fresh bytes from the process-wide source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	entropy.mu.Lock()
	defer entropy.mu.Unlock()
	if _, err := io.ReadFull(entropy.r, b); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return b, nil
}

// SetRandomReader swaps the process-wide source and returns a function that
// restores the previous one. Intended for tests.
func SetRandomReader(r io.Reader) (restore func()) {
	entropy.mu.Lock()
	prev := entropy.r
	entropy.r = r
	entropy.mu.Unlock()
	return func() {
		entropy.mu.Lock()
		entropy.r = prev
		entropy.mu.Unlock()
	}
}
