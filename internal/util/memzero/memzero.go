// Package memzero wipes sensitive buffers.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites every given buffer with zeros in a constant-time friendly way.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
		runtime.KeepAlive(b)
	}
}

// ZeroArray32 wipes a fixed 32-byte secret such as a private key.
func ZeroArray32(a *[32]byte) {
	if a == nil {
		return
	}
	Zero(a[:])
}
