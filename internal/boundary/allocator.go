package boundary

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"dvotenative/internal/domain"
	"dvotenative/internal/util/memzero"
)

// Handle names a buffer owned by an Allocator. The zero Handle is never
// issued and stands for "no result".
type Handle uint64

var (
	errZeroHandle    = errors.New("zero handle")
	errUnknownHandle = errors.New("handle is not live")
)

// Allocator hands out buffers and tracks them until they are released
// exactly once. It is safe for concurrent use.
type Allocator struct {
	mu   sync.Mutex
	next Handle
	live map[Handle][]byte
	log  *zap.Logger
}

// NewAllocator returns an empty Allocator. log may be nil.
func NewAllocator(log *zap.Logger) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Allocator{live: make(map[Handle][]byte), log: log.Named("alloc")}
}

// Alloc copies text into a new buffer and returns its handle.
func (a *Allocator) Alloc(text string) Handle {
	buf := []byte(text)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	a.live[a.next] = buf
	return a.next
}

// Read returns a copy of the text behind h.
func (a *Allocator) Read(h Handle) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf, ok := a.live[h]
	if !ok {
		return "", domain.E("read", domain.KindInvalidRelease, fmt.Errorf("%w: %d", errUnknownHandle, h))
	}
	return string(buf), nil
}

// Release wipes and frees the buffer behind h. Releasing the zero handle, a
// handle this Allocator never issued, or one already released fails with
// KindInvalidRelease and changes nothing.
func (a *Allocator) Release(h Handle) error {
	if h == 0 {
		a.log.Warn("release of zero handle")
		return domain.E("release", domain.KindInvalidRelease, errZeroHandle)
	}
	a.mu.Lock()
	buf, ok := a.live[h]
	if ok {
		delete(a.live, h)
	}
	a.mu.Unlock()
	if !ok {
		a.log.Warn("release of unknown handle", zap.Uint64("handle", uint64(h)))
		return domain.E("release", domain.KindInvalidRelease, fmt.Errorf("%w: %d", errUnknownHandle, h))
	}
	memzero.Zero(buf)
	return nil
}

// Live returns the number of buffers not yet released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
