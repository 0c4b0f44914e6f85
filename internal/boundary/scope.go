package boundary

import (
	"errors"
	"sync"
)

var errScopeClosed = errors.New("scope closed")

// Scope owns a set of handles and releases all of them on Close, whatever
// path the caller takes out of the scope.
//
//	sc := alloc.Scope()
//	defer sc.Close()
//	addr, ok := sc.Text(bridge.ComputeAddress(key))
type Scope struct {
	a *Allocator

	mu      sync.Mutex
	handles []Handle
	closed  bool
}

// Scope opens a new scope on a.
func (a *Allocator) Scope() *Scope { return &Scope{a: a} }

// Adopt hands h to the scope and returns it. The zero handle is ignored.
// Adopting into a closed scope releases h immediately.
func (s *Scope) Adopt(h Handle) Handle {
	if h == 0 {
		return 0
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = s.a.Release(h)
		return 0
	}
	s.handles = append(s.handles, h)
	s.mu.Unlock()
	return h
}

// Alloc allocates text inside the scope.
func (s *Scope) Alloc(text string) Handle { return s.Adopt(s.a.Alloc(text)) }

// Text adopts h and reads it. ok is false for the zero handle.
func (s *Scope) Text(h Handle) (string, bool) {
	if s.Adopt(h) == 0 {
		return "", false
	}
	text, err := s.a.Read(h)
	return text, err == nil
}

// Close releases every handle in the scope. Calling Close again reports
// errScopeClosed and releases nothing.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errScopeClosed
	}
	s.closed = true
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := s.a.Release(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
