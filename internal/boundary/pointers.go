package boundary

import (
	"errors"
	"sync"

	"dvotenative/internal/domain"
)

// DefaultQuarantine is how many released pointers are held back before
// their memory is returned to the system allocator.
const DefaultQuarantine = 1024

var (
	errForeignPointer = errors.New("pointer was not returned by this library")
	errPointerFreed   = errors.New("pointer was already freed")
)

// Pointers maps foreign addresses returned across the boundary to the
// handles that account for them.
//
// Released addresses are not handed to free straight away. They sit in a
// FIFO quarantine of bounded size, still allocated, so the system allocator
// cannot give the same address to a newer result while a stale copy of it
// may still be around. A second release of a quarantined address is reported
// as a double free and touches nothing.
type Pointers[P comparable] struct {
	mu    sync.Mutex
	live  map[P]Handle
	dead  map[P]struct{}
	queue []P
	limit int
	free  func(P)
}

// NewPointers returns an empty table holding up to limit released pointers
// before passing the oldest to free. free may be nil.
func NewPointers[P comparable](limit int, free func(P)) *Pointers[P] {
	if limit < 1 {
		limit = 1
	}
	if free == nil {
		free = func(P) {}
	}
	return &Pointers[P]{
		live:  make(map[P]Handle),
		dead:  make(map[P]struct{}),
		limit: limit,
		free:  free,
	}
}

// Bind records that ptr belongs to h.
func (p *Pointers[P]) Bind(ptr P, h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.dead[ptr]; ok {
		// Rebinding a quarantined address means the caller owns it again;
		// it must not be freed by a later eviction.
		delete(p.dead, ptr)
		for i, q := range p.queue {
			if q == ptr {
				p.queue = append(p.queue[:i], p.queue[i+1:]...)
				break
			}
		}
	}
	p.live[ptr] = h
}

// Unbind moves ptr from the live table to the quarantine and returns its
// handle. wipe, if not nil, runs on ptr before any other Unbind can evict
// it. Unbind fails with KindInvalidRelease when ptr is quarantined or was
// never bound; wipe is not called then.
func (p *Pointers[P]) Unbind(ptr P, wipe func(P)) (Handle, error) {
	p.mu.Lock()
	h, ok := p.live[ptr]
	if !ok {
		_, freed := p.dead[ptr]
		p.mu.Unlock()
		if freed {
			return 0, domain.E("free", domain.KindInvalidRelease, errPointerFreed)
		}
		return 0, domain.E("free", domain.KindInvalidRelease, errForeignPointer)
	}
	if wipe != nil {
		wipe(ptr)
	}
	delete(p.live, ptr)
	p.dead[ptr] = struct{}{}
	p.queue = append(p.queue, ptr)

	var evicted []P
	for len(p.queue) > p.limit {
		old := p.queue[0]
		p.queue = p.queue[1:]
		delete(p.dead, old)
		evicted = append(evicted, old)
	}
	p.mu.Unlock()

	for _, old := range evicted {
		p.free(old)
	}
	return h, nil
}

// Flush hands every quarantined pointer to free.
func (p *Pointers[P]) Flush() {
	p.mu.Lock()
	q := p.queue
	p.queue = nil
	for _, old := range q {
		delete(p.dead, old)
	}
	p.mu.Unlock()

	for _, old := range q {
		p.free(old)
	}
}

// Len returns the number of bound pointers.
func (p *Pointers[P]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// Quarantined returns the number of released pointers not yet freed.
func (p *Pointers[P]) Quarantined() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}
