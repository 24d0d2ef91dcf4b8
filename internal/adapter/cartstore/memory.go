package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/VS237/momshop/internal/domain/cart"
)

type entry struct {
	cart      cart.Cart
	expiresAt time.Time
}

// MemoryStore implements cart.Store in process memory. Carts are copied in
// and out so callers never share slices with the store.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

var _ cart.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore; a ttl of zero keeps carts forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		return cart.New(), nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.carts, sessionID)
		return cart.New(), nil
	}
	return copyCart(&e.cart), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.IsEmpty() {
		delete(s.carts, sessionID)
		return nil
	}
	s.carts[sessionID] = entry{
		cart:      *copyCart(c),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

func copyCart(c *cart.Cart) *cart.Cart {
	lines := make([]cart.Line, len(c.Lines))
	copy(lines, c.Lines)
	return &cart.Cart{Lines: lines, UpdatedAt: c.UpdatedAt}
}
