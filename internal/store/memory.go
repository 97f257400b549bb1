package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/arkandha/feastly/internal/model"
)

// MemoryCartStore keeps carts in process memory. Used by tests and local
// development without redis.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]model.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[uuid.UUID]model.Cart{}}
}

func (s *MemoryCartStore) Get(_ context.Context, sessionId uuid.UUID) (model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart := s.carts[sessionId]
	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	if len(cart.Items) == 0 {
		cart.Items = nil
	}
	return cart, nil
}

func (s *MemoryCartStore) Set(_ context.Context, sessionId uuid.UUID, cart model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	s.carts[sessionId] = cart
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, sessionId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionId)
	return nil
}
