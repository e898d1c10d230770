package order

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/abgdnv/storefront/internal/errors"
)

// Store is the order history. Listings are newest first.
type Store interface {
	// Create stores a new order. Returns an error if the id is already taken.
	Create(ctx context.Context, o Order) error

	// FindByID returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id string) (Order, error)

	// FindByUserID returns one page of the orders of a user.
	FindByUserID(ctx context.Context, userID string, offset, limit int) ([]Order, error)

	// FindAll returns one page of all orders.
	FindAll(ctx context.Context, offset, limit int) ([]Order, error)
}

type inMemory struct {
	mu     sync.RWMutex
	byID   map[string]Order
	placed []string
}

// NewInMemoryStore creates an empty order Store.
func NewInMemoryStore() Store {
	return &inMemory{byID: make(map[string]Order)}
}

func (s *inMemory) Create(_ context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[o.ID]; exists {
		return fmt.Errorf("order %s already exists", o.ID)
	}
	s.byID[o.ID] = cloneOrder(o)
	s.placed = append(s.placed, o.ID)
	return nil
}

func (s *inMemory) FindByID(_ context.Context, id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", errors.ErrOrderNotFound, id)
	}
	return cloneOrder(o), nil
}

func (s *inMemory) FindByUserID(_ context.Context, userID string, offset, limit int) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page(offset, limit, func(o Order) bool { return o.UserID == userID }), nil
}

func (s *inMemory) FindAll(_ context.Context, offset, limit int) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page(offset, limit, func(Order) bool { return true }), nil
}

// page walks the orders newest first. Caller holds the read lock.
func (s *inMemory) page(offset, limit int, keep func(Order) bool) []Order {
	out := make([]Order, 0)
	skipped := 0
	for _, id := range slices.Backward(s.placed) {
		if len(out) == limit {
			break
		}
		o := s.byID[id]
		if !keep(o) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out
}

func cloneOrder(o Order) Order {
	o.Items = slices.Clone(o.Items)
	return o
}
