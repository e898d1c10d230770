// Package session owns the per-browser state of the storefront: who is signed in,
// the cart and the checkout in progress.
package session

import (
	"sync"
	"time"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/checkout"
	"github.com/abgdnv/storefront/internal/identity"
)

// Session is the root object of one browser session. Components reach each other
// only through it.
type Session struct {
	ID       string
	Identity *identity.Store
	Cart     *cart.Cart
	Checkout *checkout.Flow

	mu       sync.Mutex
	lastSeen time.Time
}

// Deps are the shared collaborators every session is wired to.
type Deps struct {
	Catalog       cart.ProductLookup
	Authenticator identity.Authenticator
	Placer        *checkout.Placer
}

// New builds a guest session with an empty cart.
func New(id string, deps Deps, now time.Time) *Session {
	ids := identity.NewStore(deps.Authenticator)
	c := cart.New(deps.Catalog)
	return &Session{
		ID:       id,
		Identity: ids,
		Cart:     c,
		Checkout: checkout.NewFlow(ids, c, deps.Placer),
		lastSeen: now,
	}
}

// Login signs in and restarts any checkout left by a previous identity.
func (s *Session) Login(email, password string) (identity.Identity, error) {
	id, err := s.Identity.Login(email, password)
	if err != nil {
		return identity.Identity{}, err
	}
	s.Checkout.Reset()
	return id, nil
}

// Signup creates and signs in a new customer.
func (s *Session) Signup(email, password, fullName string) identity.Identity {
	id := s.Identity.Signup(email, password, fullName)
	s.Checkout.Reset()
	return id
}

// Logout returns to Guest and drops the checkout in progress. The cart is kept.
func (s *Session) Logout() {
	s.Identity.Logout()
	s.Checkout.Reset()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
