package identity

import (
	"sync"

	"github.com/google/uuid"
)

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(email, password string) (Identity, error)
}

// Store is the Guest / Authenticated state machine of one session.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	auth  Authenticator
	state State
}

// NewStore returns a Store in the Guest state.
func NewStore(auth Authenticator) *Store {
	return &Store{auth: auth, state: Guest()}
}

// Login switches to Authenticated on valid credentials. On failure the state is
// left untouched and ErrInvalidCredentials is returned.
func (s *Store) Login(email, password string) (Identity, error) {
	id, err := s.auth.Authenticate(email, password)
	if err != nil {
		return Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated(id)
	return id, nil
}

// Signup always succeeds: it creates a new customer identity and signs it in.
// The password is not retained.
func (s *Store) Signup(email, _ string, fullName string) Identity {
	id := Identity{
		ID:       "user-" + uuid.NewString(),
		Email:    email,
		FullName: fullName,
		Role:     RoleCustomer,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated(id)
	return id
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Guest()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
