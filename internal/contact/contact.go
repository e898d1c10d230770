// Package contact stores the messages sent through the contact form.
package contact

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNew     Status = "new"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store interface {
	// Submit stores a new message. ID, Status and CreatedAt are assigned by the store.
	Submit(ctx context.Context, m Message) (Message, error)

	// FindAll returns one page of messages, newest first.
	FindAll(ctx context.Context, offset, limit int) ([]Message, error)
}

type inMemory struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
}

func NewInMemoryStore() Store {
	return &inMemory{now: time.Now}
}

func (s *inMemory) Submit(_ context.Context, m Message) (Message, error) {
	m.ID = "msg-" + uuid.NewString()
	m.Status = StatusNew
	m.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *inMemory) FindAll(_ context.Context, offset, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0)
	for _, m := range slices.Backward(s.messages) {
		if len(out) == limit {
			break
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
