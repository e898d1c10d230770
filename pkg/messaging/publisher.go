// Package messaging defines the event abstractions used to announce domain changes.
package messaging

import (
	"context"
)

const (
	// OrdersStream is the JetStream stream that captures order events.
	OrdersStream = "ORDERS"
	// OrdersPlacedSubject is published once per placed order.
	OrdersPlacedSubject = "orders.placed"
)

// Event is a message announced on the broker. Key identifies the event for deduplication;
// an empty key disables it.
type Event interface {
	Subject() string
	Key() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
