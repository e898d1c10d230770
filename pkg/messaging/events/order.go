// Package events holds the concrete events published by the storefront.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/storefront/pkg/messaging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/propagation"
)

type OrderPlacedEvent struct {
	// Carrier propagates the trace context of the request that placed the order.
	Carrier        propagation.MapCarrier `json:"carrier,omitempty"`
	OrderID        string                 `json:"order_id"`
	UserID         string                 `json:"user_id"`
	Email          string                 `json:"email"`
	TrackingNumber string                 `json:"tracking_number"`
	ItemCount      int                    `json:"item_count"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (o OrderPlacedEvent) Subject() string {
	return messaging.OrdersPlacedSubject
}

// Key is the order id: an order is announced at most once.
func (o OrderPlacedEvent) Key() string {
	return o.OrderID
}

func (o OrderPlacedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
