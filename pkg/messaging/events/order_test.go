package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/messaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPlacedEvent_Payload(t *testing.T) {
	// given
	event := OrderPlacedEvent{
		OrderID:        "order-0123456789",
		UserID:         "customer-1",
		Email:          "customer@example.com",
		TrackingNumber: "TRK-ABCDEF12",
		ItemCount:      2,
		TotalAmount:    decimal.RequireFromString("25.99"),
		CreatedAt:      time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC),
	}

	// when
	data, err := event.Payload()

	// then
	require.NoError(t, err)
	assert.Equal(t, messaging.OrdersPlacedSubject, event.Subject())
	assert.Equal(t, "order-0123456789", event.Key())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "order-0123456789", decoded["order_id"])
	assert.Equal(t, "25.99", decoded["total_amount"])
	assert.Equal(t, "2025-09-28T10:00:00Z", decoded["created_at"])
}
