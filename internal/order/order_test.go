package order

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDs(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^order-[0-9a-f]{10}$`), NewID())
	assert.Regexp(t, regexp.MustCompile(`^TRK-[0-9A-F]{8}$`), NewTrackingNumber())
	assert.NotEqual(t, NewID(), NewID())
}

func TestParsePaymentMethod(t *testing.T) {
	testCases := []struct {
		in          string
		expected    PaymentMethod
		expectedErr error
	}{
		{in: "card", expected: PaymentCard},
		{in: "paypal", expected: PaymentPayPal},
		{in: "cash", expectedErr: errors.ErrInvalidPaymentMethod},
		{in: "", expectedErr: errors.ErrInvalidPaymentMethod},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePaymentMethod(tc.in)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestOrder_JSON(t *testing.T) {
	o := Order{
		ID:            "order-0123456789",
		PaymentMethod: PaymentPayPal,
		Items: []Item{
			{ProductID: "2", ProductName: "Tesla Cybertruck", Quantity: 2, PriceAtTime: decimal.RequireFromString("6.99")},
		},
	}
	data, err := json.Marshal(o)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "paypal", decoded["paymentMethod"])
	assert.Equal(t, 2, o.ItemCount())
	assert.True(t, decimal.RequireFromString("13.98").Equal(o.Items[0].LineTotal()))
}

func placed(id, userID string, at time.Time) Order {
	return Order{ID: id, UserID: userID, Status: StatusProcessing, CreatedAt: at,
		Items: []Item{{ProductID: "1", ProductName: "Bone Shaker", Quantity: 1, PriceAtTime: decimal.RequireFromString("4.49")}}}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	start := time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		user := "customer-1"
		if i%2 == 1 {
			user = "user-x"
		}
		require.NoError(t, store.Create(ctx, placed(fmt.Sprintf("order-%d", i), user, start.Add(time.Duration(i)*time.Hour))))
	}

	t.Run("duplicate id rejected", func(t *testing.T) {
		assert.Error(t, store.Create(ctx, placed("order-0", "customer-1", start)))
	})

	t.Run("find by id", func(t *testing.T) {
		o, err := store.FindByID(ctx, "order-3")
		require.NoError(t, err)
		assert.Equal(t, "user-x", o.UserID)
		_, err = store.FindByID(ctx, "order-99")
		assert.ErrorIs(t, err, errors.ErrOrderNotFound)
	})

	t.Run("stored orders are not aliased", func(t *testing.T) {
		o, err := store.FindByID(ctx, "order-1")
		require.NoError(t, err)
		o.Items[0].Quantity = 100
		again, err := store.FindByID(ctx, "order-1")
		require.NoError(t, err)
		assert.Equal(t, 1, again.Items[0].Quantity)
	})

	testCases := []struct {
		name     string
		find     func() ([]Order, error)
		expected []string
	}{
		{
			name:     "by user newest first",
			find:     func() ([]Order, error) { return store.FindByUserID(ctx, "customer-1", 0, 10) },
			expected: []string{"order-4", "order-2", "order-0"},
		},
		{
			name:     "by user with offset",
			find:     func() ([]Order, error) { return store.FindByUserID(ctx, "customer-1", 1, 1) },
			expected: []string{"order-2"},
		},
		{
			name:     "all paged",
			find:     func() ([]Order, error) { return store.FindAll(ctx, 1, 3) },
			expected: []string{"order-3", "order-2", "order-1"},
		},
		{
			name:     "offset past the end",
			find:     func() ([]Order, error) { return store.FindAll(ctx, 10, 3) },
			expected: []string{},
		},
		{
			name:     "unknown user",
			find:     func() ([]Order, error) { return store.FindByUserID(ctx, "nobody", 0, 10) },
			expected: []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.find()
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}
