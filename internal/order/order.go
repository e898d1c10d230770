// Package order holds placed orders. An order snapshots the price of every line at
// placement time and never changes afterwards.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod is one of card or paypal. The zero value is card.
type PaymentMethod int

const (
	PaymentCard PaymentMethod = iota
	PaymentPayPal
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCard:
		return "card"
	case PaymentPayPal:
		return "paypal"
	default:
		return fmt.Sprintf("PaymentMethod(%d)", int(m))
	}
}

// ParsePaymentMethod accepts "card" and "paypal".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "card":
		return PaymentCard, nil
	case "paypal":
		return PaymentPayPal, nil
	default:
		return PaymentCard, fmt.Errorf("%w: %q", errors.ErrInvalidPaymentMethod, s)
	}
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	switch m {
	case PaymentCard, PaymentPayPal:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", errors.ErrInvalidPaymentMethod, int(m))
	}
}

func (m *PaymentMethod) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zipCode" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

// IsZero reports whether no field is set.
func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

type Item struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"priceAtTime"`
}

// LineTotal is the snapshotted price times the quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ItemCount is the number of units across all items.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// NewID returns an id of the form order-<10 hex digits>.
func NewID() string {
	return "order-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// NewTrackingNumber returns a tracking number of the form TRK-<8 upper case hex digits>.
func NewTrackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
