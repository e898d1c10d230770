package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/internal/order"
	"github.com/abgdnv/storefront/internal/pricing"
	"github.com/abgdnv/storefront/pkg/messaging"
	"github.com/abgdnv/storefront/pkg/messaging/events"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// OrderRecorder stores placed orders.
type OrderRecorder interface {
	Create(ctx context.Context, o order.Order) error
}

// Placer turns cart lines into orders. One Placer is shared by all sessions.
type Placer struct {
	orders        OrderRecorder
	publisher     messaging.Publisher
	placedCounter metric.Int64Counter
	logger        *slog.Logger
	now           func() time.Time
}

// NewPlacer creates a Placer recording into orders and announcing through publisher.
func NewPlacer(orders OrderRecorder, publisher messaging.Publisher, logger *slog.Logger) *Placer {
	meter := otel.Meter("storefront/checkout")
	placedCounter, err := meter.Int64Counter("orders_placed", metric.WithDescription("Total number of placed orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_placed counter: %v", err))
	}
	return &Placer{
		orders:        orders,
		publisher:     publisher,
		placedCounter: placedCounter,
		logger:        logger.With("component", "checkout"),
		now:           time.Now,
	}
}

// record builds the order with prices snapshotted from lines and stores it.
func (p *Placer) record(ctx context.Context, owner identity.Identity, lines []cart.Line, addr order.ShippingAddress, method order.PaymentMethod) (order.Order, error) {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			PriceAtTime: l.Product.Price,
		})
	}
	subtotal := sumItems(items)
	quote := pricing.QuoteFor(subtotal)

	o := order.Order{
		ID:              order.NewID(),
		UserID:          owner.ID,
		Status:          order.StatusProcessing,
		PaymentStatus:   order.PaymentPaid,
		PaymentMethod:   method,
		TrackingNumber:  order.NewTrackingNumber(),
		ShippingAddress: addr,
		Items:           items,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.Shipping,
		TotalAmount:     quote.Total,
		CreatedAt:       p.now().UTC(),
	}
	if err := p.orders.Create(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("failed to record order: %w", err)
	}
	p.placedCounter.Add(ctx, 1)
	p.logger.InfoContext(ctx, "Order placed", "order_id", o.ID, "user_id", o.UserID, "items", o.ItemCount(), "total", o.TotalAmount.StringFixed(2))
	return o, nil
}

// announce publishes OrderPlacedEvent. A failed publish is logged and never undoes the order.
func (p *Placer) announce(ctx context.Context, o order.Order, email string) {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	event := events.OrderPlacedEvent{
		Carrier:        carrier,
		OrderID:        o.ID,
		UserID:         o.UserID,
		Email:          email,
		TrackingNumber: o.TrackingNumber,
		ItemCount:      o.ItemCount(),
		TotalAmount:    o.TotalAmount,
		CreatedAt:      o.CreatedAt,
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish OrderPlacedEvent", "order_id", o.ID, "error", err)
	}
}

func sumItems(items []order.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
