// Package notification consumes order events and sends the order confirmation to the customer.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/messaging/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "storefront/notification"

// Message is the part of a JetStream message the handler needs.
type Message interface {
	Data() []byte
	Subject() string
	Ack() error
	Nak() error
}

// Sender delivers the confirmation of a placed order.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, event events.OrderPlacedEvent) error
}

// LogSender writes the confirmation to the log instead of a mailbox.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) SendOrderConfirmation(ctx context.Context, event events.OrderPlacedEvent) error {
	s.Logger.InfoContext(ctx, "Sending order confirmation",
		slog.String("order_id", event.OrderID),
		slog.String("email", event.Email),
		slog.String("tracking_number", event.TrackingNumber),
		slog.Int("item_count", event.ItemCount),
		slog.String("total_amount", event.TotalAmount.StringFixed(2)))
	return nil
}

// Start creates the durable consumer and runs the configured number of workers until ctx is done.
func Start(ctx context.Context, js jetstream.JetStream, cfg config.SubscriberConfig, sender Sender, logger *slog.Logger) error {
	consumer, err := js.CreateOrUpdateConsumer(ctx, cfg.Stream, jetstream.ConsumerConfig{
		FilterSubject: cfg.Subject,
		Durable:       cfg.Consumer,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return err
	}
	logger = logger.With("component", "notification")
	g, gCtx := errgroup.WithContext(ctx)
	for range cfg.Workers {
		g.Go(func() error {
			return runWorker(gCtx, consumer, cfg.Timeout, cfg.Interval, sender, logger)
		})
	}
	return g.Wait()
}

func runWorker(ctx context.Context, consumer jetstream.Consumer, timeout, interval time.Duration, sender Sender, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			batch, err := consumer.Fetch(1, jetstream.FetchMaxWait(timeout))
			if err != nil {
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				logger.ErrorContext(ctx, "Failed to fetch messages", "error", err)
				time.Sleep(interval)
				continue
			}
			for msg := range batch.Messages() {
				handleMessage(ctx, msg, sender, logger)
			}
		}
	}
}

func handleMessage(ctx context.Context, msg Message, sender Sender, logger *slog.Logger) {
	if msg == nil {
		logger.ErrorContext(ctx, "Received nil message")
		return
	}
	var event events.OrderPlacedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorContext(ctx, "Failed to unmarshal message", "error", err, "subject", msg.Subject())
		nak(ctx, msg, logger)
		return
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, event.Carrier)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "notification.OrderPlaced",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("order.id", event.OrderID)))
	defer span.End()

	logger.InfoContext(ctx, "Received order placed event",
		slog.String("subject", msg.Subject()),
		slog.String("order_id", event.OrderID),
		slog.String("user_id", event.UserID),
		slog.String("created_at", event.CreatedAt.Format(time.RFC3339)))

	if err := sender.SendOrderConfirmation(ctx, event); err != nil {
		span.RecordError(err)
		logger.ErrorContext(ctx, "Failed to send order confirmation", "error", err, "order_id", event.OrderID)
		nak(ctx, msg, logger)
		return
	}
	if err := msg.Ack(); err != nil {
		logger.ErrorContext(ctx, "Failed to ack message", "error", err)
	}
}

func nak(ctx context.Context, msg Message, logger *slog.Logger) {
	if err := msg.Nak(); err != nil {
		logger.ErrorContext(ctx, "Failed to nack message", "error", err)
	}
}
