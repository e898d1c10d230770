package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/messaging/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMsg struct {
	mock.Mock
}

func (m *mockMsg) Data() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *mockMsg) Subject() string {
	return "orders.placed"
}

func (m *mockMsg) Ack() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockMsg) Nak() error {
	args := m.Called()
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendOrderConfirmation(ctx context.Context, event events.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func Test_handleMessage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	event := events.OrderPlacedEvent{
		OrderID:        "order-0123456789",
		UserID:         "customer-1",
		Email:          "customer@example.com",
		TrackingNumber: "TRK-0A1B2C3D",
		ItemCount:      2,
		TotalAmount:    decimal.RequireFromString("19.97"),
		CreatedAt:      time.Now().UTC(),
	}
	validPayload, _ := json.Marshal(event)
	forOrder := mock.MatchedBy(func(e events.OrderPlacedEvent) bool { return e.OrderID == event.OrderID })

	testCases := []struct {
		name       string
		newMockMsg func() *mockMsg
		newSender  func() *mockSender
	}{
		{
			name: "valid message is acked",
			newMockMsg: func() *mockMsg {
				msg := new(mockMsg)
				msg.On("Data").Return(validPayload).Times(1)
				msg.On("Ack").Return(nil).Times(1)
				return msg
			},
			newSender: func() *mockSender {
				s := new(mockSender)
				s.On("SendOrderConfirmation", mock.Anything, forOrder).Return(nil).Once()
				return s
			},
		},
		{
			name: "invalid message is nacked",
			newMockMsg: func() *mockMsg {
				msg := new(mockMsg)
				msg.On("Data").Return([]byte("invalid data")).Times(1)
				msg.On("Nak").Return(nil).Times(1)
				return msg
			},
			newSender: func() *mockSender { return new(mockSender) },
		},
		{
			name: "failed delivery is nacked",
			newMockMsg: func() *mockMsg {
				msg := new(mockMsg)
				msg.On("Data").Return(validPayload).Times(1)
				msg.On("Nak").Return(errors.New("connection closed")).Times(1)
				return msg
			},
			newSender: func() *mockSender {
				s := new(mockSender)
				s.On("SendOrderConfirmation", mock.Anything, forOrder).Return(errors.New("smtp down")).Once()
				return s
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			msg := tc.newMockMsg()
			sender := tc.newSender()

			// when
			handleMessage(context.Background(), msg, sender, logger)

			// then
			msg.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}

func TestLogSender(t *testing.T) {
	s := LogSender{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	err := s.SendOrderConfirmation(context.Background(), events.OrderPlacedEvent{OrderID: "order-1"})
	assert.NoError(t, err)
}
