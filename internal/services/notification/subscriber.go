package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golden-fork/internal/logger"
	"golden-fork/internal/messaging"
	"golden-fork/internal/models"
	"golden-fork/internal/services/orders"
	"golden-fork/internal/services/pricing"
)

// Consumer delivers raw message bodies to a handler until ctx ends
type Consumer interface {
	Run(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber prints a line for every placed order
type Subscriber struct {
	consumer Consumer
	logger   *logger.Logger
	out      io.Writer
	currency string
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer Consumer, currency string, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      os.Stdout,
		currency: currency,
	}
}

// Start consumes until ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.Run(ctx, s.handleNotification)

	s.logger.Info("graceful_shutdown", "Stopping notification subscriber", requestID, nil)
	if cerr := s.consumer.Close(); cerr != nil {
		s.logger.Error("graceful_shutdown", "Failed to close consumer", requestID, cerr, nil)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// handleNotification processes one order placed event. Unreadable bodies are
// logged and acknowledged so they do not loop forever.
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.OrderPlacedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, map[string]interface{}{
			"body_length": len(body),
		})
		return nil
	}

	display := orders.Display(msg.Status)
	if _, err := fmt.Fprintln(s.out, s.formatNotification(&msg, display)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}

	s.logger.Info("notification_displayed", "Notification displayed to user", requestID, map[string]interface{}{
		"order_id":   msg.OrderID,
		"order_type": msg.OrderType,
		"status":     msg.Status,
		"label":      display.Label,
		"total":      msg.TotalAmount.StringFixed(2),
	})
	return nil
}

func (s *Subscriber) formatNotification(msg *models.OrderPlacedMessage, display models.StatusDisplay) string {
	timestamp := msg.PlacedAt.Format("2006-01-02 15:04:05")
	coupon := ""
	if msg.CouponCode != "" {
		coupon = fmt.Sprintf(" with %s", msg.CouponCode)
	}

	return fmt.Sprintf("[%s] %s: %s %s for %s%s at %s (%d items, paid by %s)",
		timestamp,
		display.Label,
		orders.TypeLabel(msg.OrderType),
		msg.OrderID,
		pricing.Format(s.currency, msg.TotalAmount),
		coupon,
		msg.BranchName,
		len(msg.Items),
		msg.PaymentMethod,
	)
}
