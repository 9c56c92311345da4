package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedMessage is published once an order has been stored
type OrderPlacedMessage struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	OrderType     string          `json:"order_type"`
	Status        string          `json:"status"`
	BranchName    string          `json:"branch_name"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// NewOrderPlacedMessage builds the event for a freshly inserted order
func NewOrderPlacedMessage(order *NewOrder, couponCode string) *OrderPlacedMessage {
	return &OrderPlacedMessage{
		OrderID:       order.ID,
		UserID:        order.UserID,
		OrderType:     order.OrderType,
		Status:        string(order.Status),
		BranchName:    order.BranchName,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		CouponCode:    couponCode,
		PlacedAt:      time.Now().UTC(),
	}
}

// GenerateRoutingKey generates a routing key for order messages
func GenerateRoutingKey(orderType string) string {
	t := strings.ToLower(strings.TrimSpace(orderType))
	if t == "" {
		t = "unknown"
	}
	return fmt.Sprintf("orders.%s", t)
}
