package models

import "github.com/shopspring/decimal"

// Payment methods are labels only; no gateway is involved
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// CheckoutRequest is the contact and payment data entered on the checkout screen
type CheckoutRequest struct {
	Mode          OrderMode `json:"mode"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address,omitempty"`
	Instructions  string    `json:"instructions,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	ScheduledAt   string    `json:"scheduled,omitempty"`
}

// Receipt is returned after an order has been placed
type Receipt struct {
	OrderID       string          `json:"order_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment"`
	Status        string          `json:"status"`
}
