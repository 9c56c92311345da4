package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product and its quantity inside a cart or an order
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// EffectiveQuantity treats a missing or invalid quantity as 1
func (li LineItem) EffectiveQuantity() int {
	if li.Quantity < 1 {
		return 1
	}
	return li.Quantity
}

// EffectivePrice treats a negative price as 0
func (li LineItem) EffectivePrice() decimal.Decimal {
	if li.UnitPrice.IsNegative() {
		return decimal.Zero
	}
	return li.UnitPrice
}

// LineTotal is unit price times quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return li.EffectivePrice().Mul(decimal.NewFromInt(int64(li.EffectiveQuantity())))
}

// Coupon is a percentage discount rule from the bundled catalog
type Coupon struct {
	ID              string          `json:"id,omitempty"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	IsActive        bool            `json:"isActive"`
	ExpiryDate      string          `json:"expiryDate,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// OrderMode determines the delivery fee policy
type OrderMode string

const (
	ModeDelivery OrderMode = "delivery"
	ModeTakeaway OrderMode = "takeaway"
	ModeDineIn   OrderMode = "dinein"
)

// ParseOrderMode parses a mode case-insensitively. Unknown or empty values fall
// back to delivery, the default mode of the checkout flow.
func ParseOrderMode(s string) OrderMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "takeaway", "takeout":
		return ModeTakeaway
	case "dinein", "dine-in", "dine_in":
		return ModeDineIn
	default:
		return ModeDelivery
	}
}

// Product is what gets added to a cart
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}
