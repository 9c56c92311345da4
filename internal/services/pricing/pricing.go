// Package pricing turns a cart snapshot, an applied coupon and an order mode
// into the payable breakdown. Everything here is a pure function of its inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

var hundred = decimal.NewFromInt(100)

// FeePolicy is the delivery fee rule. A positive FreeAbove waives the fee when
// the subtotal is strictly above it; zero disables the waiver.
type FeePolicy struct {
	Fee       decimal.Decimal
	FreeAbove decimal.Decimal
}

// DefaultFeePolicy charges a flat 2.00 in delivery mode with no waiver
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{Fee: decimal.NewFromInt(2)}
}

// Totals is the payable breakdown at full precision
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Rounded returns the breakdown rounded to 2 fraction digits for display
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:    t.Subtotal.Round(2),
		DeliveryFee: t.DeliveryFee.Round(2),
		Discount:    t.Discount.Round(2),
		Total:       t.Total.Round(2),
	}
}

// ComputeTotals prices items under coupon and mode. coupon may be nil.
func ComputeTotals(items []models.LineItem, coupon *models.Coupon, mode models.OrderMode, policy FeePolicy) Totals {
	subtotal := Subtotal(items)
	fee := DeliveryFee(subtotal, mode, policy)
	discount := Discount(subtotal, coupon)

	total := subtotal.Sub(discount).Add(fee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       total,
	}
}

// Subtotal sums unit price times quantity over items
func Subtotal(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// DeliveryFee applies policy for mode
func DeliveryFee(subtotal decimal.Decimal, mode models.OrderMode, policy FeePolicy) decimal.Decimal {
	if mode != models.ModeDelivery || !policy.Fee.IsPositive() {
		return decimal.Zero
	}
	if policy.FreeAbove.IsPositive() && subtotal.GreaterThan(policy.FreeAbove) {
		return decimal.Zero
	}
	return policy.Fee
}

// Discount is the coupon percentage of subtotal, clamped to [0, subtotal].
// Inactive or missing coupons discount nothing.
func Discount(subtotal decimal.Decimal, coupon *models.Coupon) decimal.Decimal {
	if coupon == nil || !coupon.IsActive || !coupon.DiscountPercent.IsPositive() {
		return decimal.Zero
	}

	d := subtotal.Mul(coupon.DiscountPercent).Div(hundred)
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Comparison is the "you save with us" card shown next to the totals
type Comparison struct {
	Ours       decimal.Decimal `json:"ours"`
	Zomato     decimal.Decimal `json:"zomato"`
	Swiggy     decimal.Decimal `json:"swiggy"`
	SaveZomato decimal.Decimal `json:"save_vs_zomato"`
	SaveSwiggy decimal.Decimal `json:"save_vs_swiggy"`
}

var (
	zomatoMarkup = decimal.RequireFromString("1.15")
	swiggyMarkup = decimal.RequireFromString("1.18")
)

// Compare prices subtotal against the aggregator markups, rounded to whole units
func Compare(subtotal decimal.Decimal) Comparison {
	zomato := subtotal.Mul(zomatoMarkup)
	swiggy := subtotal.Mul(swiggyMarkup)
	return Comparison{
		Ours:       subtotal.Round(0),
		Zomato:     zomato.Round(0),
		Swiggy:     swiggy.Round(0),
		SaveZomato: zomato.Sub(subtotal).Round(0),
		SaveSwiggy: swiggy.Sub(subtotal).Round(0),
	}
}
