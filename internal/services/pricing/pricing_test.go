package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"golden-fork/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id string, price string, qty int) models.LineItem {
	return models.LineItem{ID: id, Name: "item " + id, UnitPrice: dec(price), Quantity: qty}
}

var welcome10 = &models.Coupon{Code: "WELCOME10", DiscountPercent: dec("10"), IsActive: true}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
		want  string
	}{
		{"empty cart", nil, "0"},
		{"two lines", []models.LineItem{item("a", "100", 2), item("b", "50", 1)}, "250"},
		{"fractional prices", []models.LineItem{item("a", "9.99", 3)}, "29.97"},
		{"missing quantity counts as one", []models.LineItem{item("a", "89", 0)}, "89"},
		{"negative price counts as zero", []models.LineItem{item("a", "-5", 2), item("b", "10", 1)}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.items)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeTotals_WelcomeCouponDelivery(t *testing.T) {
	items := []models.LineItem{item("a", "100", 2), item("b", "50", 1)}

	got := ComputeTotals(items, welcome10, models.ModeDelivery, DefaultFeePolicy())

	assert.True(t, got.Subtotal.Equal(dec("250")))
	assert.True(t, got.Discount.Equal(dec("25")))
	assert.True(t, got.DeliveryFee.Equal(dec("2")))
	assert.True(t, got.Total.Equal(dec("227")), "total = %s", got.Total)
}

func TestDeliveryFee(t *testing.T) {
	withThreshold := FeePolicy{Fee: dec("2"), FreeAbove: dec("500")}

	tests := []struct {
		name     string
		subtotal string
		mode     models.OrderMode
		policy   FeePolicy
		want     string
	}{
		{"delivery flat fee", "250", models.ModeDelivery, DefaultFeePolicy(), "2"},
		{"delivery flat fee above any threshold when disabled", "900", models.ModeDelivery, DefaultFeePolicy(), "2"},
		{"dine-in is free", "250", models.ModeDineIn, DefaultFeePolicy(), "0"},
		{"takeaway is free", "250", models.ModeTakeaway, DefaultFeePolicy(), "0"},
		{"below threshold charged", "499.99", models.ModeDelivery, withThreshold, "2"},
		{"at threshold charged", "500", models.ModeDelivery, withThreshold, "2"},
		{"above threshold waived", "500.01", models.ModeDelivery, withThreshold, "0"},
		{"zero fee policy", "10", models.ModeDelivery, FeePolicy{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryFee(dec(tt.subtotal), tt.mode, tt.policy)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestDiscount(t *testing.T) {
	inactive := &models.Coupon{Code: "OLD", DiscountPercent: dec("30"), IsActive: false}
	full := &models.Coupon{Code: "FREE", DiscountPercent: dec("100"), IsActive: true}
	over := &models.Coupon{Code: "OVER", DiscountPercent: dec("150"), IsActive: true}
	negative := &models.Coupon{Code: "NEG", DiscountPercent: dec("-10"), IsActive: true}

	tests := []struct {
		name   string
		coupon *models.Coupon
		want   string
	}{
		{"no coupon", nil, "0"},
		{"ten percent", welcome10, "25"},
		{"inactive coupon", inactive, "0"},
		{"full discount equals subtotal", full, "250"},
		{"over a hundred percent clamps", over, "250"},
		{"negative percent ignored", negative, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(dec("250"), tt.coupon)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeTotals_NeverNegative(t *testing.T) {
	over := &models.Coupon{Code: "OVER", DiscountPercent: dec("1000"), IsActive: true}
	modes := []models.OrderMode{models.ModeDelivery, models.ModeTakeaway, models.ModeDineIn}
	carts := [][]models.LineItem{
		nil,
		{item("a", "0", 1)},
		{item("a", "0.01", 1)},
		{item("a", "100", 3), item("b", "0.5", 7)},
	}

	for _, mode := range modes {
		for _, cart := range carts {
			for _, coupon := range []*models.Coupon{nil, welcome10, over} {
				got := ComputeTotals(cart, coupon, mode, FeePolicy{Fee: dec("2"), FreeAbove: dec("1")})
				assert.False(t, got.Total.IsNegative(), "mode %s total %s", mode, got.Total)
				assert.False(t, got.Discount.GreaterThan(got.Subtotal))
			}
		}
	}
}

func TestComputeTotals_FullPrecisionUntilRounded(t *testing.T) {
	items := []models.LineItem{item("a", "33.33", 1)}
	coupon := &models.Coupon{Code: "X", DiscountPercent: dec("15"), IsActive: true}

	got := ComputeTotals(items, coupon, models.ModeTakeaway, DefaultFeePolicy())

	assert.True(t, got.Discount.Equal(dec("4.9995")), "discount kept at full precision: %s", got.Discount)
	assert.True(t, got.Total.Equal(dec("28.3305")))

	r := got.Rounded()
	assert.Equal(t, "5", r.Discount.String())
	assert.Equal(t, "28.33", r.Total.String())
}

func TestCompare(t *testing.T) {
	c := Compare(dec("250"))
	assert.Equal(t, "250", c.Ours.String())
	assert.Equal(t, "288", c.Zomato.String())
	assert.Equal(t, "295", c.Swiggy.String())
	assert.Equal(t, "38", c.SaveZomato.String())
	assert.Equal(t, "45", c.SaveSwiggy.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹227.00", Format("₹", dec("227")))
	assert.Equal(t, "₹4.99", Format("₹", dec("4.9949")))
	assert.Equal(t, "$0.00", Format("$", decimal.Zero))
	assert.Equal(t, "₹1,234.50", Format("₹", dec("1234.5")))
	assert.Equal(t, "₹-5.00", Format("₹", dec("-5")))
	assert.Equal(t, "₹12,345,678,901,234,567.89", Format("₹", dec("12345678901234567.885")))
	assert.Equal(t, "₹1234567890123456789012.00", Format("₹", dec("1234567890123456789012")))

	lines := FormatTotals("₹", Totals{Subtotal: dec("250"), DeliveryFee: dec("2"), Discount: dec("25"), Total: dec("227")})
	assert.Equal(t, "₹25.00", lines["discount"])
	assert.Equal(t, "₹227.00", lines["total"])
}
