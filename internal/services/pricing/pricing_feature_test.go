package pricing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
	"golden-fork/internal/services/pricing"
)

type pricingTestContext struct {
	items  []models.LineItem
	coupon *models.Coupon
	policy pricing.FeePolicy
	result pricing.Totals
}

func (c *pricingTestContext) reset() {
	c.items = nil
	c.coupon = nil
	c.policy = pricing.FeePolicy{}
	c.result = pricing.Totals{}
}

func (c *pricingTestContext) aCartLinePricedWithQuantity(id, price string, qty int) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.items = append(c.items, models.LineItem{ID: id, Name: id, UnitPrice: p, Quantity: qty})
	return nil
}

func (c *pricingTestContext) theCouponForPercentIsApplied(code, percent string) error {
	p, err := decimal.NewFromString(percent)
	if err != nil {
		return err
	}
	c.coupon = &models.Coupon{Code: code, DiscountPercent: p, IsActive: true}
	return nil
}

func (c *pricingTestContext) theDeliveryFeeIs(fee string) error {
	f, err := decimal.NewFromString(fee)
	if err != nil {
		return err
	}
	c.policy.Fee = f
	return nil
}

func (c *pricingTestContext) deliveryIsFreeAbove(threshold string) error {
	t, err := decimal.NewFromString(threshold)
	if err != nil {
		return err
	}
	c.policy.FreeAbove = t
	return nil
}

func (c *pricingTestContext) iPriceTheCartFor(mode string) error {
	c.result = pricing.ComputeTotals(c.items, c.coupon, models.ParseOrderMode(mode), c.policy)
	return nil
}

func expectAmount(field string, got decimal.Decimal, want string) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(w) {
		return fmt.Errorf("expected %s %s, got %s", field, want, got)
	}
	return nil
}

func (c *pricingTestContext) theSubtotalIs(v string) error {
	return expectAmount("subtotal", c.result.Subtotal, v)
}

func (c *pricingTestContext) theDiscountIs(v string) error {
	return expectAmount("discount", c.result.Discount, v)
}

func (c *pricingTestContext) theDeliveryFeeChargedIs(v string) error {
	return expectAmount("delivery fee", c.result.DeliveryFee, v)
}

func (c *pricingTestContext) theTotalIs(v string) error {
	return expectAmount("total", c.result.Total, v)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a cart line "([^"]*)" priced (\d+(?:\.\d+)?) with quantity (\d+)$`, tc.aCartLinePricedWithQuantity)
	ctx.Step(`^the coupon "([^"]*)" for (\d+(?:\.\d+)?) percent is applied$`, tc.theCouponForPercentIsApplied)
	ctx.Step(`^the delivery fee is (\d+(?:\.\d+)?)$`, tc.theDeliveryFeeIs)
	ctx.Step(`^delivery is free above (\d+(?:\.\d+)?)$`, tc.deliveryIsFreeAbove)

	// When steps
	ctx.Step(`^I price the cart for "([^"]*)"$`, tc.iPriceTheCartFor)

	// Then steps
	ctx.Step(`^the subtotal is (\d+(?:\.\d+)?)$`, tc.theSubtotalIs)
	ctx.Step(`^the discount is (\d+(?:\.\d+)?)$`, tc.theDiscountIs)
	ctx.Step(`^the delivery fee charged is (\d+(?:\.\d+)?)$`, tc.theDeliveryFeeChargedIs)
	ctx.Step(`^the total is (\d+(?:\.\d+)?)$`, tc.theTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
