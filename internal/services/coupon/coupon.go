// Package coupon resolves promo codes against the bundled catalog and keeps
// the one applied coupon of a session
package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/validation"
)

var (
	ErrInvalidCoupon = errors.New("invalid coupon")
	ErrExpired       = errors.New("coupon expired")
)

// DefaultCatalog is the bundled coupon list
func DefaultCatalog() []models.Coupon {
	return []models.Coupon{
		{ID: "1", Code: "WELCOME10", DiscountPercent: decimal.NewFromInt(10), ExpiryDate: "2026-12-31", IsActive: true, Description: "10% off on your order"},
		{ID: "2", Code: "SAVE20", DiscountPercent: decimal.NewFromInt(20), ExpiryDate: "2026-12-31", IsActive: true, Description: "20% off on orders above $50"},
		{ID: "3", Code: "FIRST50", DiscountPercent: decimal.NewFromInt(50), ExpiryDate: "2026-12-31", IsActive: true, Description: "50% off on first order"},
	}
}

// Normalize trims and upper-cases a code as typed by the user
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve finds the active catalog entry for code at now
func Resolve(code string, catalog []models.Coupon, now time.Time) (models.Coupon, error) {
	code = Normalize(code)
	if code == "" {
		return models.Coupon{}, validation.ValidationError{Field: "code", Message: "Enter coupon code"}
	}

	for _, c := range catalog {
		if c.Code != code || !c.IsActive {
			continue
		}
		if expired(c.ExpiryDate, now) {
			return models.Coupon{}, ErrExpired
		}
		return c, nil
	}
	return models.Coupon{}, ErrInvalidCoupon
}

// expired reports whether the expiry date lies in the past. A bare date is
// valid through the end of that day in now's location. Unparseable dates do
// not expire.
func expired(date string, now time.Time) bool {
	date = strings.TrimSpace(date)
	if date == "" {
		return false
	}

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return now.After(t)
	}
	if d, err := time.ParseInLocation(time.DateOnly, date, now.Location()); err == nil {
		return !now.Before(d.AddDate(0, 0, 1))
	}
	return false
}

// Applier persists the applied coupon of one session
type Applier struct {
	kv      kvstore.Store
	catalog []models.Coupon
	now     func() time.Time
	logger  *logger.Logger
}

func NewApplier(kv kvstore.Store, catalog []models.Coupon, log *logger.Logger) *Applier {
	return &Applier{kv: kv, catalog: catalog, now: time.Now, logger: log}
}

// Apply resolves code and, on success, replaces the stored coupon. On failure
// the previously applied coupon stays.
func (a *Applier) Apply(ctx context.Context, code string) (models.Coupon, error) {
	c, err := Resolve(code, a.catalog, a.now())
	if err != nil {
		return models.Coupon{}, err
	}

	blob, err := json.Marshal(c)
	if err != nil {
		return models.Coupon{}, err
	}
	if err := a.kv.Set(ctx, kvstore.KeyAppliedCoupon, string(blob)); err != nil {
		return models.Coupon{}, models.NewRemoteError("save coupon", err)
	}

	a.logger.Info("coupon_applied", "Coupon applied", "", map[string]interface{}{
		"code":    c.Code,
		"percent": c.DiscountPercent.String(),
	})
	return c, nil
}

// Current returns the applied coupon, or nil when none is stored or the blob
// is unreadable
func (a *Applier) Current(ctx context.Context) (*models.Coupon, error) {
	blob, ok, err := a.kv.Get(ctx, kvstore.KeyAppliedCoupon)
	if err != nil {
		return nil, models.NewRemoteError("load coupon", err)
	}
	if !ok || blob == "" || blob == "null" {
		return nil, nil
	}

	var c models.Coupon
	if err := json.Unmarshal([]byte(blob), &c); err != nil {
		a.logger.Warn("coupon_parse_failed", "Stored coupon is unreadable, ignoring it", "", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}
	return &c, nil
}

// Clear removes the applied coupon
func (a *Applier) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, kvstore.KeyAppliedCoupon); err != nil {
		return models.NewRemoteError("clear coupon", err)
	}
	return nil
}
