// Package checkout turns a session's cart into a stored, published order
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/services/booking"
	"golden-fork/internal/services/cart"
	"golden-fork/internal/services/coupon"
	"golden-fork/internal/services/pricing"
	"golden-fork/internal/validation"
)

// OrderStore is the remote user and order store
type OrderStore interface {
	FindUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	InsertOrder(ctx context.Context, o *models.NewOrder) error
}

// Publisher announces placed orders
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error
}

// Options configure a Service
type Options struct {
	Coupons    []models.Coupon
	FeePolicy  pricing.FeePolicy
	BranchName string
	Location   *time.Location
}

type Service struct {
	store     OrderStore
	publisher Publisher
	opts      Options
	logger    *logger.Logger
	newID     func() string
}

// NewService wires checkout. publisher may be nil when no broker is configured.
func NewService(store OrderStore, publisher Publisher, opts Options, log *logger.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		store:     store,
		publisher: publisher,
		opts:      opts,
		logger:    log,
		newID:     uuid.NewString,
	}
}

// SessionMobile returns the mobile number the session logged in with
func SessionMobile(ctx context.Context, kv kvstore.Store) (string, error) {
	mobile, ok, err := kv.Get(ctx, kvstore.KeyUserMobile)
	if err != nil {
		return "", models.NewRemoteError("load session", err)
	}
	if !ok || strings.TrimSpace(mobile) == "" {
		return "", models.ErrNotLoggedIn
	}
	return mobile, nil
}

// PlaceOrder prices the session's cart, stores the order and clears the cart
// and applied coupon. Nothing is cleared unless the insert succeeded, and only
// the priced lines leave the cart.
func (s *Service) PlaceOrder(ctx context.Context, sess *kvstore.Session, req models.CheckoutRequest) (*models.Receipt, error) {
	requestID := logger.GenerateRequestID()

	mobile, err := SessionMobile(ctx, sess.Store)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByMobile(ctx, mobile)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.NewRemoteError("find user", err)
	}

	if req.Name == "" {
		req.Name = user.Name
	}
	if req.Phone == "" {
		req.Phone = user.Mobile
	}
	if req.Address == "" {
		req.Address = user.Address
	}
	if req.Mode == "" {
		req.Mode = models.ModeDelivery
	}
	if err := validation.ValidateCheckoutRequest(&req); err != nil {
		return nil, err
	}

	carts := cart.ForSession(sess, s.logger)
	cartItems, err := carts.Items(ctx)
	if err != nil {
		return nil, err
	}
	items := cartItems

	coupons := coupon.NewApplier(sess.Store, s.opts.Coupons, s.logger)
	applied, err := coupons.Current(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.NewOrder{
		ID:            s.newID(),
		UserID:        user.ID,
		OrderType:     orderType(req.Mode),
		Status:        models.StatusConfirmed,
		BranchName:    s.opts.BranchName,
		PaymentMethod: paymentMethod(req.PaymentMethod),
		Instructions:  req.Instructions,
	}
	if req.Mode == models.ModeDelivery {
		order.DeliveryAddress = req.Address
	}
	if at, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt)); err == nil {
		scheduled := at.UTC().Format(time.RFC3339)
		order.ScheduledAt = &scheduled
	}

	bookings := booking.NewService(sess.Store, s.opts.Location, s.logger)
	if req.Mode == models.ModeDineIn {
		b, preOrder, err := bookings.Load(ctx)
		if err != nil {
			return nil, err
		}
		items = mergeItems(items, preOrder)
		if b != nil {
			guests := booking.ClampGuests(b.Guests)
			order.Guests = &guests
			order.TimeSlot = b.TimeSlot
			if order.ScheduledAt == nil {
				if at, err := booking.ScheduledAt(b.Date, b.TimeSlot, s.opts.Location); err == nil {
					scheduled := at.UTC().Format(time.RFC3339)
					order.ScheduledAt = &scheduled
				}
			}
		}
	}

	if len(items) == 0 {
		return nil, validation.ValidationError{Field: "cart", Message: "your cart is empty"}
	}

	totals := pricing.ComputeTotals(items, applied, req.Mode, s.opts.FeePolicy).Rounded()
	order.Items = items
	order.TotalAmount = totals.Total

	if err := s.store.InsertOrder(ctx, order); err != nil {
		s.logger.Error("order_insert_failed", "Failed to store order", requestID, err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, models.NewRemoteError("insert order", err)
	}

	s.logger.Info("order_placed", fmt.Sprintf("Order %s placed", order.ID), requestID, map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    user.ID,
		"order_type": order.OrderType,
		"total":      totals.Total.StringFixed(2),
		"items":      len(items),
	})

	if err := carts.Consume(ctx, cartItems); err != nil {
		s.logger.Error("cart_clear_failed", "Order placed but cart was not cleared", requestID, err, nil)
	}
	if err := coupons.Clear(ctx); err != nil {
		s.logger.Error("coupon_clear_failed", "Order placed but coupon was not cleared", requestID, err, nil)
	}
	if req.Mode == models.ModeDineIn {
		if err := bookings.Clear(ctx); err != nil {
			s.logger.Error("booking_clear_failed", "Order placed but booking was not cleared", requestID, err, nil)
		}
	}

	s.publish(ctx, order, applied, requestID)

	return &models.Receipt{
		OrderID:       order.ID,
		Total:         totals.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        string(order.Status),
	}, nil
}

func (s *Service) publish(ctx context.Context, order *models.NewOrder, applied *models.Coupon, requestID string) {
	if s.publisher == nil {
		return
	}
	code := ""
	if applied != nil {
		code = applied.Code
	}
	if err := s.publisher.PublishOrderPlaced(ctx, models.NewOrderPlacedMessage(order, code)); err != nil {
		s.logger.Error("order_publish_failed", "Failed to publish order event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

func orderType(mode models.OrderMode) string {
	switch mode {
	case models.ModeDineIn:
		return models.TypeDineIn
	case models.ModeTakeaway:
		return models.TypeTakeaway
	default:
		return models.TypeDelivery
	}
}

func paymentMethod(m string) string {
	if m == "" {
		return models.PaymentCash
	}
	return m
}

// mergeItems adds pre-ordered dishes to the cart lines, summing quantities of
// dishes present in both
func mergeItems(cartItems, preOrder []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(cartItems)+len(preOrder))
	out = append(out, cartItems...)
	for _, p := range preOrder {
		merged := false
		for i := range out {
			if out[i].ID == p.ID {
				out[i].Quantity = out[i].EffectiveQuantity() + p.EffectiveQuantity()
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, p)
		}
	}
	return out
}
