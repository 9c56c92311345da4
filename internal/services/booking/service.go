package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/validation"
)

// Service keeps the session's booking and pre-order between the booking
// screen and checkout
type Service struct {
	kv     kvstore.Store
	loc    *time.Location
	logger *logger.Logger
}

func NewService(kv kvstore.Store, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{kv: kv, loc: loc, logger: log}
}

// Save validates b, stores it with the pre-ordered dishes and returns the
// booked time
func (s *Service) Save(ctx context.Context, b models.Booking, preOrder []models.LineItem) (time.Time, error) {
	if err := validation.ValidateBooking(&b); err != nil {
		return time.Time{}, err
	}
	at, err := ScheduledAt(b.Date, b.TimeSlot, s.loc)
	if err != nil {
		return time.Time{}, validation.ValidationError{Field: "booking", Message: "invalid date/time"}
	}

	if b.Guests == 0 {
		b.Guests = DefaultGuests
	}
	b.Guests = ClampGuests(b.Guests)
	if !b.PickupDrop {
		b.VehicleType = ""
	}
	items := NewPreOrder(preOrder).Items()

	bookingJSON, err := json.Marshal(b)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode booking: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode pre-order: %w", err)
	}

	if err := s.kv.Set(ctx, kvstore.KeyDineinBooking, string(bookingJSON)); err != nil {
		return time.Time{}, models.NewRemoteError("save booking", err)
	}
	if err := s.kv.Set(ctx, kvstore.KeyPreOrderItems, string(itemsJSON)); err != nil {
		return time.Time{}, models.NewRemoteError("save pre-order", err)
	}

	s.logger.Info("booking_saved", "Dine-in booking saved", "", map[string]interface{}{
		"date":      b.Date,
		"time_slot": b.TimeSlot,
		"guests":    b.Guests,
		"pre_order": len(items),
	})
	return at, nil
}

// Load returns the stored booking (nil when absent or unreadable) and the
// pre-ordered dishes
func (s *Service) Load(ctx context.Context) (*models.Booking, []models.LineItem, error) {
	var b *models.Booking
	raw, ok, err := s.kv.Get(ctx, kvstore.KeyDineinBooking)
	if err != nil {
		return nil, nil, models.NewRemoteError("load booking", err)
	}
	if ok {
		var parsed models.Booking
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			s.logger.Warn("booking_parse_failed", "Stored booking is unreadable, ignoring it", "", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			b = &parsed
		}
	}

	items := []models.LineItem{}
	raw, ok, err = s.kv.Get(ctx, kvstore.KeyPreOrderItems)
	if err != nil {
		return nil, nil, models.NewRemoteError("load pre-order", err)
	}
	if ok {
		var parsed []models.LineItem
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			s.logger.Warn("preorder_parse_failed", "Stored pre-order is unreadable, ignoring it", "", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			items = NewPreOrder(parsed).Items()
		}
	}

	return b, items, nil
}

// Clear drops the booking and pre-order once they have become an order
func (s *Service) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, kvstore.KeyDineinBooking); err != nil {
		return models.NewRemoteError("clear booking", err)
	}
	if err := s.kv.Delete(ctx, kvstore.KeyPreOrderItems); err != nil {
		return models.NewRemoteError("clear pre-order", err)
	}
	return nil
}
