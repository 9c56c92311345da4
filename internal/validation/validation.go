package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golden-fork/internal/models"
)

// ValidationError is a user-visible, blocking input error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

// ValidateCheckoutRequest checks the contact details needed to place an order
func ValidateCheckoutRequest(req *models.CheckoutRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}

	if err := validatePhone(req.Phone); err != nil {
		return err
	}

	if err := validatePaymentMethod(req.PaymentMethod); err != nil {
		return err
	}

	if req.Mode == models.ModeDelivery && strings.TrimSpace(req.Address) == "" {
		return ValidationError{
			Field:   "address",
			Message: "delivery address is required for delivery orders",
		}
	}

	if req.ScheduledAt != "" {
		if _, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt)); err != nil {
			return ValidationError{
				Field:   "scheduled",
				Message: "scheduled time must look like 2025-11-19T19:30:00+05:30",
			}
		}
	}

	return nil
}

// ValidateMobile checks a session mobile number
func ValidateMobile(mobile string) error {
	digits := strings.TrimPrefix(strings.TrimSpace(mobile), "+")
	if len(digits) < 10 || len(digits) > 15 {
		return ValidationError{
			Field:   "mobile",
			Message: "please enter a valid mobile number",
		}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ValidationError{
				Field:   "mobile",
				Message: "please enter a valid mobile number",
			}
		}
	}
	return nil
}

// ValidateBooking checks that a dine-in booking has a date and a time slot
func ValidateBooking(b *models.Booking) error {
	if strings.TrimSpace(b.Date) == "" || strings.TrimSpace(b.TimeSlot) == "" {
		return ValidationError{
			Field:   "booking",
			Message: "please select date and time",
		}
	}
	if b.PickupDrop && b.VehicleType != "Bike" && b.VehicleType != "Car" {
		return ValidationError{
			Field:   "vehicleType",
			Message: "vehicle type must be Bike or Car",
		}
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{
			Field:   "name",
			Message: "please enter name and phone",
		}
	}

	if len(name) > 100 {
		return ValidationError{
			Field:   "name",
			Message: "name must be less than 100 characters",
		}
	}
	return nil
}

func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ValidationError{
			Field:   "phone",
			Message: "please enter name and phone",
		}
	}

	if !phonePattern.MatchString(phone) {
		return ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		}
	}
	return nil
}

func validatePaymentMethod(method string) error {
	switch method {
	case "", models.PaymentCash, models.PaymentUPI, models.PaymentCard:
		return nil
	default:
		return ValidationError{
			Field:   "payment_method",
			Message: "payment method must be one of: cash, upi, card",
		}
	}
}
