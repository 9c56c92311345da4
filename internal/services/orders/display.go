package orders

import (
	"fmt"
	"strings"
	"time"

	"golden-fork/internal/models"
)

// Display maps a status to its label, colour and icon. Unknown statuses show
// as received.
func Display(status string) models.StatusDisplay {
	switch strings.ToLower(status) {
	case string(models.StatusCompleted), string(models.StatusDelivered):
		return models.StatusDisplay{Label: "Order Delivered", Color: "#16A34A", Icon: "check"}
	case string(models.StatusCancelled):
		return models.StatusDisplay{Label: "Order Cancelled", Color: "#EF4444", Icon: "x"}
	case string(models.StatusPreparing):
		return models.StatusDisplay{Label: "Order Preparing", Color: "#3B82F6", Icon: "clock"}
	case string(models.StatusConfirmed):
		return models.StatusDisplay{Label: "Order Confirmed", Color: "#7C3AED", Icon: "check"}
	default:
		return models.StatusDisplay{Label: "Order Received", Color: "#0EA5E9", Icon: "package"}
	}
}

func isFinal(status string) bool {
	switch strings.ToLower(status) {
	case string(models.StatusDelivered), string(models.StatusCompleted), string(models.StatusCancelled):
		return true
	}
	return false
}

// CanCancel reports whether the order is still open
func CanCancel(status string) bool {
	return !isFinal(status)
}

// CanTrack reports whether the order is still open
func CanTrack(status string) bool {
	return !isFinal(status)
}

// IsReservation reports whether the order is a dine-in booking
func IsReservation(orderType string) bool {
	t := strings.ToLower(orderType)
	return t == models.TypeReservation || t == models.TypeDineIn
}

func TypeLabel(orderType string) string {
	switch orderType {
	case models.TypeOnline:
		return "Online Order"
	case models.TypeTakeaway:
		return "Takeaway Order"
	case models.TypeReservation, models.TypeDineIn:
		return "Dine-In Booking"
	default:
		return "Order"
	}
}

// FormatDate renders a timestamp like "19th Nov 2025", or "N/A"
func FormatDate(s string, loc *time.Location) string {
	t, ok := ParseTimestamp(s, loc)
	if !ok {
		return "N/A"
	}
	t = t.In(loc)
	d := t.Day()
	return fmt.Sprintf("%d%s %s %d", d, ordinalSuffix(d), t.Format("Jan"), t.Year())
}

func ordinalSuffix(n int) string {
	if n > 3 && n < 21 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// View attaches the derived presentation fields
func View(r models.OrderRecord) models.OrderView {
	return models.OrderView{
		OrderRecord: r,
		Display:     Display(r.Status),
		TypeLabel:   TypeLabel(r.OrderType),
		CanCancel:   CanCancel(r.Status),
		CanTrack:    CanTrack(r.Status),
	}
}
