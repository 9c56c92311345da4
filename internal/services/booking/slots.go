// Package booking holds the dine-in table reservation and its pre-ordered
// dishes until checkout
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinGuests     = 1
	MaxGuests     = 20
	DefaultGuests = 2
)

var timeSlots = []string{
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM",
	"1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
	"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM",
	"8:00 PM", "8:30 PM", "9:00 PM", "9:30 PM",
}

// TimeSlots lists the bookable lunch and dinner slots
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// ClampGuests keeps the party size within what a table booking allows
func ClampGuests(n int) int {
	return min(MaxGuests, max(MinGuests, n))
}

// ScheduledAt combines a YYYY-MM-DD date and an "h:mm AM" slot into a time in loc
func ScheduledAt(date, slot string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	clock, modifier, ok := strings.Cut(strings.TrimSpace(slot), " ")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time slot %q", slot)
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time slot %q", slot)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 1 || h > 12 {
		return time.Time{}, fmt.Errorf("invalid hour in time slot %q", slot)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in time slot %q", slot)
	}

	switch strings.ToUpper(modifier) {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return time.Time{}, fmt.Errorf("invalid time slot %q", slot)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}
