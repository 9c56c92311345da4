// Package orders filters, sorts and labels a user's order history
package orders

import (
	"slices"
	"sort"
	"strings"
	"time"

	"golden-fork/internal/models"
)

const day = 24 * time.Hour

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp reads the timestamp formats the order store has produced.
// Zone-less values are taken in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Query applies criteria to records and returns the matches newest first.
// Records with equal timestamps keep their fetch order.
func Query(records []models.OrderRecord, criteria models.FilterCriteria, now time.Time) []models.OrderRecord {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	statuses := lowerSet(criteria.Statuses)
	types := lowerSet(criteria.Types)

	matched := make([]models.OrderRecord, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, search) ||
			!matchesStatus(r, statuses) ||
			!matchesType(r, types) ||
			!matchesDate(r, criteria.DateRange, now) {
			continue
		}
		matched = append(matched, r)
	}

	type keyed struct {
		rec models.OrderRecord
		at  time.Time
	}
	rows := make([]keyed, len(matched))
	for i, r := range matched {
		t, _ := ParseTimestamp(r.Timestamp, now.Location())
		rows[i] = keyed{rec: r, at: t}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].at.After(rows[b].at)
	})

	sorted := make([]models.OrderRecord, len(rows))
	for i, row := range rows {
		sorted[i] = row.rec
	}
	return sorted
}

func matchesSearch(r models.OrderRecord, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.ID), q) {
		return true
	}
	for _, it := range r.Items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			return true
		}
	}
	return false
}

func matchesStatus(r models.OrderRecord, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	return slices.Contains(statuses, strings.ToLower(r.Status))
}

func matchesType(r models.OrderRecord, types []string) bool {
	if len(types) == 0 {
		return true
	}
	t := strings.ToLower(r.OrderType)
	if slices.Contains(types, t) {
		return true
	}
	return t == models.TypeReservation && slices.Contains(types, "dine-in")
}

func matchesDate(r models.OrderRecord, rng models.DateRange, now time.Time) bool {
	if rng == "" || rng == models.RangeAll {
		return true
	}
	ts, ok := ParseTimestamp(r.Timestamp, now.Location())
	if !ok {
		return false
	}

	switch rng {
	case models.RangeToday:
		ts = ts.In(now.Location())
		return ts.Year() == now.Year() && ts.YearDay() == now.YearDay()
	case models.RangeWeek:
		return !ts.Before(now.Add(-7 * day))
	case models.RangeMonth:
		return !ts.Before(now.Add(-30 * day))
	default:
		return true
	}
}

func lowerSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
