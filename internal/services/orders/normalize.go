package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

// Normalize turns fetched rows into records with typed items, a single order
// type and branch, and the derived timestamp. It never fails; unreadable items
// become an empty list.
func Normalize(raw []models.RawOrder) []models.OrderRecord {
	out := make([]models.OrderRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeOne(r))
	}
	return out
}

func normalizeOne(r models.RawOrder) models.OrderRecord {
	rec := models.OrderRecord{
		ID:              r.ID,
		UserID:          r.UserID,
		Items:           coerceItems(r.Items),
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		OrderType:       firstNonEmpty(r.OrderType, r.OrderTypeAlt, r.Type),
		BranchName:      firstNonEmpty(r.BranchName, r.BranchNameAlt, r.Branch),
		TimeSlot:        r.TimeSlot,
		DeliveryAddress: r.DeliveryAddress,
		PaymentMethod:   r.PaymentMethod,
		ScheduledAt:     r.ScheduledAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Timestamp:       firstNonEmpty(r.ScheduledAt, r.UpdatedAt, r.CreatedAt),
	}
	if r.Guests != nil {
		rec.Guests = *r.Guests
	}
	return rec
}

// storedItem is a line item as older writers stored it: numeric ids and
// fractional quantities both occur
type storedItem struct {
	ID       interface{}     `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity float64         `json:"quantity"`
	Image    string          `json:"image"`
}

func (s storedItem) lineItem() models.LineItem {
	li := models.LineItem{
		Name:      s.Name,
		UnitPrice: s.Price,
		Quantity:  int(math.Round(s.Quantity)),
		Image:     s.Image,
	}
	li.Quantity = li.EffectiveQuantity()
	switch id := s.ID.(type) {
	case nil:
	case string:
		li.ID = id
	case float64:
		li.ID = decimal.NewFromFloat(id).String()
	default:
		li.ID = fmt.Sprint(id)
	}
	return li
}

func coerceItems(raw json.RawMessage) []models.LineItem {
	items, err := decodeItems(raw, 0)
	if err != nil {
		return []models.LineItem{}
	}
	return items
}

func decodeItems(raw json.RawMessage, depth int) ([]models.LineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.LineItem{}, nil
	}

	switch raw[0] {
	case '[':
		var list []storedItem
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		items := make([]models.LineItem, 0, len(list))
		for _, s := range list {
			items = append(items, s.lineItem())
		}
		return items, nil
	case '{':
		var one storedItem
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, err
		}
		return []models.LineItem{one.lineItem()}, nil
	case '"':
		// JSON text stored in a text column; unwrap once
		if depth > 0 {
			return nil, fmt.Errorf("items nested too deep")
		}
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		if strings.TrimSpace(inner) == "" {
			return []models.LineItem{}, nil
		}
		return decodeItems(json.RawMessage(inner), depth+1)
	default:
		return nil, fmt.Errorf("unexpected items payload")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
