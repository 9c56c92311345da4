// Package cart keeps the session's ordered line items in the key-value store
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
)

// Store is the cart of one session. Every mutation reads the whole blob,
// changes it and writes it back while holding lock.
type Store struct {
	kv     kvstore.Store
	lock   sync.Locker
	logger *logger.Logger
}

// New returns a cart over kv. lock may be shared with other stores of the same
// session; nil gets a private mutex.
func New(kv kvstore.Store, lock sync.Locker, log *logger.Logger) *Store {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Store{kv: kv, lock: lock, logger: log}
}

// ForSession builds a cart on an opened session
func ForSession(s *kvstore.Session, log *logger.Logger) *Store {
	return New(s.Store, s.Lock, log)
}

// Items returns a snapshot in insertion order
func (s *Store) Items(ctx context.Context) ([]models.LineItem, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.load(ctx)
}

// Count is the sum of quantities
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.EffectiveQuantity()
	}
	return n, nil
}

// Add puts one unit of p in the cart, bumping an existing line with the same id
func (s *Store) Add(ctx context.Context, p models.Product) ([]models.LineItem, error) {
	return s.mutate(ctx, "cart_add", func(items []models.LineItem) []models.LineItem {
		for i := range items {
			if items[i].ID == p.ID {
				items[i].Quantity = items[i].EffectiveQuantity() + 1
				return items
			}
		}
		return append(items, models.LineItem{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  1,
			Image:     p.Image,
		})
	})
}

// ChangeQuantity adds delta to the line's quantity without going below 1.
// Unknown ids are a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int) ([]models.LineItem, error) {
	return s.mutate(ctx, "cart_change_quantity", func(items []models.LineItem) []models.LineItem {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity = max(1, items[i].EffectiveQuantity()+delta)
			}
		}
		return items
	})
}

// Remove drops the line with id
func (s *Store) Remove(ctx context.Context, id string) ([]models.LineItem, error) {
	return s.mutate(ctx, "cart_remove", func(items []models.LineItem) []models.LineItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept
	})
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.kv.Delete(ctx, kvstore.KeyCart); err != nil {
		return models.NewRemoteError("clear cart", err)
	}
	return nil
}

// Consume takes ordered out of the cart. Lines added or bumped after ordered
// was read stay behind with the remaining quantity; an emptied cart is deleted.
func (s *Store) Consume(ctx context.Context, ordered []models.LineItem) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	taken := make(map[string]int, len(ordered))
	for _, it := range ordered {
		taken[it.ID] += it.EffectiveQuantity()
	}
	kept := items[:0]
	for _, it := range items {
		left := it.EffectiveQuantity() - taken[it.ID]
		delete(taken, it.ID)
		if left > 0 {
			it.Quantity = left
			kept = append(kept, it)
		}
	}

	if len(kept) == 0 {
		if err := s.kv.Delete(ctx, kvstore.KeyCart); err != nil {
			return models.NewRemoteError("clear cart", err)
		}
		return nil
	}

	blob, err := Encode(kept)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kvstore.KeyCart, blob); err != nil {
		return models.NewRemoteError("save cart", err)
	}
	s.logger.Debug("cart_consume", "Cart kept lines added during checkout", "", map[string]interface{}{
		"lines": len(kept),
	})
	return nil
}

func (s *Store) mutate(ctx context.Context, action string, fn func([]models.LineItem) []models.LineItem) ([]models.LineItem, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	items = fn(items)

	blob, err := Encode(items)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, kvstore.KeyCart, blob); err != nil {
		s.logger.Error(action, "Failed to persist cart", "", err, nil)
		return nil, models.NewRemoteError("save cart", err)
	}

	s.logger.Debug(action, "Cart updated", "", map[string]interface{}{
		"lines": len(items),
	})
	return items, nil
}

func (s *Store) load(ctx context.Context) ([]models.LineItem, error) {
	blob, ok, err := s.kv.Get(ctx, kvstore.KeyCart)
	if err != nil {
		return nil, models.NewRemoteError("load cart", err)
	}
	if !ok {
		return []models.LineItem{}, nil
	}

	items, err := Decode(blob)
	if err != nil {
		s.logger.Warn("cart_parse_failed", "Stored cart is unreadable, starting empty", "", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.LineItem{}, nil
	}
	return items, nil
}

// Encode renders items in the persisted cart format
func Encode(items []models.LineItem) (string, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses the persisted cart format. Lines without an id are dropped.
func Decode(blob string) ([]models.LineItem, error) {
	var raw []models.LineItem
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]models.LineItem, 0, len(raw))
	for _, it := range raw {
		if it.ID == "" {
			continue
		}
		it.Quantity = it.EffectiveQuantity()
		items = append(items, it)
	}
	return items, nil
}
