package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

// FindUserByMobile returns the single user registered with mobile, or
// models.ErrNotFound
func (db *DB) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	var u models.User
	err := db.QueryRow(ctx, GetUserByMobileSQL, mobile).Scan(&u.ID, &u.Name, &u.Mobile, &u.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// CreateUser registers a new user and returns it with its id
func (db *DB) CreateUser(ctx context.Context, name, mobile, address string) (*models.User, error) {
	var id string
	if err := db.QueryRow(ctx, InsertUserSQL, name, mobile, address).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &models.User{ID: id, Name: name, Mobile: mobile, Address: address}, nil
}

// InsertOrder stores a placed order
func (db *DB) InsertOrder(ctx context.Context, o *models.NewOrder) error {
	items := o.Items
	if items == nil {
		items = []models.LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	meta, err := json.Marshal(map[string]string{"instructions": o.Instructions})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	err = db.Exec(ctx, InsertOrderSQL,
		o.ID, o.UserID, o.OrderType, string(o.Status), o.BranchName, string(itemsJSON),
		o.TotalAmount.StringFixed(2), o.Guests, o.TimeSlot, o.ScheduledAt,
		o.DeliveryAddress, o.PaymentMethod, string(meta))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListOrdersByUser fetches the full order collection of a user, newest first.
// Filtering happens client-side in the orders service.
func (db *DB) ListOrdersByUser(ctx context.Context, userID string) ([]models.RawOrder, error) {
	rows, err := db.Query(ctx, ListOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.RawOrder
	for rows.Next() {
		var (
			o                    models.RawOrder
			items, total         string
			scheduled            *time.Time
			createdAt, updatedAt time.Time
		)
		err := rows.Scan(&o.ID, &o.UserID, &o.OrderType, &o.Status, &o.BranchName,
			&items, &total, &o.Guests, &o.TimeSlot, &o.DeliveryAddress, &o.PaymentMethod,
			&scheduled, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		o.Items = json.RawMessage(items)
		if amount, err := decimal.NewFromString(total); err == nil {
			o.TotalAmount = amount
		}
		if scheduled != nil {
			o.ScheduledAt = scheduled.UTC().Format(time.RFC3339)
		}
		o.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		o.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
