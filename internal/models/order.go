package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderStatus is set by the order store; the core only reads it
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Order types as written by checkout and the booking flow
const (
	TypeDelivery    = "delivery"
	TypeOnline      = "online"
	TypeTakeaway    = "takeaway"
	TypeDineIn      = "dinein"
	TypeReservation = "reservation"
)

// RawOrder is an order row as fetched, before normalization. Items may arrive
// as a JSON array, a JSON-encoded string, a single object or null, and the type
// and branch columns have gone by several names.
type RawOrder struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	OrderType       string          `json:"order_type,omitempty"`
	OrderTypeAlt    string          `json:"orderType,omitempty"`
	Type            string          `json:"type,omitempty"`
	Status          string          `json:"status,omitempty"`
	BranchName      string          `json:"branch_name,omitempty"`
	BranchNameAlt   string          `json:"branchName,omitempty"`
	Branch          string          `json:"branch,omitempty"`
	Items           json.RawMessage `json:"items,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Guests          *int            `json:"guests,omitempty"`
	TimeSlot        string          `json:"time_slot,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	ScheduledAt     string          `json:"scheduled_at,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
}

// OrderRecord is a normalized order ready for filtering and display
type OrderRecord struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	Items           []LineItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	OrderType       string          `json:"order_type"`
	BranchName      string          `json:"branch_name,omitempty"`
	Guests          int             `json:"guests,omitempty"`
	TimeSlot        string          `json:"time_slot,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	ScheduledAt     string          `json:"scheduled_at,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
	// Timestamp is scheduled, else updated, else created time
	Timestamp string `json:"timestamp"`
}

// DateRange limits an order query to a recent window
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// FilterCriteria is the working state of an order list view
type FilterCriteria struct {
	Statuses  []string  `json:"status"`
	Types     []string  `json:"type"`
	DateRange DateRange `json:"dateRange"`
	Search    string    `json:"search"`
}

// StatusDisplay is the label, colour and icon derived from a raw status
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// OrderView is an order with its derived presentation fields
type OrderView struct {
	OrderRecord
	Display   StatusDisplay `json:"display"`
	TypeLabel string        `json:"type_label"`
	CanCancel bool          `json:"can_cancel"`
	CanTrack  bool          `json:"can_track"`
}

// NewOrder is the payload checkout writes to the order store
type NewOrder struct {
	ID              string
	UserID          string
	OrderType       string
	Status          OrderStatus
	BranchName      string
	Items           []LineItem
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	PaymentMethod   string
	Guests          *int
	TimeSlot        string
	ScheduledAt     *string
	Instructions    string
}
