package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type OrderType string

const (
	TypeDelivery OrderType = "DELIVERY"
	TypePickup   OrderType = "PICKUP"
)

type Order struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"user_id"`
	Status                Status          `json:"status"`
	PaymentStatus         PaymentStatus   `json:"payment_status"`
	Type                  OrderType       `json:"type"`
	Total                 decimal.Decimal `json:"total"`
	PhoneNumber           string          `json:"phone_number,omitempty"`
	PaymentIntent         *string         `json:"payment_intent,omitempty"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// OrderItem is immutable once created; unit price is copied from the menu
// item at order time so later menu edits never change past orders.
type OrderItem struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderStatusLog rows are append-only; the repo never updates or deletes them.
type OrderStatusLog struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderDetail is the tracking view: order, its items, and the audit trail
// most-recent-first.
type OrderDetail struct {
	Order
	Items      []OrderItem      `json:"items"`
	StatusLogs []OrderStatusLog `json:"status_logs"`
}

// OrderSummary is the row shape of a customer's own order listing.
type OrderSummary struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Status        Status          `json:"status"`
	Type          OrderType       `json:"type"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Total         decimal.Decimal `json:"total"`
}
