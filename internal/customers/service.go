package customers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

// RedactedEmail replaces the contact address for callers without full-admin
// privilege. Display-layer policy only; stored identity data is untouched.
const RedactedEmail = "***@***"

type Customer struct {
	ID                   string          `json:"id"`
	Email                string          `json:"email"`
	FullName             string          `json:"full_name,omitempty"`
	TotalSpent           decimal.Decimal `json:"total_spent"`
	TotalOrders          int64           `json:"total_orders"`
	UpcomingReservations int64           `json:"upcoming_reservations"`
	LastOrderDate        *time.Time      `json:"last_order_date,omitempty"`
	LastReservationDate  *time.Time      `json:"last_reservation_date,omitempty"`
}

type FactsStore interface {
	Load(ctx context.Context) (map[string]Facts, error)
}

type PrivilegeChecker interface {
	IsFullAdmin(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	Directory identity.Directory
	Facts     FactsStore
	Admin     PrivilegeChecker
}

// List produces one row per known identity. Missing aggregates default to
// zero/nil; only a directory failure aborts the whole listing.
func (s *Service) List(ctx context.Context, actorID string) ([]Customer, error) {
	if actorID == "" {
		return nil, orders.ErrUnauthenticated
	}
	fullAdmin, err := s.Admin.IsFullAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	users, err := s.Directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	facts, err := s.Facts.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Customer, 0, len(users))
	for _, u := range users {
		f := facts[u.ID] // zero value when the customer has no activity
		email := u.Email
		if !fullAdmin {
			email = RedactedEmail
		}
		out = append(out, Customer{
			ID:                   u.ID,
			Email:                email,
			FullName:             u.FullName(),
			TotalSpent:           f.TotalSpent,
			TotalOrders:          f.TotalOrders,
			UpcomingReservations: f.UpcomingReservations,
			LastOrderDate:        f.LastOrderDate,
			LastReservationDate:  f.LastReservationDate,
		})
	}
	return out, nil
}
