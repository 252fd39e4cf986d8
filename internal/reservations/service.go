package reservations

import (
	"context"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

// Store is the slice of the repo the service needs; kept narrow so tests can
// stub it.
type Store interface {
	Create(ctx context.Context, userID string, in CreateInput) (*Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id, ownerID string, status Status) error
	UpdateStatusAny(ctx context.Context, id string, status Status) error
}

type Service struct{ Store Store }

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Reservation, error) {
	if userID == "" {
		return nil, orders.ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Store.Create(ctx, userID, in)
}

func (s *Service) ListOwn(ctx context.Context, userID string) ([]Reservation, error) {
	if userID == "" {
		return nil, orders.ErrUnauthenticated
	}
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, actorID string, isAdmin bool) ([]Reservation, error) {
	if actorID == "" {
		return nil, orders.ErrUnauthenticated
	}
	if !isAdmin {
		return nil, orders.ErrNotFound
	}
	return s.Store.ListAll(ctx)
}

// UpdateStatus: a customer may only cancel their own reservation; full admins
// may set any status on any reservation.
func (s *Service) UpdateStatus(ctx context.Context, actorID string, isAdmin bool, id string, status Status) error {
	if actorID == "" {
		return orders.ErrUnauthenticated
	}
	if !ValidStatus(status) {
		return &orders.ValidationError{Field: "status", Reason: "must be PENDING, CONFIRMED or CANCELLED"}
	}
	if isAdmin {
		return s.Store.UpdateStatusAny(ctx, id, status)
	}
	if status != StatusCancelled {
		return &orders.ValidationError{Field: "status", Reason: "customers may only cancel"}
	}
	return s.Store.UpdateStatus(ctx, id, actorID, status)
}
