package reservations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, userID string, in CreateInput) (*Reservation, error) {
	res := &Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            in.Date,
		Time:            in.Time,
		NumberOfGuests:  in.NumberOfGuests,
		SpecialRequests: in.SpecialRequests,
		Status:          StatusPending,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO reservations(id, user_id, date, time, number_of_guests, special_requests, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, res.ID, res.UserID, res.Date, res.Time, res.NumberOfGuests, res.SpecialRequests, res.Status).
		Scan(&res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	return r.list(ctx, `
		SELECT id, user_id, date, time, number_of_guests, special_requests, status, created_at
		FROM reservations WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
}

// ListAll is the staff view, newest reservation date first.
func (r *Repo) ListAll(ctx context.Context) ([]Reservation, error) {
	return r.list(ctx, `
		SELECT id, user_id, date, time, number_of_guests, special_requests, status, created_at
		FROM reservations
		ORDER BY date DESC, time DESC
	`)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Reservation, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.Date, &res.Time, &res.NumberOfGuests,
			&res.SpecialRequests, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpdateStatus scoped to an owner; zero rows means the reservation does not
// exist or belongs to someone else.
func (r *Repo) UpdateStatus(ctx context.Context, id, ownerID string, status Status) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE reservations SET status=$3 WHERE id=$1 AND user_id=$2
	`, id, ownerID, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return orders.ErrNotFound
	}
	return nil
}

// UpdateStatusAny is the staff path, no ownership predicate.
func (r *Repo) UpdateStatusAny(ctx context.Context, id string, status Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE reservations SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return orders.ErrNotFound
	}
	return nil
}
