package customers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Facts are the derived per-customer aggregates. Everything defaults to
// zero/nil; a customer with no rows anywhere is a perfectly valid customer.
type Facts struct {
	TotalSpent           decimal.Decimal
	TotalOrders          int64
	UpcomingReservations int64
	LastOrderDate        *time.Time
	LastReservationDate  *time.Time
}

type Repo struct{ DB *pgxpool.Pool }

// Load gathers all aggregates in four grouped queries instead of fanning out
// per customer; absent rows stay at their zero values.
func (r *Repo) Load(ctx context.Context) (map[string]Facts, error) {
	facts := map[string]Facts{}

	rows, err := r.DB.Query(ctx, `
		SELECT user_id, COALESCE(SUM(total), 0)::text, COUNT(*)
		FROM orders
		WHERE status != 'CANCELLED'
		GROUP BY user_id
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id, spentRaw string
			count        int64
		)
		if err := rows.Scan(&id, &spentRaw, &count); err != nil {
			rows.Close()
			return nil, err
		}
		spent, err := decimal.NewFromString(spentRaw)
		if err != nil {
			rows.Close()
			return nil, err
		}
		f := facts[id]
		f.TotalSpent = spent
		f.TotalOrders = count
		facts[id] = f
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT user_id, COUNT(*)
		FROM reservations
		WHERE status = 'CONFIRMED'
		  AND (date || ' ' || time)::timestamp > now()
		GROUP BY user_id
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id    string
			count int64
		)
		if err := rows.Scan(&id, &count); err != nil {
			rows.Close()
			return nil, err
		}
		f := facts[id]
		f.UpcomingReservations = count
		facts[id] = f
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `SELECT user_id, MAX(created_at) FROM orders GROUP BY user_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id   string
			last time.Time
		)
		if err := rows.Scan(&id, &last); err != nil {
			rows.Close()
			return nil, err
		}
		f := facts[id]
		f.LastOrderDate = &last
		facts[id] = f
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `SELECT user_id, MAX(created_at) FROM reservations GROUP BY user_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id   string
			last time.Time
		)
		if err := rows.Scan(&id, &last); err != nil {
			rows.Close()
			return nil, err
		}
		f := facts[id]
		f.LastReservationDate = &last
		facts[id] = f
	}
	rows.Close()
	return facts, rows.Err()
}
