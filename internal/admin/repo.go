package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Permission struct {
	UserID          string    `json:"user_id"`
	IsFullAdmin     bool      `json:"is_full_admin"`
	ReadExplanation bool      `json:"read_explanation"`
	CreatedAt       time.Time `json:"created_at"`
}

type Repo struct{ DB *pgxpool.Pool }

// Get lazily creates the permission row on first admin-panel access. New rows
// start with no privileges; the grant itself happens elsewhere.
func (r *Repo) Get(ctx context.Context, userID string) (*Permission, error) {
	p := &Permission{UserID: userID}
	err := r.DB.QueryRow(ctx, `
		SELECT is_full_admin, read_explanation, created_at
		FROM admin_permissions WHERE user_id=$1
	`, userID).Scan(&p.IsFullAdmin, &p.ReadExplanation, &p.CreatedAt)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	err = r.DB.QueryRow(ctx, `
		INSERT INTO admin_permissions(user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING is_full_admin, read_explanation, created_at
	`, userID).Scan(&p.IsFullAdmin, &p.ReadExplanation, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AcknowledgeDisclaimer marks the onboarding disclaimer as read, creating the
// row if the user never opened the panel before.
func (r *Repo) AcknowledgeDisclaimer(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO admin_permissions(user_id, read_explanation)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET read_explanation = TRUE
	`, userID)
	return err
}

func (r *Repo) IsFullAdmin(ctx context.Context, userID string) (bool, error) {
	var full bool
	err := r.DB.QueryRow(ctx, `SELECT is_full_admin FROM admin_permissions WHERE user_id=$1`, userID).Scan(&full)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return full, nil
}
