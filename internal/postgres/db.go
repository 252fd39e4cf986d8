package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSizes carries the tuning knobs the API exposes through its environment.
type PoolSizes struct {
	MaxConns int32
	MinConns int32
}

func Connect(ctx context.Context, dsn string, sizes PoolSizes) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if sizes.MaxConns > 0 {
		cfg.MaxConns = sizes.MaxConns
	}
	if sizes.MinConns > 0 {
		cfg.MinConns = sizes.MinConns
	}
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
