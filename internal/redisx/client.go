package redisx

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// TrackingCache caches the public order-tracking view and drops it whenever
// the status engine commits a transition.
type TrackingCache struct{ RDB *redis.Client }

func (c *TrackingCache) Get(ctx context.Context, orderID string) (string, error) {
	return c.RDB.Get(ctx, fmt.Sprintf(KeyOrderTracking, orderID)).Result()
}

func (c *TrackingCache) Set(ctx context.Context, orderID, body string) error {
	return c.RDB.Set(ctx, fmt.Sprintf(KeyOrderTracking, orderID), body, TTLTrackingCache).Err()
}

func (c *TrackingCache) InvalidateTracking(ctx context.Context, orderID string) error {
	return c.RDB.Del(ctx, fmt.Sprintf(KeyOrderTracking, orderID)).Err()
}
