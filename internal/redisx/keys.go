package redisx

import "time"

const (
	// Public tracking view per order: order_tracking:{order_id} -> rendered JSON
	KeyOrderTracking = "order_tracking:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLTrackingCache = 5 * time.Minute
	TTLDedup         = 48 * time.Hour
)
