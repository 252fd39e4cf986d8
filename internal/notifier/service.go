package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
	"github.com/ariefcatur/go-resto-orders/internal/redisx"
)

// Service turns order.status.changed events into customer notices. Delivery
// channel is a log line here; the dedup and decode pipeline is the part that
// matters.
type Service struct {
	Redis       *redis.Client
	ServiceName string

	// Send overrides the delivery channel in tests; nil logs.
	Send func(userID, notice string)
}

// HandleStatusChanged is mounted as a consumer handler.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventStatusChanged {
		return nil // ignore
	}

	// dedup by event_id so redelivery never re-notifies
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	var p orders.StatusChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return err
	}

	s.deliver(p.UserID, Notice(p.OrderID, p.To, p.Message))
	return nil
}

func (s *Service) deliver(userID, notice string) {
	if s.Send != nil {
		s.Send(userID, notice)
		return
	}
	log.Printf("notify %s: %s", userID, notice)
}

// Notice renders the customer-facing line for a status change.
func Notice(orderID string, to orders.Status, message string) string {
	if message == "" {
		message = orders.DefaultMessage(to)
	}
	return fmt.Sprintf("order %s: %s", orderID, message)
}
