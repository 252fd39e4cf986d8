package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-resto-orders/internal/kafka"
)

// SystemActor stamps transitions driven by the system itself (payment
// reconciliation) rather than a staff member or customer.
const SystemActor = "system"

// TransitionStore is the slice of the repo the engine needs.
type TransitionStore interface {
	GetStatusOwner(ctx context.Context, orderID string) (Status, string, error)
	ApplyTransitionTx(ctx context.Context, orderID string, target Status, message, actor string, eta *time.Time) (*Order, error)
	MarkPaymentPaid(ctx context.Context, sessionRef, userID string) (string, int64, error)
}

// TrackingInvalidator drops the cached public tracking view of an order.
type TrackingInvalidator interface {
	InvalidateTracking(ctx context.Context, orderID string) error
}

// EventSink is satisfied by kafka.Producer.
type EventSink interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Engine is the single writer of Order.status and its audit trail.
type Engine struct {
	Store   TransitionStore
	Cache   TrackingInvalidator
	Events  EventSink
	Service string

	// Now is swappable in tests; zero value falls back to time.Now.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ApplyTransition mediates every status change: precondition checks, the
// per-status side effect, the atomic status+log write, cache invalidation and
// the status event. message falls back to the per-status default when empty.
func (e *Engine) ApplyTransition(ctx context.Context, orderID string, target Status, actor, message string) (*Order, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}
	if !ValidStatus(target) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", target)}
	}

	current, owner, err := e.Store.GetStatusOwner(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current, target) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("no transition %s -> %s", current, target)}
	}

	if message == "" {
		message = DefaultMessage(target)
	}
	eta := DeliveryETA(target, e.now())

	o, err := e.Store.ApplyTransitionTx(ctx, orderID, target, message, actor, eta)
	if err != nil {
		return nil, err
	}

	// PAID is immediately followed by a second transition that invalidates
	// again, so the intermediate refresh is skipped.
	if target != StatusPaid && e.Cache != nil {
		if err := e.Cache.InvalidateTracking(ctx, orderID); err != nil {
			log.Printf("invalidate tracking %s: %v", orderID, err)
		}
	}

	e.publishStatusChanged(orderID, owner, current, target, message, actor)
	return o, nil
}

// Reconcile marks the order matching (payment session, owner, PENDING) as paid
// and drives it into PAID. Zero matches is the expected outcome of a duplicate
// confirmation delivery and is not an error.
func (e *Engine) Reconcile(ctx context.Context, sessionRef, userID string) (*Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	orderID, matched, err := e.Store.MarkPaymentPaid(ctx, sessionRef, userID)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, nil
	}
	// Not one transaction with the payment-status flip; if the transition
	// fails the payment stays marked PAID and the status catches up on retry.
	return e.ApplyTransition(ctx, orderID, StatusPaid, SystemActor, "")
}

func (e *Engine) publishStatusChanged(orderID, owner string, from, to Status, message, actor string) {
	if e.Events == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventStatusChanged,
		EventVersion:  1,
		OccurredAt:    e.now().UTC(),
		Producer:      e.Service,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(StatusChangedPayload{
			OrderID:   orderID,
			UserID:    owner,
			From:      from,
			To:        to,
			Message:   message,
			ChangedBy: actor,
		}),
	}
	e.Events.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
