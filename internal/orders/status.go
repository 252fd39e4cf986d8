package orders

import "time"

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPaid      Status = "PAID"
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusCreated:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {StatusPending: true, StatusCancelled: true},
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusReady: true, StatusCancelled: true},
	StatusReady:     {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transition is legal out of s.
func Terminal(s Status) bool {
	return len(validNext[s]) == 0 && validNext[s] != nil
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

var defaultMessages = map[Status]string{
	StatusCreated:   "order created",
	StatusPaid:      "payment received",
	StatusPending:   "order received, awaiting confirmation",
	StatusConfirmed: "order confirmed by the restaurant",
	StatusPreparing: "your meal is being prepared by our chefs",
	StatusReady:     "your order is ready for pickup/delivery",
	StatusDelivered: "order delivered successfully",
	StatusCancelled: "order cancelled",
}

// DefaultMessage is total over the status enum; used when the caller supplies
// no message for a transition.
func DefaultMessage(s Status) string {
	return defaultMessages[s]
}

const preparingETA = 30 * time.Minute

// etaOffsets drives the per-status field mutations applied together with a
// transition. Only PREPARING touches the estimated delivery time.
var etaOffsets = map[Status]time.Duration{
	StatusPreparing: preparingETA,
}

// DeliveryETA returns the estimated-delivery timestamp to set when an order
// enters target, or nil when target leaves the field alone.
func DeliveryETA(target Status, now time.Time) *time.Time {
	d, ok := etaOffsets[target]
	if !ok {
		return nil
	}
	t := now.Add(d)
	return &t
}
