package reservations

import (
	"fmt"
	"time"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

const (
	MinGuests = 1
	MaxGuests = 20
)

type Reservation struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Time            string    `json:"time"` // HH:MM
	NumberOfGuests  int       `json:"number_of_guests"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateInput struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
}

// Validate runs at the input boundary and is never bypassed by internal
// callers.
func (in *CreateInput) Validate() error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return &orders.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return &orders.ValidationError{Field: "time", Reason: "must be HH:MM"}
	}
	if in.NumberOfGuests < MinGuests || in.NumberOfGuests > MaxGuests {
		return &orders.ValidationError{
			Field:  "number_of_guests",
			Reason: fmt.Sprintf("must be between %d and %d", MinGuests, MaxGuests),
		}
	}
	return nil
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}
