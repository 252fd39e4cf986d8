package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

func TestCreateInputValidate(t *testing.T) {
	valid := CreateInput{Date: "2025-06-10", Time: "19:30", NumberOfGuests: 4}

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string // empty = valid
	}{
		{"ok", func(in *CreateInput) {}, ""},
		{"one guest", func(in *CreateInput) { in.NumberOfGuests = 1 }, ""},
		{"twenty guests", func(in *CreateInput) { in.NumberOfGuests = 20 }, ""},
		{"zero guests", func(in *CreateInput) { in.NumberOfGuests = 0 }, "number_of_guests"},
		{"too many guests", func(in *CreateInput) { in.NumberOfGuests = 25 }, "number_of_guests"},
		{"bad date", func(in *CreateInput) { in.Date = "10/06/2025" }, "date"},
		{"bad time", func(in *CreateInput) { in.Time = "7pm" }, "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *orders.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

type stubStore struct {
	created []CreateInput
	updates []struct {
		id, owner string
		status    Status
		any       bool
	}
}

func (s *stubStore) Create(ctx context.Context, userID string, in CreateInput) (*Reservation, error) {
	s.created = append(s.created, in)
	return &Reservation{ID: "r1", UserID: userID, Status: StatusPending}, nil
}

func (s *stubStore) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	return nil, nil
}

func (s *stubStore) ListAll(ctx context.Context) ([]Reservation, error) { return nil, nil }

func (s *stubStore) UpdateStatus(ctx context.Context, id, ownerID string, status Status) error {
	s.updates = append(s.updates, struct {
		id, owner string
		status    Status
		any       bool
	}{id, ownerID, status, false})
	return nil
}

func (s *stubStore) UpdateStatusAny(ctx context.Context, id string, status Status) error {
	s.updates = append(s.updates, struct {
		id, owner string
		status    Status
		any       bool
	}{id, "", status, true})
	return nil
}

func TestCreateRejectsOversizedParty(t *testing.T) {
	st := &stubStore{}
	svc := &Service{Store: st}
	_, err := svc.Create(context.Background(), "u1", CreateInput{
		Date: "2025-06-10", Time: "19:30", NumberOfGuests: 25,
	})
	if !orders.IsValidation(err) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if len(st.created) != 0 {
		t.Error("reservation was created despite invalid party size")
	}
}

func TestCreateRequiresIdentity(t *testing.T) {
	svc := &Service{Store: &stubStore{}}
	_, err := svc.Create(context.Background(), "", CreateInput{
		Date: "2025-06-10", Time: "19:30", NumberOfGuests: 2,
	})
	if !errors.Is(err, orders.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestUpdateStatusRules(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
		status  Status
		wantAny bool
		wantErr bool
	}{
		{"customer cancel", false, StatusCancelled, false, false},
		{"customer confirm", false, StatusConfirmed, false, true},
		{"admin confirm", true, StatusConfirmed, true, false},
		{"admin cancel", true, StatusCancelled, true, false},
		{"bad status", true, Status("NOPE"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &stubStore{}
			svc := &Service{Store: st}
			err := svc.UpdateStatus(context.Background(), "u1", tt.isAdmin, "r1", tt.status)
			if tt.wantErr {
				if !orders.IsValidation(err) {
					t.Fatalf("err = %v, want validation failure", err)
				}
				if len(st.updates) != 0 {
					t.Error("store written despite rejection")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(st.updates) != 1 || st.updates[0].any != tt.wantAny {
				t.Errorf("updates = %+v", st.updates)
			}
		})
	}
}
