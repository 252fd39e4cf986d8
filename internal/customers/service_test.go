package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

type fakeDirectory struct {
	users []identity.User
	err   error
}

func (d *fakeDirectory) ListUsers(ctx context.Context) ([]identity.User, error) {
	return d.users, d.err
}

func (d *fakeDirectory) GetUser(ctx context.Context, id string) (identity.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return identity.User{}, orders.ErrNotFound
}

type fakeFacts struct{ facts map[string]Facts }

func (f *fakeFacts) Load(ctx context.Context) (map[string]Facts, error) { return f.facts, nil }

type fakeAdmin struct{ full map[string]bool }

func (f *fakeAdmin) IsFullAdmin(ctx context.Context, userID string) (bool, error) {
	return f.full[userID], nil
}

func newService(users []identity.User, facts map[string]Facts, fullAdmins ...string) *Service {
	full := map[string]bool{}
	for _, id := range fullAdmins {
		full[id] = true
	}
	return &Service{
		Directory: &fakeDirectory{users: users},
		Facts:     &fakeFacts{facts: facts},
		Admin:     &fakeAdmin{full: full},
	}
}

func TestListDefaultsForInactiveCustomer(t *testing.T) {
	svc := newService(
		[]identity.User{{ID: "u1", Email: "ana@example.com", FirstName: "Ana"}},
		map[string]Facts{},
		"staff1",
	)
	got, err := svc.List(context.Background(), "staff1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	c := got[0]
	if !c.TotalSpent.IsZero() || c.TotalOrders != 0 || c.UpcomingReservations != 0 {
		t.Errorf("aggregates not zero: %+v", c)
	}
	if c.LastOrderDate != nil || c.LastReservationDate != nil {
		t.Errorf("last dates not nil: %+v", c)
	}
}

func TestListMergesFacts(t *testing.T) {
	last := time.Date(2025, 2, 10, 18, 0, 0, 0, time.UTC)
	svc := newService(
		[]identity.User{
			{ID: "u1", Email: "ana@example.com", FirstName: "Ana", LastName: "Souza"},
			{ID: "u2", Email: "bia@example.com"},
		},
		map[string]Facts{
			"u1": {
				TotalSpent:           decimal.RequireFromString("159.70"),
				TotalOrders:          3,
				UpcomingReservations: 1,
				LastOrderDate:        &last,
			},
		},
		"staff1",
	)
	got, err := svc.List(context.Background(), "staff1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	u1 := got[0]
	if u1.FullName != "Ana Souza" || u1.TotalOrders != 3 || !u1.TotalSpent.Equal(decimal.RequireFromString("159.70")) {
		t.Errorf("u1 = %+v", u1)
	}
	if u1.LastOrderDate == nil || !u1.LastOrderDate.Equal(last) {
		t.Errorf("u1 last order = %v", u1.LastOrderDate)
	}
}

func TestListRedactsEmailForNonAdmin(t *testing.T) {
	users := []identity.User{{ID: "u1", Email: "ana@example.com"}}
	svc := newService(users, nil, "boss")

	got, err := svc.List(context.Background(), "staff1") // not a full admin
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Email != RedactedEmail {
		t.Errorf("email = %q, want redacted", got[0].Email)
	}

	got, err = svc.List(context.Background(), "boss")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Email != "ana@example.com" {
		t.Errorf("email = %q, want real address for full admin", got[0].Email)
	}
}

func TestListDirectoryFailure(t *testing.T) {
	svc := newService(nil, nil)
	svc.Directory = &fakeDirectory{err: orders.ErrExternalProvider}
	_, err := svc.List(context.Background(), "staff1")
	if !errors.Is(err, orders.ErrExternalProvider) {
		t.Fatalf("err = %v, want ErrExternalProvider", err)
	}
}

func TestListUnauthenticated(t *testing.T) {
	svc := newService(nil, nil)
	if _, err := svc.List(context.Background(), ""); !errors.Is(err, orders.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}
