package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
	"github.com/ariefcatur/go-resto-orders/internal/payments"
)

type fakeStore struct {
	order   *orders.Order
	items   []orders.OrderItem
	detail  *orders.OrderDetail
	intents map[string]string
}

func (f *fakeStore) CreateOrderTx(ctx context.Context, userID string, typ orders.OrderType, phone string, items []orders.ItemInput) (*orders.Order, []orders.OrderItem, error) {
	return f.order, f.items, nil
}

func (f *fakeStore) SetPaymentIntent(ctx context.Context, orderID, sessionID string) error {
	if f.intents == nil {
		f.intents = map[string]string{}
	}
	f.intents[orderID] = sessionID
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID string) (*orders.OrderDetail, error) {
	if f.detail == nil || f.detail.ID != orderID {
		return nil, orders.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]orders.OrderSummary, error) {
	return nil, nil
}

type fakePayments struct {
	session payments.Session
}

func (f *fakePayments) CreateSession(ctx context.Context, req payments.CreateSessionRequest) (payments.Session, error) {
	return f.session, nil
}

func (f *fakePayments) RetrieveSession(ctx context.Context, id string) (payments.Session, error) {
	s := f.session
	s.ID = id
	return s, nil
}

type fakeAdmin struct{ full bool }

func (f fakeAdmin) IsFullAdmin(ctx context.Context, userID string) (bool, error) {
	return f.full, nil
}

type memCache struct{ m map[string]string }

func (c *memCache) Get(ctx context.Context, orderID string) (string, error) {
	return c.m[orderID], nil
}

func (c *memCache) Set(ctx context.Context, orderID, body string) error {
	if c.m == nil {
		c.m = map[string]string{}
	}
	c.m[orderID] = body
	return nil
}

type dropSink struct{}

func (dropSink) Publish(key, value []byte, headers ...kafkago.Header) {}

type engineStore struct {
	status orders.Status
	owner  string
}

func (s *engineStore) GetStatusOwner(ctx context.Context, orderID string) (orders.Status, string, error) {
	return s.status, s.owner, nil
}

func (s *engineStore) ApplyTransitionTx(ctx context.Context, orderID string, target orders.Status, message, actor string, eta *time.Time) (*orders.Order, error) {
	return &orders.Order{ID: orderID, UserID: s.owner, Status: target}, nil
}

func (s *engineStore) MarkPaymentPaid(ctx context.Context, sessionRef, userID string) (string, int64, error) {
	return "", 0, nil
}

func newTestHandler(store *fakeStore, admin fakeAdmin, eng *orders.Engine, pay payments.Provider) *chi.Mux {
	h := &OrdersHandler{
		Store:         store,
		Engine:        eng,
		Payments:      pay,
		Auth:          identity.HeaderAuth{},
		Admin:         admin,
		Tracking:      &memCache{},
		Events:        dropSink{},
		Service:       "test-api",
		PublicBaseURL: "http://localhost",
		Currency:      "brl",
	}
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestCheckoutUnauthenticated(t *testing.T) {
	r := newTestHandler(&fakeStore{}, fakeAdmin{}, nil, &fakePayments{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"items":[{"menu_item_id":"m1","quantity":1}]}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCheckoutCreatesOrderAndSession(t *testing.T) {
	store := &fakeStore{
		order: &orders.Order{ID: "o1", UserID: "u1", Status: orders.StatusCreated, Total: decimal.RequireFromString("25.50")},
		items: []orders.OrderItem{
			{Name: "Margherita", UnitPrice: decimal.RequireFromString("25.50"), Quantity: 1},
		},
	}
	pay := &fakePayments{session: payments.Session{ID: "cs_1", URL: "https://pay/cs_1"}}
	r := newTestHandler(store, fakeAdmin{}, nil, pay)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"items":[{"menu_item_id":"m1","quantity":1}]}`))
	req.Header.Set("X-User-Id", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var resp CheckoutResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OrderID != "o1" || resp.CheckoutURL != "https://pay/cs_1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Total != "25.5" {
		t.Fatalf("total = %q", resp.Total)
	}
	if store.intents["o1"] != "cs_1" {
		t.Fatalf("payment intent not stored: %v", store.intents)
	}
}

func TestCheckoutRejectsEmptyItems(t *testing.T) {
	r := newTestHandler(&fakeStore{}, fakeAdmin{}, nil, &fakePayments{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"items":[]}`))
	req.Header.Set("X-User-Id", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckoutSuccessRejectsUnpaidSession(t *testing.T) {
	pay := &fakePayments{session: payments.Session{Paid: false}}
	r := newTestHandler(&fakeStore{}, fakeAdmin{}, nil, pay)

	req := httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil)
	req.Header.Set("X-User-Id", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestCheckoutSuccessIdempotentReplay(t *testing.T) {
	// engineStore matches zero rows, so reconciliation is a no-op
	eng := &orders.Engine{Store: &engineStore{}, Events: dropSink{}, Service: "test-api"}
	pay := &fakePayments{session: payments.Session{Paid: true}}
	r := newTestHandler(&fakeStore{}, fakeAdmin{}, eng, pay)

	req := httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil)
	req.Header.Set("X-User-Id", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["idempotent"] != true {
		t.Fatalf("expected idempotent replay response, got %v", resp)
	}
}

func TestGetOrderHiddenFromOtherCustomers(t *testing.T) {
	store := &fakeStore{detail: &orders.OrderDetail{Order: orders.Order{ID: "o1", UserID: "owner"}}}
	r := newTestHandler(store, fakeAdmin{full: false}, nil, &fakePayments{})

	req := httptest.NewRequest(http.MethodGet, "/orders/o1", nil)
	req.Header.Set("X-User-Id", "someone-else")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateStatusRequiresFullAdmin(t *testing.T) {
	eng := &orders.Engine{Store: &engineStore{status: orders.StatusConfirmed, owner: "u1"}, Events: dropSink{}}
	r := newTestHandler(&fakeStore{}, fakeAdmin{full: false}, eng, &fakePayments{})

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", strings.NewReader(`{"status":"PREPARING"}`))
	req.Header.Set("X-User-Id", "staff")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestUpdateStatusAppliesTransition(t *testing.T) {
	eng := &orders.Engine{Store: &engineStore{status: orders.StatusConfirmed, owner: "u1"}, Events: dropSink{}}
	r := newTestHandler(&fakeStore{}, fakeAdmin{full: true}, eng, &fakePayments{})

	req := httptest.NewRequest(http.MethodPost, "/orders/o1/status", strings.NewReader(`{"status":"PREPARING"}`))
	req.Header.Set("X-User-Id", "staff")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var o orders.Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if o.Status != orders.StatusPreparing {
		t.Fatalf("status = %s, want PREPARING", o.Status)
	}
}

func TestTrackingServedFromCache(t *testing.T) {
	h := &OrdersHandler{
		Store:    &fakeStore{},
		Auth:     identity.HeaderAuth{},
		Admin:    fakeAdmin{},
		Tracking: &memCache{m: map[string]string{"o1": `{"id":"o1","status":"READY"}`}},
	}
	r := chi.NewRouter()
	h.Register(r)

	req := httptest.NewRequest(http.MethodGet, "/orders/o1/tracking", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"READY"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}
