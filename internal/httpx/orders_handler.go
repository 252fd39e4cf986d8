package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	kafkax "github.com/ariefcatur/go-resto-orders/internal/kafka"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
	"github.com/ariefcatur/go-resto-orders/internal/payments"
)

// OrderStore is the slice of orders.Repo the handler touches; tests stub it
// in memory.
type OrderStore interface {
	CreateOrderTx(ctx context.Context, userID string, typ orders.OrderType, phone string, items []orders.ItemInput) (*orders.Order, []orders.OrderItem, error)
	SetPaymentIntent(ctx context.Context, orderID, sessionID string) error
	GetOrder(ctx context.Context, orderID string) (*orders.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]orders.OrderSummary, error)
}

// TrackingView caches the rendered public tracking payload.
type TrackingView interface {
	Get(ctx context.Context, orderID string) (string, error)
	Set(ctx context.Context, orderID, body string) error
}

type AdminChecker interface {
	IsFullAdmin(ctx context.Context, userID string) (bool, error)
}

type OrdersHandler struct {
	Store    OrderStore
	Engine   *orders.Engine
	Payments payments.Provider
	Auth     identity.Authenticator
	Admin    AdminChecker
	Tracking TrackingView
	Events   orders.EventSink
	Service  string

	PublicBaseURL string
	Currency      string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Get("/checkout/success", h.checkoutSuccess)
	r.Get("/orders", h.listOwn)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/tracking", h.tracking)
	r.Post("/orders/{id}/status", h.updateStatus)
}

type CheckoutReq struct {
	Type        orders.OrderType   `json:"type"`
	PhoneNumber string             `json:"phone_number"`
	Items       []orders.ItemInput `json:"items"`
}

type CheckoutResp struct {
	OrderID     string `json:"order_id"`
	Total       string `json:"total"`
	CheckoutURL string `json:"checkout_url"`
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}

	var req CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req.Items) == 0 {
		writeErr(w, &orders.ValidationError{Field: "items", Reason: "at least one item required"})
		return
	}
	switch req.Type {
	case "":
		req.Type = orders.TypeDelivery
	case orders.TypeDelivery, orders.TypePickup:
	default:
		writeErr(w, &orders.ValidationError{Field: "type", Reason: "must be DELIVERY or PICKUP"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, items, err := h.Store.CreateOrderTx(ctx, userID, req.Type, req.PhoneNumber, req.Items)
	if err != nil {
		writeErr(w, err)
		return
	}

	lineItems := make([]payments.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, payments.LineItem{
			Name:            it.Name,
			UnitAmountCents: it.UnitPrice.Mul(decimal.NewFromInt(100)).IntPart(),
			Quantity:        it.Quantity,
		})
	}
	sess, err := h.Payments.CreateSession(ctx, payments.CreateSessionRequest{
		ClientReference: userID,
		Currency:        h.Currency,
		LineItems:       lineItems,
		SuccessURL:      h.PublicBaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       h.PublicBaseURL,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Store.SetPaymentIntent(ctx, o.ID, sess.ID); err != nil {
		writeErr(w, err)
		return
	}

	h.publishCreated(r, o)
	writeJSON(w, http.StatusCreated, CheckoutResp{
		OrderID:     o.ID,
		Total:       o.Total.String(),
		CheckoutURL: sess.URL,
	})
}

func (h *OrdersHandler) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeErr(w, &orders.ValidationError{Field: "session_id", Reason: "required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sess, err := h.Payments.RetrieveSession(ctx, sessionID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !sess.Paid {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "payment not completed"})
		return
	}

	o, err := h.Engine.Reconcile(ctx, sess.ID, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if o == nil {
		// duplicate confirmation delivery, nothing changed
		writeJSON(w, http.StatusOK, map[string]any{"idempotent": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *OrdersHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.ListByUser(ctx, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []orders.OrderSummary{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	d, err := h.Store.GetOrder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if d.UserID != userID {
		// staff may look at any order
		if full, _ := h.Admin.IsFullAdmin(ctx, userID); !full {
			writeErr(w, orders.ErrNotFound)
			return
		}
	}
	writeJSON(w, http.StatusOK, d)
}

// tracking is the public order-tracking view, cache first, DB on miss.
func (h *OrdersHandler) tracking(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if body, err := h.Tracking.Get(ctx, orderID); err == nil && body != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
		return
	}

	d, err := h.Store.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	view := map[string]any{
		"id":                      d.ID,
		"status":                  d.Status,
		"type":                    d.Type,
		"estimated_delivery_time": d.EstimatedDeliveryTime,
		"status_logs":             d.StatusLogs,
	}
	b, _ := json.Marshal(view)
	_ = h.Tracking.Set(ctx, orderID, string(b))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type UpdateStatusReq struct {
	Status  orders.Status `json:"status"`
	Message string        `json:"message"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	actorID := h.Auth.UserID(r)
	if actorID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	full, err := h.Admin.IsFullAdmin(ctx, actorID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !full {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	var req UpdateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	o, err := h.Engine.ApplyTransition(ctx, chi.URLParam(r, "id"), req.Status, actorID, req.Message)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) publishCreated(r *http.Request, o *orders.Order) {
	if h.Events == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderCreatedPayload{
			OrderID: o.ID,
			UserID:  o.UserID,
			Type:    o.Type,
			Total:   o.Total.String(),
		}),
	}
	h.Events.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
