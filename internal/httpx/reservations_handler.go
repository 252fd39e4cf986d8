package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
	"github.com/ariefcatur/go-resto-orders/internal/reservations"
)

type ReservationsHandler struct {
	Service   *reservations.Service
	Auth      identity.Authenticator
	Admin     AdminChecker
	Directory identity.Directory
}

func (h *ReservationsHandler) Register(r *chi.Mux) {
	r.Post("/reservations", h.create)
	r.Get("/reservations", h.listOwn)
	r.Patch("/reservations/{id}/status", h.updateStatus)
	r.Get("/dashboard/reservations", h.listAll)
}

func (h *ReservationsHandler) create(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)

	var in reservations.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Service.Create(ctx, userID, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationsHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Service.ListOwn(ctx, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []reservations.Reservation{}
	}
	writeJSON(w, http.StatusOK, out)
}

type UpdateReservationStatusReq struct {
	Status reservations.Status `json:"status"`
}

func (h *ReservationsHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	actorID := h.Auth.UserID(r)
	if actorID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}

	var req UpdateReservationStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	full, err := h.Admin.IsFullAdmin(ctx, actorID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Service.UpdateStatus(ctx, actorID, full, chi.URLParam(r, "id"), req.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// ReservationWithUser is the staff listing row, enriched from the identity
// directory.
type ReservationWithUser struct {
	reservations.Reservation
	User *identity.User `json:"user,omitempty"`
}

func (h *ReservationsHandler) listAll(w http.ResponseWriter, r *http.Request) {
	actorID := h.Auth.UserID(r)
	if actorID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	full, err := h.Admin.IsFullAdmin(ctx, actorID)
	if err != nil {
		writeErr(w, err)
		return
	}
	list, err := h.Service.ListAll(ctx, actorID, full)
	if err != nil {
		writeErr(w, err)
		return
	}

	seen := map[string]*identity.User{}
	out := make([]ReservationWithUser, 0, len(list))
	for _, res := range list {
		u, ok := seen[res.UserID]
		if !ok {
			if got, err := h.Directory.GetUser(ctx, res.UserID); err == nil {
				u = &got
			}
			seen[res.UserID] = u
		}
		out = append(out, ReservationWithUser{Reservation: res, User: u})
	}
	writeJSON(w, http.StatusOK, out)
}
