package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-resto-orders/internal/admin"
	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

type AdminHandler struct {
	Repo *admin.Repo
	Auth identity.Authenticator
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Get("/admin/me", h.me)
	r.Post("/admin/disclaimer", h.acknowledgeDisclaimer)
}

// me lazily creates the permission row on first admin-panel access.
func (h *AdminHandler) me(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.Get(ctx, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) acknowledgeDisclaimer(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)
	if userID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.AcknowledgeDisclaimer(ctx, userID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
