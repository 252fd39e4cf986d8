package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-resto-orders/internal/customers"
	"github.com/ariefcatur/go-resto-orders/internal/identity"
)

type CustomersHandler struct {
	Service *customers.Service
	Auth    identity.Authenticator
}

func (h *CustomersHandler) Register(r *chi.Mux) {
	r.Get("/dashboard/customers", h.list)
}

func (h *CustomersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	out, err := h.Service.List(ctx, h.Auth.UserID(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
