package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-resto-orders/internal/identity"
	"github.com/ariefcatur/go-resto-orders/internal/menu"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

type MenuHandler struct {
	Repo  *menu.Repo
	Auth  identity.Authenticator
	Admin AdminChecker
}

func (h *MenuHandler) Register(r *chi.Mux) {
	r.Get("/categories", h.listCategories)
	r.Get("/menu/{slug}", h.listByCategory)

	r.Post("/categories", h.createCategory)
	r.Delete("/categories/{id}", h.deleteCategory)
	r.Get("/dashboard/menu", h.listItems)
	r.Post("/menu/items", h.createItem)
	r.Patch("/menu/items/{id}", h.updateItem)
	r.Delete("/menu/items/{id}", h.deleteItem)
}

// requireAdmin resolves the actor and checks the full-admin flag; it writes
// the response itself when the caller may not proceed.
func (h *MenuHandler) requireAdmin(w http.ResponseWriter, r *http.Request, ctx context.Context) bool {
	actorID := h.Auth.UserID(r)
	if actorID == "" {
		writeErr(w, orders.ErrUnauthenticated)
		return false
	}
	full, err := h.Admin.IsFullAdmin(ctx, actorID)
	if err != nil {
		writeErr(w, err)
		return false
	}
	if !full {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return false
	}
	return true
}

func (h *MenuHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListCategories(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []menu.Category{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MenuHandler) listByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListAvailableByCategorySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MenuHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}

	var in menu.CreateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c, err := h.Repo.CreateCategory(ctx, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *MenuHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}
	if err := h.Repo.DeleteCategory(ctx, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}

	items, next, err := h.Repo.ListItems(ctx, r.URL.Query().Get("cursor"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "next_cursor": next})
}

func (h *MenuHandler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}

	var in menu.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	it, err := h.Repo.CreateItem(ctx, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *MenuHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}

	var in menu.UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := h.Repo.UpdateItem(ctx, chi.URLParam(r, "id"), in); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.requireAdmin(w, r, ctx) {
		return
	}
	if err := h.Repo.DeleteItem(ctx, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
