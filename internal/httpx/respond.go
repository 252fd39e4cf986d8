package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the failure taxonomy onto HTTP codes. Storage failures stay
// generic; validation failures carry their field.
func writeErr(w http.ResponseWriter, err error) {
	var ve *orders.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"field":  ve.Field,
			"detail": ve.Reason,
		})
	case errors.Is(err, orders.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	case errors.Is(err, orders.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, orders.ErrExternalProvider):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream provider error"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
