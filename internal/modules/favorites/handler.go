package favorites

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
)

// Handler exposes favorites HTTP endpoints. All routes require auth; the user
// is taken from the token, never from the path.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a favorites handler.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/favorites", func(r chi.Router) {
		r.Use(h.authMw)
		r.Get("/", h.list)
		r.Post("/{productId}", h.add)
		r.Delete("/{productId}", h.remove)
	})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if err := h.service.Add(r.Context(), userID, chi.URLParam(r, "productId")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "added to favorites"})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if err := h.service.Remove(r.Context(), userID, chi.URLParam(r, "productId")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "removed from favorites"})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func statusFor(err error) int {
	if strings.Contains(err.Error(), "invalid") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
