package message

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
)

// Handler exposes messaging HTTP endpoints. The sender is always the
// authenticated user.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a message handler.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/messages", func(r chi.Router) {
		r.Use(h.authMw)
		r.Post("/", h.send)
		r.Get("/", h.inbox)
		r.Get("/with/{userId}", h.conversation)
	})
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	m, err := h.service.Send(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, m)
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.ListConversation(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "userId"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, msgs)
}

func (h *Handler) inbox(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.ListInbox(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, msgs)
}

func statusFor(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "invalid") || strings.Contains(msg, "required") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
