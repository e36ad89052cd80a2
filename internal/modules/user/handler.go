package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a user handler; authMw protects the profile routes.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/api/v1/users/register", h.registerUser)
	router.Get("/api/v1/users/{id}", h.getUser)
	router.With(h.authMw).Put("/api/v1/users/me", h.updateProfile)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	u, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	respond(w, http.StatusOK, u)
}

// updateProfile accepts a multipart body: a "payload" JSON field and an
// optional "image" file for the avatar.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}

	var req UpdateProfileRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}

	avatarPath := ""
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		path, cleanup, err := storage.SaveTemp(file, "avatar")
		if err != nil {
			respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
			return
		}
		defer cleanup()
		avatarPath = path
	}

	u, err := h.service.UpdateProfile(r.Context(), auth.UserID(r.Context()), req, avatarPath)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
