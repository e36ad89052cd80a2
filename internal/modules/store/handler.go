package store

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
)

// Handler exposes store HTTP endpoints.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a store handler; authMw protects mutating routes.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", h.listStores)
		r.Get("/{id}", h.getStore)
		r.Get("/owner/{userId}", h.getStoreByOwner)

		r.Group(func(r chi.Router) {
			r.Use(h.authMw)
			r.Post("/", h.createStore)
			r.Put("/{id}", h.updateStore)
			r.Delete("/{id}", h.deleteStore)
			r.Post("/{id}/payment-methods", h.addPaymentMethod)
			r.Delete("/{id}/payment-methods", h.removePaymentMethod)
		})
	})
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	var req CreateStoreRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}

	logoPath, logoCleanup, err := h.spoolFile(r, "logo")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if logoCleanup != nil {
		defer logoCleanup()
	}
	bannerPath, bannerCleanup, err := h.spoolFile(r, "banner")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if bannerCleanup != nil {
		defer bannerCleanup()
	}

	st, err := h.service.CreateStore(r.Context(), req, logoPath, bannerPath)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, st)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) getStoreByOwner(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetStoreByOwner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no store for this user"})
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not list stores"})
		return
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	var req UpdateStoreRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}

	logoPath, logoCleanup, err := h.spoolFile(r, "logo")
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
		return
	}
	if logoCleanup != nil {
		defer logoCleanup()
	}
	bannerPath, bannerCleanup, err := h.spoolFile(r, "banner")
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
		return
	}
	if bannerCleanup != nil {
		defer bannerCleanup()
	}

	st, err := h.service.UpdateStore(r.Context(), chi.URLParam(r, "id"), req, logoPath, bannerPath)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) deleteStore(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStore(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "store deleted"})
}

func (h *Handler) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	var req AddPaymentMethodRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}

	imagePath, cleanup, err := h.spoolFile(r, "image")
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	st, err := h.service.AddPaymentMethod(r.Context(), chi.URLParam(r, "id"), req, imagePath)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, st)
}

func (h *Handler) removePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req AddPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.RemovePaymentMethod(r.Context(), chi.URLParam(r, "id"), req.Name, req.AccountNumber); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "payment method removed"})
}

// spoolFile saves the named multipart file to a temp path. An absent field is
// not an error; the path comes back empty and the service decides whether the
// file was required.
func (h *Handler) spoolFile(r *http.Request, field string) (string, func(), error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	defer file.Close()
	return storage.SaveTemp(file, field)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "already"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
