package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a catalog handler; authMw protects mutating routes.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

type nameRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Get("/{id}", h.getCategory)
		r.Get("/{id}/subcategories", h.listSubcategories)
		r.Group(func(r chi.Router) {
			r.Use(h.authMw)
			r.Post("/", h.createCategory)
			r.Delete("/{id}", h.deleteCategory)
			r.Post("/{id}/subcategories", h.createSubcategory)
		})
	})
	router.Route("/api/v1/subcategories", func(r chi.Router) {
		r.Get("/", h.listAllSubcategories)
		r.Group(func(r chi.Router) {
			r.Use(h.authMw)
			r.Delete("/{id}", h.deleteSubcategory)
		})
	})
	router.Route("/api/v1/locations", func(r chi.Router) {
		r.Get("/", h.listLocations)
		r.Group(func(r chi.Router) {
			r.Use(h.authMw)
			r.Post("/", h.createLocation)
			r.Delete("/{id}", h.deleteLocation)
		})
	})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not list categories"})
		return
	}
	respond(w, http.StatusOK, cats)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "category deleted"})
}

func (h *Handler) createSubcategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	sub, err := h.service.CreateSubcategory(r.Context(), req.Name, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sub)
}

func (h *Handler) listSubcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubcategories(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, subs)
}

func (h *Handler) listAllSubcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubcategories(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, subs)
}

func (h *Handler) deleteSubcategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSubcategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "subcategory deleted"})
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	l, err := h.service.CreateLocation(r.Context(), req.Name)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, l)
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.service.ListLocations(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not list locations"})
		return
	}
	respond(w, http.StatusOK, locs)
}

func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "location deleted"})
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid"):
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
