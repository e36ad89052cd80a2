package product

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
)

// Handler exposes product HTTP endpoints.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
}

// NewHandler creates a product handler; authMw protects mutating routes.
func NewHandler(service Service, authMw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMw: authMw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/{id}", h.getProduct)
		r.Get("/store/{storeId}", h.listByStore)
		r.Get("/category/{categoryId}", h.listByCategory)
		r.Get("/search", h.search)

		r.Group(func(r chi.Router) {
			r.Use(h.authMw)
			r.Post("/", h.createProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
			r.Post("/{id}/comments", h.addComment)
		})
	})
}

// createProduct accepts a multipart body: a "payload" JSON field plus any
// number of "images" and "videos" files.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	var req CreateProductRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}

	var cleanups []func()
	defer func() {
		for _, c := range cleanups {
			c()
		}
	}()

	spool := func(field string) ([]string, error) {
		var paths []string
		if r.MultipartForm == nil {
			return nil, nil
		}
		for _, fh := range r.MultipartForm.File[field] {
			file, err := fh.Open()
			if err != nil {
				return nil, err
			}
			path, cleanup, err := storage.SaveTemp(file, field)
			file.Close()
			if err != nil {
				return nil, err
			}
			cleanups = append(cleanups, cleanup)
			paths = append(paths, path)
		}
		return paths, nil
	}

	imagePaths, err := spool("images")
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
		return
	}
	videoPaths, err := spool("videos")
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
		return
	}

	p, err := h.service.CreateProduct(r.Context(), auth.UserID(r.Context()), req, imagePaths, videoPaths)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listByStore(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByStore(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), auth.UserID(r.Context()), req.Comment); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]string{"status": "comment added"})
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not have"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") || strings.Contains(msg, "cannot be") ||
		strings.Contains(msg, "either"):
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
