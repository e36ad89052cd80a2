package order

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxReceiptBytes caps the multipart create-order body, dominated by the
// payment receipt image.
const maxReceiptBytes = 40 << 20

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	authMw  func(http.Handler) http.Handler
	dev     bool
}

// NewHandler creates an order handler. dev switches unexpected errors from
// redacted messages to full detail.
func NewHandler(service Service, authMw func(http.Handler) http.Handler, dev bool) *Handler {
	return &Handler{service: service, authMw: authMw, dev: dev}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(h.authMw)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Get("/user/{userId}", h.listUserOrders)
	})
}

// createOrder accepts a multipart body: a "payload" JSON field with the order
// request, and an optional "receipt" file with the proof of payment.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptBytes)
	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respond(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large: receipt may not exceed 40MB"})
			return
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}

	var req CreateOrderRequest
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid payload field"})
		return
	}
	if req.UserID == "" {
		req.UserID = auth.UserID(r.Context())
	}

	receiptPath := ""
	if file, _, err := r.FormFile("receipt"); err == nil {
		defer file.Close()
		path, cleanup, err := storage.SaveTemp(file, "receipt")
		if err != nil {
			respond(w, http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
			return
		}
		defer cleanup()
		receiptPath = path
	}

	o, err := h.service.CreateOrder(r.Context(), req, receiptPath)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListUserOrders(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := AsValidation(err); ok {
		respond(w, ve.HTTPStatus(), map[string]string{"error": ve.Error()})
		return
	}
	if errors.Is(err, storage.ErrFileTooLarge) {
		respond(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large: receipt may not exceed 40MB"})
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	// Shape errors from checkShape are plain errors raised before any
	// transaction was opened.
	if isShapeError(err) {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	logError(r, err)
	msg := "internal server error"
	if h.dev {
		msg = err.Error()
	}
	respond(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func isShapeError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "required") || strings.Contains(msg, "at least one")
}

func logError(r *http.Request, err error) {
	// Full context goes to the log, never to the client.
	log.Printf("order handler: %s %s: %v", r.Method, r.URL.Path, err)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
