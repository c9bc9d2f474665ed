package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dawai/m/domain"
	"dawai/m/internal/errs"
)

// maxBodyBytes caps request bodies; invoices are small documents.
const maxBodyBytes = 4 << 20

// InvoiceStore is the invoice persistence contract used by the handlers.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, payload json.RawMessage) (string, error)
	ReadInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, payload json.RawMessage) error
	DeleteInvoice(ctx context.Context, id string) (bool, error)
	ListInvoices(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
}

// InventoryStore is the stock item persistence contract used by the handlers.
type InventoryStore interface {
	CreateInventory(ctx context.Context, in domain.NewInventoryItem) (string, error)
	ReadInventory(ctx context.Context, id string) (*domain.InventoryItem, error)
	ListInventory(ctx context.Context, f domain.InventoryFilter) ([]domain.InventoryItem, error)
}

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	invoices  InvoiceStore
	inventory InventoryStore
	health    Pinger
	log       *zap.Logger
	origins   []string
}

// New constructs a Handler. health may be nil.
func New(invoices InvoiceStore, inventory InventoryStore, health Pinger, log *zap.Logger, origins []string) *Handler {
	return &Handler{invoices: invoices, inventory: inventory, health: health, log: log, origins: origins}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(recoverer(h.log))
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", h.healthz)
	r.Handle("/metrics", metricsHandler())

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", h.createInvoice)
		r.Get("/", h.getInvoices)
		r.Get("/{id}", h.getInvoiceByID)
		r.Get("/{id}/record", h.readInvoice)
		r.Put("/{id}", h.writeInvoice)
		r.Delete("/{id}", h.deleteInvoice)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.createInventory)
		r.Get("/", h.getInventory)
		r.Get("/{id}", h.getInventoryByID)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.log.Error("health check failed", zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondStoreError maps store errors onto HTTP statuses.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, errs.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("store operation failed",
			zap.String("req_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
