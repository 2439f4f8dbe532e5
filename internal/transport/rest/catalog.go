package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

type catalogService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Search(ctx context.Context, query string) ([]*domain.Car, error)
}

// CatalogHandler serves read-only car lookups for the trade-in form.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

// Search returns up to five unsold cars matching q.
// GET /api/cars/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]*carView, 0, len(cars))
	for _, c := range cars {
		out = append(out, toCarView(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one car.
// GET /api/cars/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	car, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarView(car))
}
