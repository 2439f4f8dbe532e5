package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/internal/service/tradein"
)

// ConfirmDeleteHeader must be "true" on hard deletes.
const ConfirmDeleteHeader = "X-Confirm-Delete"

type tradeInAdminService interface {
	ListByStatus(ctx context.Context, status domain.TradeInStatus) ([]*domain.TradeInRequest, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	Delete(ctx context.Context, input tradein.DeleteInput) error
	Stats(ctx context.Context) (map[domain.TradeInStatus]int, error)
}

// AdminHandler serves the back-office trade-in endpoints. Routes are mounted
// behind middleware.RequireAdmin.
type AdminHandler struct {
	tradeIns        tradeInAdminService
	contactUsername string
	log             *slog.Logger
	now             func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(tradeIns tradeInAdminService, contactUsername string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		tradeIns:        tradeIns,
		contactUsername: contactUsername,
		log:             logger.With("handler", "admin"),
		now:             time.Now,
	}
}

type tradeInListResponse struct {
	Status string        `json:"status"`
	Items  []tradeInView `json:"items"`
}

// statusParam reads ?status=, defaulting to active.
func statusParam(r *http.Request) domain.TradeInStatus {
	if raw := r.URL.Query().Get("status"); raw != "" {
		return domain.TradeInStatus(raw)
	}
	return domain.TradeInStatusActive
}

// List returns requests in one status, newest first.
// GET /api/admin/trade-in?status=active|archived
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	status := statusParam(r)
	reqs, err := h.tradeIns.ListByStatus(r.Context(), status)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]tradeInView, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, toTradeInView(req, h.contactUsername))
	}
	writeJSON(w, http.StatusOK, tradeInListResponse{Status: status.String(), Items: items})
}

// Stats returns request counts per status.
// GET /api/admin/trade-in/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.tradeIns.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		domain.TradeInStatusActive.String():   counts[domain.TradeInStatusActive],
		domain.TradeInStatusArchived.String(): counts[domain.TradeInStatusArchived],
	})
}

// Archive moves a request to the archive.
// POST /api/admin/trade-in/{id}/archive
func (h *AdminHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tradeIns.Archive)
}

// Restore moves a request back to active.
// POST /api/admin/trade-in/{id}/restore
func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tradeIns.Restore)
}

func (h *AdminHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, uuid.UUID) (*domain.TradeInRequest, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := fn(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTradeInView(req, h.contactUsername))
}

// Delete permanently removes an archived request.
// DELETE /api/admin/trade-in/{id} with X-Confirm-Delete: true
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(strings.TrimSpace(r.Header.Get(ConfirmDeleteHeader)))

	if err := h.tradeIns.Delete(r.Context(), tradein.DeleteInput{ID: id, Confirmed: confirmed}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export downloads requests in one status as an XLSX workbook.
// GET /api/admin/trade-in/export?status=
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	status := statusParam(r)
	reqs, err := h.tradeIns.ListByStatus(r.Context(), status)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	buf, err := buildTradeInWorkbook(reqs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	name := "trade-in-" + status.String() + "-" + h.now().In(domain.Moscow).Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}
