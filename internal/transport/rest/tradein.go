package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/internal/service/tradein"
)

type tradeInService interface {
	Submit(ctx context.Context, input tradein.SubmitInput) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	Quote(ctx context.Context, input tradein.QuoteInput) (*tradein.Quote, error)
}

// TradeInHandler serves the customer-facing trade-in endpoints.
type TradeInHandler struct {
	svc             tradeInService
	contactUsername string
	log             *slog.Logger
}

// NewTradeInHandler creates a TradeInHandler. contactUsername is the manager
// account used for the follow-up chat link; empty disables the link.
func NewTradeInHandler(svc tradeInService, contactUsername string, logger *slog.Logger) *TradeInHandler {
	return &TradeInHandler{
		svc:             svc,
		contactUsername: contactUsername,
		log:             logger.With("handler", "tradein"),
	}
}

// amountField accepts either a JSON number or free-form text such as "1 500 000 ₽".
type amountField struct {
	value *int64
	err   error
}

func (a *amountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		a.value, a.err = domain.ParseAmount(raw)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.value = &v
	return nil
}

type submitRequest struct {
	Phone         string      `json:"phone"`
	UserCar       string      `json:"userCar"`
	TargetCarID   *string     `json:"targetCarId"`
	TradeInAmount amountField `json:"tradeInAmount"`
	Comment       *string     `json:"comment"`
}

type submitResponse struct {
	ID       string `json:"id"`
	Tag      string `json:"tag"`
	ChatLink string `json:"chatLink,omitempty"`
}

// Submit stores a new trade-in request.
// POST /api/trade-in
func (h *TradeInHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TradeInAmount.err != nil {
		handleError(h.log, w, r, req.TradeInAmount.err)
		return
	}

	input := tradein.SubmitInput{
		Phone:         req.Phone,
		UserCar:       req.UserCar,
		TradeInAmount: req.TradeInAmount.value,
		Comment:       req.Comment,
	}
	if req.TargetCarID != nil && *req.TargetCarID != "" {
		id, err := uuid.Parse(*req.TargetCarID)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("target_car_id", tradein.MsgCarNotFound))
			return
		}
		input.TargetCarID = &id
	}

	id, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := submitResponse{ID: id.String(), Tag: domain.RequestTagFor(id)}
	if h.contactUsername != "" {
		// The request is already stored; a failed re-read only costs the link.
		if created, err := h.svc.Get(r.Context(), id); err == nil {
			resp.ChatLink = chatLinkFor(created, h.contactUsername)
		} else {
			h.log.WarnContext(r.Context(), "reload submitted request",
				slog.String("request_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

type quoteResponse struct {
	TargetCar *carView `json:"targetCar"`
	Amount    *int64   `json:"amount,omitempty"`
	Delta     *int64   `json:"delta"`
	Kind      string   `json:"kind,omitempty"`
	Label     string   `json:"label,omitempty"`
}

// Quote computes the delta between a catalog car and an offered amount.
// GET /api/trade-in/quote?targetCarId=&amount=
func (h *TradeInHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var input tradein.QuoteInput
	if raw := q.Get("targetCarId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("target_car_id", tradein.MsgCarNotFound))
			return
		}
		input.TargetCarID = id
	}
	amount, err := domain.ParseAmount(q.Get("amount"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	input.Amount = amount

	quote, err := h.svc.Quote(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := quoteResponse{
		TargetCar: toCarView(quote.Car),
		Amount:    quote.Amount,
		Delta:     quote.Delta,
		Label:     quote.Label(),
	}
	if quote.Delta != nil {
		resp.Kind = quote.Kind.String()
	}
	writeJSON(w, http.StatusOK, resp)
}
