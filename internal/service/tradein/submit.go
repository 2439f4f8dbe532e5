package tradein

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/pkg/ctxutil"
)

// Submit validates the form and stores a new active request.
// Validation failures perform no writes. A repeated submission from the same
// Telegram user (or phone, for anonymous callers) inside the cooldown window
// returns domain.ErrTooManyRequests.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (uuid.UUID, error) {
	if err := input.Validate(); err != nil {
		return uuid.Nil, err
	}

	var target *domain.Car
	if input.TargetCarID != nil {
		car, err := s.cars.GetByID(ctx, *input.TargetCarID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return uuid.Nil, domain.NewValidationError("target_car_id", MsgCarNotFound)
		case err != nil:
			return uuid.Nil, fmt.Errorf("lookup target car: %w", err)
		}
		target = car
	}

	req := &domain.TradeInRequest{
		ID:            uuid.New(),
		Phone:         domain.FormatPhone(input.Phone),
		UserCar:       strings.TrimSpace(input.UserCar),
		TargetCarID:   input.TargetCarID,
		TradeInAmount: input.TradeInAmount,
		Comment:       domain.TrimOptional(input.Comment),
		Status:        domain.TradeInStatusActive,
		CreatedAt:     s.now().UTC(),
	}
	if tgID, ok := ctxutil.TelegramIDFromCtx(ctx); ok {
		id := strconv.FormatInt(tgID, 10)
		req.TelegramUserID = &id
	}

	key := submitterKey(req)
	if !s.gate.Enter(key) {
		return uuid.Nil, domain.ErrTooManyRequests
	}
	succeeded := false
	defer func() { s.gate.Leave(key, succeeded) }()

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		s.notifier.NotifyError(ctx, s.event(domain.TradeInActionSubmitted, req), err)
		return uuid.Nil, fmt.Errorf("create trade-in request: %w", err)
	}
	succeeded = true
	created.TargetCar = target

	s.notifier.NotifySuccess(ctx, s.event(domain.TradeInActionSubmitted, created))

	s.log.InfoContext(ctx, "trade-in request submitted",
		slog.String("request_id", created.ID.String()),
		slog.String("phone", created.Phone),
		slog.Bool("has_target", created.TargetCarID != nil),
		slog.Bool("has_amount", created.TradeInAmount != nil),
	)

	return created.ID, nil
}

func submitterKey(req *domain.TradeInRequest) string {
	if req.TelegramUserID != nil {
		return "tg:" + *req.TelegramUserID
	}
	return "phone:" + domain.PhoneDigits(req.Phone)
}
