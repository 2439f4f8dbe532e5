package tradein

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// Archive moves an active request to archived and stamps archived_at.
// Archiving an archived request is a no-op that keeps the original stamp.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	req, err := s.requests.Archive(ctx, id, s.now().UTC())
	if errors.Is(err, domain.ErrNotFound) {
		return s.resolveNoop(ctx, id, domain.TradeInStatusArchived, domain.TradeInActionArchived)
	}
	if err != nil {
		s.notifier.NotifyError(ctx, s.event(domain.TradeInActionArchived, &domain.TradeInRequest{ID: id}), err)
		return nil, fmt.Errorf("archive trade-in request: %w", err)
	}

	s.notifier.NotifySuccess(ctx, s.event(domain.TradeInActionArchived, req))
	s.log.InfoContext(ctx, "trade-in request archived", slog.String("request_id", id.String()))
	return req, nil
}

// Restore moves an archived request back to active and clears archived_at.
// Restoring an active request is a no-op.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	req, err := s.requests.Restore(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return s.resolveNoop(ctx, id, domain.TradeInStatusActive, domain.TradeInActionRestored)
	}
	if err != nil {
		s.notifier.NotifyError(ctx, s.event(domain.TradeInActionRestored, &domain.TradeInRequest{ID: id}), err)
		return nil, fmt.Errorf("restore trade-in request: %w", err)
	}

	s.notifier.NotifySuccess(ctx, s.event(domain.TradeInActionRestored, req))
	s.log.InfoContext(ctx, "trade-in request restored", slog.String("request_id", id.String()))
	return req, nil
}

// resolveNoop runs after a guarded transition matched no row. It returns the
// current record when it is already in target, ErrNotFound when it is gone,
// and ErrConflict when it moved to another state concurrently.
func (s *Service) resolveNoop(
	ctx context.Context,
	id uuid.UUID,
	target domain.TradeInStatus,
	action domain.TradeInAction,
) (*domain.TradeInRequest, error) {
	cur, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.notifier.NotifyError(ctx, s.event(action, &domain.TradeInRequest{ID: id}), err)
		}
		return nil, fmt.Errorf("%s trade-in request: %w", verb(action), err)
	}
	if cur.Status != target {
		return nil, fmt.Errorf("%s trade-in request: status %s: %w", verb(action), cur.Status, domain.ErrConflict)
	}
	return cur, nil
}

// Delete permanently removes an archived request. The caller must confirm
// explicitly; active requests must be archived first.
func (s *Service) Delete(ctx context.Context, input DeleteInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.requests.Delete(ctx, input.ID)
	if errors.Is(err, domain.ErrNotFound) {
		cur, getErr := s.requests.GetByID(ctx, input.ID)
		if getErr != nil {
			return fmt.Errorf("delete trade-in request: %w", getErr)
		}
		return fmt.Errorf("delete trade-in request: status %s, archive it first: %w", cur.Status, domain.ErrConflict)
	}
	if err != nil {
		s.notifier.NotifyError(ctx, s.event(domain.TradeInActionDeleted, &domain.TradeInRequest{ID: input.ID}), err)
		return fmt.Errorf("delete trade-in request: %w", err)
	}

	s.notifier.NotifySuccess(ctx, s.event(domain.TradeInActionDeleted, &domain.TradeInRequest{ID: input.ID}))
	s.log.InfoContext(ctx, "trade-in request deleted", slog.String("request_id", input.ID.String()))
	return nil
}

func verb(action domain.TradeInAction) string {
	switch action {
	case domain.TradeInActionArchived:
		return "archive"
	case domain.TradeInActionRestored:
		return "restore"
	case domain.TradeInActionDeleted:
		return "delete"
	}
	return "submit"
}
