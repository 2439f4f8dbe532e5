package tradein

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// ListByStatus returns every request in status, newest first, joined with
// its target car. The admin list and the XLSX export both rely on it being complete.
func (s *Service) ListByStatus(ctx context.Context, status domain.TradeInStatus) ([]*domain.TradeInRequest, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be active or archived")
	}

	reqs, err := s.requests.ListByStatus(ctx, status, 0)
	if err != nil {
		return nil, fmt.Errorf("list trade-in requests: %w", err)
	}
	return reqs, nil
}

// Get returns a single request by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trade-in request: %w", err)
	}
	return req, nil
}

// Stats returns the number of requests per status. Both statuses are always present.
func (s *Service) Stats(ctx context.Context) (map[domain.TradeInStatus]int, error) {
	counts, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count trade-in requests: %w", err)
	}
	return counts, nil
}
