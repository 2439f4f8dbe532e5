package tradein

import (
	"context"
	"errors"
	"fmt"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// Quote is the calculator result for a target car and an offered amount.
type Quote struct {
	Car    *domain.Car
	Amount *int64
	Delta  *int64
	Kind   domain.DeltaKind
}

// Label returns "Доплата" or "К возврату", or "" when the delta is unknown.
func (q Quote) Label() string {
	if q.Delta == nil {
		return ""
	}
	return q.Kind.Label()
}

// Quote computes the trade-in delta against the target car's price.
func (s *Service) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, input.TargetCarID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("target_car_id", MsgCarNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup target car: %w", err)
	}

	price := car.Price
	q := &Quote{Car: car, Amount: input.Amount, Delta: domain.ComputeTradeInDelta(&price, input.Amount)}
	if q.Delta != nil {
		q.Kind = domain.ClassifyDelta(*q.Delta)
	}
	return q, nil
}
