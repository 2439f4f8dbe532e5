package tradein

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

type tradeInRepo interface {
	Create(ctx context.Context, req *domain.TradeInRequest) (*domain.TradeInRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	// ListByStatus returns at most limit rows; 0 means every row.
	ListByStatus(ctx context.Context, status domain.TradeInStatus, limit uint64) ([]*domain.TradeInRequest, error)
	// Archive, Restore and Delete return domain.ErrNotFound when no row
	// matched both the id and the expected source status.
	Archive(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TradeInRequest, error)
	Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[domain.TradeInStatus]int, error)
}

type carLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
}

type notifier interface {
	NotifySuccess(ctx context.Context, event domain.TradeInEvent)
	NotifyError(ctx context.Context, event domain.TradeInEvent, err error)
}

// Service implements the trade-in request lifecycle.
type Service struct {
	requests tradeInRepo
	cars     carLookup
	notifier notifier
	gate     *Gate
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new trade-in service.
func NewService(
	log *slog.Logger,
	requests tradeInRepo,
	cars carLookup,
	notifier notifier,
	gate *Gate,
) *Service {
	if gate == nil {
		gate = NewGate(0, nil)
	}
	return &Service{
		requests: requests,
		cars:     cars,
		notifier: notifier,
		gate:     gate,
		log:      log.With("service", "tradein"),
		now:      time.Now,
	}
}

func (s *Service) event(action domain.TradeInAction, req *domain.TradeInRequest) domain.TradeInEvent {
	ev := domain.TradeInEvent{Action: action, At: s.now().UTC()}
	if req != nil {
		ev.Request = *req
	}
	return ev
}
