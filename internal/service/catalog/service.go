package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// SearchLimit caps the number of cars returned by Search.
const SearchLimit = 5

type carRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Search(ctx context.Context, query string, limit uint64) ([]*domain.Car, error)
}

// Service is the read-only catalog lookup used by the trade-in flow.
type Service struct {
	cars carRepo
	log  *slog.Logger
}

// NewService creates a new catalog service.
func NewService(log *slog.Logger, cars carRepo) *Service {
	return &Service{
		cars: cars,
		log:  log.With("service", "catalog"),
	}
}

// GetByID returns a car by id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("car_id", "required")
	}
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}
	return car, nil
}

// Search returns up to SearchLimit unsold cars whose brand, model or
// "brand model" contains the query, case-insensitively.
// A blank query returns an empty result without touching storage.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Car, error) {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if q == "" {
		return []*domain.Car{}, nil
	}
	if len(q) > 100 {
		return nil, domain.NewValidationError("q", "max 100 characters")
	}

	cars, err := s.cars.Search(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search cars: %w", err)
	}
	return cars, nil
}
