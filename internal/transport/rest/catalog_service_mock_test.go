package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ catalogService = &catalogServiceMock{}

type catalogServiceMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	SearchFunc  func(ctx context.Context, query string) ([]*domain.Car, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Search []struct {
			Ctx   context.Context
			Query string
		}
	}
	lockGetByID sync.RWMutex
	lockSearch  sync.RWMutex
}

func (mock *catalogServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if mock.GetByIDFunc == nil {
		panic("catalogServiceMock.GetByIDFunc: method is nil but catalogService.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *catalogServiceMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *catalogServiceMock) Search(ctx context.Context, query string) ([]*domain.Car, error) {
	if mock.SearchFunc == nil {
		panic("catalogServiceMock.SearchFunc: method is nil but catalogService.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{Ctx: ctx, Query: query}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, query)
}

func (mock *catalogServiceMock) SearchCalls() []struct {
	Ctx   context.Context
	Query string
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
