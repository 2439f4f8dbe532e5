package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ carRepo = &carRepoMock{}

type carRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	SearchFunc  func(ctx context.Context, query string, limit uint64) ([]*domain.Car, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Search []struct {
			Ctx   context.Context
			Query string
			Limit uint64
		}
	}
	lockGetByID sync.RWMutex
	lockSearch  sync.RWMutex
}

func (mock *carRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if mock.GetByIDFunc == nil {
		panic("carRepoMock.GetByIDFunc: method is nil but carRepo.GetByID was just called")
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

func (mock *carRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *carRepoMock) Search(ctx context.Context, query string, limit uint64) ([]*domain.Car, error) {
	if mock.SearchFunc == nil {
		panic("carRepoMock.SearchFunc: method is nil but carRepo.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
		Limit uint64
	}{Ctx: ctx, Query: query, Limit: limit}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, query, limit)
}

func (mock *carRepoMock) SearchCalls() []struct {
	Ctx   context.Context
	Query string
	Limit uint64
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
