package tradein

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ carLookup = &carLookupMock{}

type carLookupMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Car, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *carLookupMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if mock.GetByIDFunc == nil {
		panic("carLookupMock.GetByIDFunc: method is nil but carLookup.GetByID was just called")
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

func (mock *carLookupMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
