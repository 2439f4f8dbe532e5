package tradein

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ tradeInRepo = &tradeInRepoMock{}

type tradeInRepoMock struct {
	ArchiveFunc       func(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TradeInRequest, error)
	CountByStatusFunc func(ctx context.Context) (map[domain.TradeInStatus]int, error)
	CreateFunc        func(ctx context.Context, req *domain.TradeInRequest) (*domain.TradeInRequest, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	ListByStatusFunc  func(ctx context.Context, status domain.TradeInStatus, limit uint64) ([]*domain.TradeInRequest, error)
	RestoreFunc       func(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)

	calls struct {
		Archive []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		CountByStatus []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx context.Context
			Req *domain.TradeInRequest
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByStatus []struct {
			Ctx    context.Context
			Status domain.TradeInStatus
			Limit  uint64
		}
		Restore []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockArchive       sync.RWMutex
	lockCountByStatus sync.RWMutex
	lockCreate        sync.RWMutex
	lockDelete        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockListByStatus  sync.RWMutex
	lockRestore       sync.RWMutex
}

func (mock *tradeInRepoMock) Archive(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TradeInRequest, error) {
	if mock.ArchiveFunc == nil {
		panic("tradeInRepoMock.ArchiveFunc: method is nil but tradeInRepo.Archive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id, at)
}

func (mock *tradeInRepoMock) ArchiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) CountByStatus(ctx context.Context) (map[domain.TradeInStatus]int, error) {
	if mock.CountByStatusFunc == nil {
		panic("tradeInRepoMock.CountByStatusFunc: method is nil but tradeInRepo.CountByStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCountByStatus.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, callInfo)
	mock.lockCountByStatus.Unlock()
	return mock.CountByStatusFunc(ctx)
}

func (mock *tradeInRepoMock) CountByStatusCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountByStatus.RLock()
	calls := mock.calls.CountByStatus
	mock.lockCountByStatus.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) Create(ctx context.Context, req *domain.TradeInRequest) (*domain.TradeInRequest, error) {
	if mock.CreateFunc == nil {
		panic("tradeInRepoMock.CreateFunc: method is nil but tradeInRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req *domain.TradeInRequest
	}{Ctx: ctx, Req: req}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, req)
}

func (mock *tradeInRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Req *domain.TradeInRequest
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("tradeInRepoMock.DeleteFunc: method is nil but tradeInRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *tradeInRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("tradeInRepoMock.GetByIDFunc: method is nil but tradeInRepo.GetByID was just called")
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

func (mock *tradeInRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) ListByStatus(ctx context.Context, status domain.TradeInStatus, limit uint64) ([]*domain.TradeInRequest, error) {
	if mock.ListByStatusFunc == nil {
		panic("tradeInRepoMock.ListByStatusFunc: method is nil but tradeInRepo.ListByStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Status domain.TradeInStatus
		Limit  uint64
	}{Ctx: ctx, Status: status, Limit: limit}
	mock.lockListByStatus.Lock()
	mock.calls.ListByStatus = append(mock.calls.ListByStatus, callInfo)
	mock.lockListByStatus.Unlock()
	return mock.ListByStatusFunc(ctx, status, limit)
}

func (mock *tradeInRepoMock) ListByStatusCalls() []struct {
	Ctx    context.Context
	Status domain.TradeInStatus
	Limit  uint64
} {
	mock.lockListByStatus.RLock()
	calls := mock.calls.ListByStatus
	mock.lockListByStatus.RUnlock()
	return calls
}

func (mock *tradeInRepoMock) Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if mock.RestoreFunc == nil {
		panic("tradeInRepoMock.RestoreFunc: method is nil but tradeInRepo.Restore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockRestore.Lock()
	mock.calls.Restore = append(mock.calls.Restore, callInfo)
	mock.lockRestore.Unlock()
	return mock.RestoreFunc(ctx, id)
}

func (mock *tradeInRepoMock) RestoreCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRestore.RLock()
	calls := mock.calls.Restore
	mock.lockRestore.RUnlock()
	return calls
}
