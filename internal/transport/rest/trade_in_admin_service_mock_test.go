package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/internal/service/tradein"
)

var _ tradeInAdminService = &tradeInAdminServiceMock{}

type tradeInAdminServiceMock struct {
	ArchiveFunc      func(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	DeleteFunc       func(ctx context.Context, input tradein.DeleteInput) error
	ListByStatusFunc func(ctx context.Context, status domain.TradeInStatus) ([]*domain.TradeInRequest, error)
	RestoreFunc      func(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	StatsFunc        func(ctx context.Context) (map[domain.TradeInStatus]int, error)

	calls struct {
		Archive []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Delete []struct {
			Ctx   context.Context
			Input tradein.DeleteInput
		}
		ListByStatus []struct {
			Ctx    context.Context
			Status domain.TradeInStatus
		}
		Restore []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Stats []struct {
			Ctx context.Context
		}
	}
	lockArchive      sync.RWMutex
	lockDelete       sync.RWMutex
	lockListByStatus sync.RWMutex
	lockRestore      sync.RWMutex
	lockStats        sync.RWMutex
}

func (mock *tradeInAdminServiceMock) Archive(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if mock.ArchiveFunc == nil {
		panic("tradeInAdminServiceMock.ArchiveFunc: method is nil but tradeInAdminService.Archive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id)
}

func (mock *tradeInAdminServiceMock) ArchiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *tradeInAdminServiceMock) Delete(ctx context.Context, input tradein.DeleteInput) error {
	if mock.DeleteFunc == nil {
		panic("tradeInAdminServiceMock.DeleteFunc: method is nil but tradeInAdminService.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tradein.DeleteInput
	}{Ctx: ctx, Input: input}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, input)
}

func (mock *tradeInAdminServiceMock) DeleteCalls() []struct {
	Ctx   context.Context
	Input tradein.DeleteInput
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *tradeInAdminServiceMock) ListByStatus(ctx context.Context, status domain.TradeInStatus) ([]*domain.TradeInRequest, error) {
	if mock.ListByStatusFunc == nil {
		panic("tradeInAdminServiceMock.ListByStatusFunc: method is nil but tradeInAdminService.ListByStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Status domain.TradeInStatus
	}{Ctx: ctx, Status: status}
	mock.lockListByStatus.Lock()
	mock.calls.ListByStatus = append(mock.calls.ListByStatus, callInfo)
	mock.lockListByStatus.Unlock()
	return mock.ListByStatusFunc(ctx, status)
}

func (mock *tradeInAdminServiceMock) ListByStatusCalls() []struct {
	Ctx    context.Context
	Status domain.TradeInStatus
} {
	mock.lockListByStatus.RLock()
	calls := mock.calls.ListByStatus
	mock.lockListByStatus.RUnlock()
	return calls
}

func (mock *tradeInAdminServiceMock) Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if mock.RestoreFunc == nil {
		panic("tradeInAdminServiceMock.RestoreFunc: method is nil but tradeInAdminService.Restore was just called")
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

func (mock *tradeInAdminServiceMock) RestoreCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRestore.RLock()
	calls := mock.calls.Restore
	mock.lockRestore.RUnlock()
	return calls
}

func (mock *tradeInAdminServiceMock) Stats(ctx context.Context) (map[domain.TradeInStatus]int, error) {
	if mock.StatsFunc == nil {
		panic("tradeInAdminServiceMock.StatsFunc: method is nil but tradeInAdminService.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *tradeInAdminServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
