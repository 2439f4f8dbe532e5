package auth

import (
	"context"
	"sync"
)

var _ adminRepo = &adminRepoMock{}

type adminRepoMock struct {
	IsAdminFunc func(ctx context.Context, telegramID string) (bool, error)

	calls struct {
		IsAdmin []struct {
			Ctx        context.Context
			TelegramID string
		}
	}
	lockIsAdmin sync.RWMutex
}

func (mock *adminRepoMock) IsAdmin(ctx context.Context, telegramID string) (bool, error) {
	if mock.IsAdminFunc == nil {
		panic("adminRepoMock.IsAdminFunc: method is nil but adminRepo.IsAdmin was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		TelegramID string
	}{Ctx: ctx, TelegramID: telegramID}
	mock.lockIsAdmin.Lock()
	mock.calls.IsAdmin = append(mock.calls.IsAdmin, callInfo)
	mock.lockIsAdmin.Unlock()
	return mock.IsAdminFunc(ctx, telegramID)
}

func (mock *adminRepoMock) IsAdminCalls() []struct {
	Ctx        context.Context
	TelegramID string
} {
	mock.lockIsAdmin.RLock()
	calls := mock.calls.IsAdmin
	mock.lockIsAdmin.RUnlock()
	return calls
}
