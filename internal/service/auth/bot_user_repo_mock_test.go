package auth

import (
	"context"
	"sync"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ botUserRepo = &botUserRepoMock{}

type botUserRepoMock struct {
	UpsertFunc func(ctx context.Context, u *domain.BotUser) error

	calls struct {
		Upsert []struct {
			Ctx context.Context
			U   *domain.BotUser
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *botUserRepoMock) Upsert(ctx context.Context, u *domain.BotUser) error {
	if mock.UpsertFunc == nil {
		panic("botUserRepoMock.UpsertFunc: method is nil but botUserRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.BotUser
	}{Ctx: ctx, U: u}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, u)
}

func (mock *botUserRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	U   *domain.BotUser
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
