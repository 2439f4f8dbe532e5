package tradein

import (
	"context"
	"sync"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyErrorFunc   func(ctx context.Context, event domain.TradeInEvent, err error)
	NotifySuccessFunc func(ctx context.Context, event domain.TradeInEvent)

	calls struct {
		NotifyError []struct {
			Ctx   context.Context
			Event domain.TradeInEvent
			Err   error
		}
		NotifySuccess []struct {
			Ctx   context.Context
			Event domain.TradeInEvent
		}
	}
	lockNotifyError   sync.RWMutex
	lockNotifySuccess sync.RWMutex
}

func (mock *notifierMock) NotifyError(ctx context.Context, event domain.TradeInEvent, err error) {
	if mock.NotifyErrorFunc == nil {
		panic("notifierMock.NotifyErrorFunc: method is nil but notifier.NotifyError was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.TradeInEvent
		Err   error
	}{Ctx: ctx, Event: event, Err: err}
	mock.lockNotifyError.Lock()
	mock.calls.NotifyError = append(mock.calls.NotifyError, callInfo)
	mock.lockNotifyError.Unlock()
	mock.NotifyErrorFunc(ctx, event, err)
}

func (mock *notifierMock) NotifyErrorCalls() []struct {
	Ctx   context.Context
	Event domain.TradeInEvent
	Err   error
} {
	mock.lockNotifyError.RLock()
	calls := mock.calls.NotifyError
	mock.lockNotifyError.RUnlock()
	return calls
}

func (mock *notifierMock) NotifySuccess(ctx context.Context, event domain.TradeInEvent) {
	if mock.NotifySuccessFunc == nil {
		panic("notifierMock.NotifySuccessFunc: method is nil but notifier.NotifySuccess was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.TradeInEvent
	}{Ctx: ctx, Event: event}
	mock.lockNotifySuccess.Lock()
	mock.calls.NotifySuccess = append(mock.calls.NotifySuccess, callInfo)
	mock.lockNotifySuccess.Unlock()
	mock.NotifySuccessFunc(ctx, event)
}

func (mock *notifierMock) NotifySuccessCalls() []struct {
	Ctx   context.Context
	Event domain.TradeInEvent
} {
	mock.lockNotifySuccess.RLock()
	calls := mock.calls.NotifySuccess
	mock.lockNotifySuccess.RUnlock()
	return calls
}
