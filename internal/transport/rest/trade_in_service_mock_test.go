package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/internal/service/tradein"
)

var _ tradeInService = &tradeInServiceMock{}

type tradeInServiceMock struct {
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error)
	QuoteFunc  func(ctx context.Context, input tradein.QuoteInput) (*tradein.Quote, error)
	SubmitFunc func(ctx context.Context, input tradein.SubmitInput) (uuid.UUID, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Quote []struct {
			Ctx   context.Context
			Input tradein.QuoteInput
		}
		Submit []struct {
			Ctx   context.Context
			Input tradein.SubmitInput
		}
	}
	lockGet    sync.RWMutex
	lockQuote  sync.RWMutex
	lockSubmit sync.RWMutex
}

func (mock *tradeInServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	if mock.GetFunc == nil {
		panic("tradeInServiceMock.GetFunc: method is nil but tradeInService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *tradeInServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *tradeInServiceMock) Quote(ctx context.Context, input tradein.QuoteInput) (*tradein.Quote, error) {
	if mock.QuoteFunc == nil {
		panic("tradeInServiceMock.QuoteFunc: method is nil but tradeInService.Quote was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tradein.QuoteInput
	}{Ctx: ctx, Input: input}
	mock.lockQuote.Lock()
	mock.calls.Quote = append(mock.calls.Quote, callInfo)
	mock.lockQuote.Unlock()
	return mock.QuoteFunc(ctx, input)
}

func (mock *tradeInServiceMock) QuoteCalls() []struct {
	Ctx   context.Context
	Input tradein.QuoteInput
} {
	mock.lockQuote.RLock()
	calls := mock.calls.Quote
	mock.lockQuote.RUnlock()
	return calls
}

func (mock *tradeInServiceMock) Submit(ctx context.Context, input tradein.SubmitInput) (uuid.UUID, error) {
	if mock.SubmitFunc == nil {
		panic("tradeInServiceMock.SubmitFunc: method is nil but tradeInService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tradein.SubmitInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *tradeInServiceMock) SubmitCalls() []struct {
	Ctx   context.Context
	Input tradein.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}
