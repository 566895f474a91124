package credential

import (
	"context"
	"sync"

	"github.com/dkims/agentopia/internal/domain"
)

var _ tokenProvider = &tokenProviderMock{}

type tokenProviderMock struct {
	ExchangeCodeFunc func(ctx context.Context, code string) (*domain.Credentials, error)
	RefreshFunc      func(ctx context.Context, refreshToken string) (*domain.Credentials, error)

	calls struct {
		ExchangeCode []struct {
			Ctx  context.Context
			Code string
		}
		Refresh []struct {
			Ctx          context.Context
			RefreshToken string
		}
	}
	lockExchangeCode sync.RWMutex
	lockRefresh      sync.RWMutex
}

func (mock *tokenProviderMock) ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error) {
	if mock.ExchangeCodeFunc == nil {
		panic("tokenProviderMock.ExchangeCodeFunc: method is nil but tokenProvider.ExchangeCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockExchangeCode.Lock()
	mock.calls.ExchangeCode = append(mock.calls.ExchangeCode, callInfo)
	mock.lockExchangeCode.Unlock()
	return mock.ExchangeCodeFunc(ctx, code)
}

func (mock *tokenProviderMock) ExchangeCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockExchangeCode.RLock()
	calls := mock.calls.ExchangeCode
	mock.lockExchangeCode.RUnlock()
	return calls
}

func (mock *tokenProviderMock) Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	if mock.RefreshFunc == nil {
		panic("tokenProviderMock.RefreshFunc: method is nil but tokenProvider.Refresh was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RefreshToken string
	}{Ctx: ctx, RefreshToken: refreshToken}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, refreshToken)
}

func (mock *tokenProviderMock) RefreshCalls() []struct {
	Ctx          context.Context
	RefreshToken string
} {
	mock.lockRefresh.RLock()
	calls := mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}
