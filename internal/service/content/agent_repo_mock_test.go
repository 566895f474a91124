package content

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

var _ agentRepo = &agentRepoMock{}

type agentRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	TouchLastActiveFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		TouchLastActive []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID         sync.RWMutex
	lockTouchLastActive sync.RWMutex
}

func (mock *agentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	if mock.GetByIDFunc == nil {
		panic("agentRepoMock.GetByIDFunc: method is nil but agentRepo.GetByID was just called")
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

func (mock *agentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *agentRepoMock) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	if mock.TouchLastActiveFunc == nil {
		panic("agentRepoMock.TouchLastActiveFunc: method is nil but agentRepo.TouchLastActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockTouchLastActive.Lock()
	mock.calls.TouchLastActive = append(mock.calls.TouchLastActive, callInfo)
	mock.lockTouchLastActive.Unlock()
	return mock.TouchLastActiveFunc(ctx, id)
}

func (mock *agentRepoMock) TouchLastActiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockTouchLastActive.RLock()
	calls := mock.calls.TouchLastActive
	mock.lockTouchLastActive.RUnlock()
	return calls
}
