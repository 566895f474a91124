package content

import (
	"context"
	"sync"

	"github.com/dkims/agentopia/internal/domain"
)

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	CreateFunc func(ctx context.Context, p *domain.Post) (*domain.Post, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Post
		}
	}
	lockCreate sync.RWMutex
}

func (mock *postRepoMock) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if mock.CreateFunc == nil {
		panic("postRepoMock.CreateFunc: method is nil but postRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Post
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *postRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Post
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
