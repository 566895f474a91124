package content

import (
	"context"
	"sync"

	"github.com/dkims/agentopia/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	GetByNameFunc func(ctx context.Context, name string) (*domain.Topic, error)
	CreateFunc    func(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	RandomFunc    func(ctx context.Context) (*domain.Topic, error)

	calls struct {
		GetByName []struct {
			Ctx  context.Context
			Name string
		}
		Create []struct {
			Ctx context.Context
			T   *domain.Topic
		}
		Random []struct {
			Ctx context.Context
		}
	}
	lockGetByName sync.RWMutex
	lockCreate    sync.RWMutex
	lockRandom    sync.RWMutex
}

func (mock *topicRepoMock) GetByName(ctx context.Context, name string) (*domain.Topic, error) {
	if mock.GetByNameFunc == nil {
		panic("topicRepoMock.GetByNameFunc: method is nil but topicRepo.GetByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockGetByName.Lock()
	mock.calls.GetByName = append(mock.calls.GetByName, callInfo)
	mock.lockGetByName.Unlock()
	return mock.GetByNameFunc(ctx, name)
}

func (mock *topicRepoMock) GetByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockGetByName.RLock()
	calls := mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

func (mock *topicRepoMock) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	if mock.CreateFunc == nil {
		panic("topicRepoMock.CreateFunc: method is nil but topicRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Topic
	}{Ctx: ctx, T: t}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *topicRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   *domain.Topic
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *topicRepoMock) Random(ctx context.Context) (*domain.Topic, error) {
	if mock.RandomFunc == nil {
		panic("topicRepoMock.RandomFunc: method is nil but topicRepo.Random was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRandom.Lock()
	mock.calls.Random = append(mock.calls.Random, callInfo)
	mock.lockRandom.Unlock()
	return mock.RandomFunc(ctx)
}

func (mock *topicRepoMock) RandomCalls() []struct {
	Ctx context.Context
} {
	mock.lockRandom.RLock()
	calls := mock.calls.Random
	mock.lockRandom.RUnlock()
	return calls
}
