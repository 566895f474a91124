package content

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

var _ snapshotRepo = &snapshotRepoMock{}

type snapshotRepoMock struct {
	CreateFunc             func(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error)
	LatestByAgentTopicFunc func(ctx context.Context, agentID, topicID uuid.UUID) (*domain.OpinionSnapshot, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.OpinionSnapshot
		}
		LatestByAgentTopic []struct {
			Ctx     context.Context
			AgentID uuid.UUID
			TopicID uuid.UUID
		}
	}
	lockCreate             sync.RWMutex
	lockLatestByAgentTopic sync.RWMutex
}

func (mock *snapshotRepoMock) Create(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error) {
	if mock.CreateFunc == nil {
		panic("snapshotRepoMock.CreateFunc: method is nil but snapshotRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.OpinionSnapshot
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *snapshotRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.OpinionSnapshot
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) LatestByAgentTopic(ctx context.Context, agentID, topicID uuid.UUID) (*domain.OpinionSnapshot, error) {
	if mock.LatestByAgentTopicFunc == nil {
		panic("snapshotRepoMock.LatestByAgentTopicFunc: method is nil but snapshotRepo.LatestByAgentTopic was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AgentID uuid.UUID
		TopicID uuid.UUID
	}{Ctx: ctx, AgentID: agentID, TopicID: topicID}
	mock.lockLatestByAgentTopic.Lock()
	mock.calls.LatestByAgentTopic = append(mock.calls.LatestByAgentTopic, callInfo)
	mock.lockLatestByAgentTopic.Unlock()
	return mock.LatestByAgentTopicFunc(ctx, agentID, topicID)
}

func (mock *snapshotRepoMock) LatestByAgentTopicCalls() []struct {
	Ctx     context.Context
	AgentID uuid.UUID
	TopicID uuid.UUID
} {
	mock.lockLatestByAgentTopic.RLock()
	calls := mock.calls.LatestByAgentTopic
	mock.lockLatestByAgentTopic.RUnlock()
	return calls
}
