package content

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ tokenEnsurer = &tokenEnsurerMock{}

type tokenEnsurerMock struct {
	EnsureValidTokenFunc func(ctx context.Context, agentID uuid.UUID) (string, error)

	calls struct {
		EnsureValidToken []struct {
			Ctx     context.Context
			AgentID uuid.UUID
		}
	}
	lockEnsureValidToken sync.RWMutex
}

func (mock *tokenEnsurerMock) EnsureValidToken(ctx context.Context, agentID uuid.UUID) (string, error) {
	if mock.EnsureValidTokenFunc == nil {
		panic("tokenEnsurerMock.EnsureValidTokenFunc: method is nil but tokenEnsurer.EnsureValidToken was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AgentID uuid.UUID
	}{Ctx: ctx, AgentID: agentID}
	mock.lockEnsureValidToken.Lock()
	mock.calls.EnsureValidToken = append(mock.calls.EnsureValidToken, callInfo)
	mock.lockEnsureValidToken.Unlock()
	return mock.EnsureValidTokenFunc(ctx, agentID)
}

func (mock *tokenEnsurerMock) EnsureValidTokenCalls() []struct {
	Ctx     context.Context
	AgentID uuid.UUID
} {
	mock.lockEnsureValidToken.RLock()
	calls := mock.calls.EnsureValidToken
	mock.lockEnsureValidToken.RUnlock()
	return calls
}

var _ memoryWriter = &memoryWriterMock{}

type memoryWriterMock struct {
	WriteMemoryFunc func(ctx context.Context, agentToken, note string) error

	calls struct {
		WriteMemory []struct {
			Ctx        context.Context
			AgentToken string
			Note       string
		}
	}
	lockWriteMemory sync.RWMutex
}

func (mock *memoryWriterMock) WriteMemory(ctx context.Context, agentToken, note string) error {
	if mock.WriteMemoryFunc == nil {
		panic("memoryWriterMock.WriteMemoryFunc: method is nil but memoryWriter.WriteMemory was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		AgentToken string
		Note       string
	}{Ctx: ctx, AgentToken: agentToken, Note: note}
	mock.lockWriteMemory.Lock()
	mock.calls.WriteMemory = append(mock.calls.WriteMemory, callInfo)
	mock.lockWriteMemory.Unlock()
	return mock.WriteMemoryFunc(ctx, agentToken, note)
}

func (mock *memoryWriterMock) WriteMemoryCalls() []struct {
	Ctx        context.Context
	AgentToken string
	Note       string
} {
	mock.lockWriteMemory.RLock()
	calls := mock.calls.WriteMemory
	mock.lockWriteMemory.RUnlock()
	return calls
}

var _ mediaResolver = &mediaResolverMock{}

type mediaResolverMock struct {
	ResolveFunc func(ctx context.Context, topicName, category string) string

	calls struct {
		Resolve []struct {
			Ctx       context.Context
			TopicName string
			Category  string
		}
	}
	lockResolve sync.RWMutex
}

func (mock *mediaResolverMock) Resolve(ctx context.Context, topicName, category string) string {
	if mock.ResolveFunc == nil {
		panic("mediaResolverMock.ResolveFunc: method is nil but mediaResolver.Resolve was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TopicName string
		Category  string
	}{Ctx: ctx, TopicName: topicName, Category: category}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, topicName, category)
}

func (mock *mediaResolverMock) ResolveCalls() []struct {
	Ctx       context.Context
	TopicName string
	Category  string
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
