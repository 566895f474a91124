package content

import (
	"context"
	"encoding/json"
	"sync"

	"google.golang.org/genai"
)

var _ generator = &generatorMock{}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, system, user string, useSearch bool) (string, error)
	ActFunc      func(ctx context.Context, message string, schema *genai.Schema) (json.RawMessage, error)

	calls struct {
		Generate []struct {
			Ctx       context.Context
			System    string
			User      string
			UseSearch bool
		}
		Act []struct {
			Ctx     context.Context
			Message string
			Schema  *genai.Schema
		}
	}
	lockGenerate sync.RWMutex
	lockAct      sync.RWMutex
}

func (mock *generatorMock) Generate(ctx context.Context, system, user string, useSearch bool) (string, error) {
	if mock.GenerateFunc == nil {
		panic("generatorMock.GenerateFunc: method is nil but generator.Generate was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		System    string
		User      string
		UseSearch bool
	}{Ctx: ctx, System: system, User: user, UseSearch: useSearch}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, system, user, useSearch)
}

func (mock *generatorMock) GenerateCalls() []struct {
	Ctx       context.Context
	System    string
	User      string
	UseSearch bool
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

func (mock *generatorMock) Act(ctx context.Context, message string, schema *genai.Schema) (json.RawMessage, error) {
	if mock.ActFunc == nil {
		panic("generatorMock.ActFunc: method is nil but generator.Act was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Message string
		Schema  *genai.Schema
	}{Ctx: ctx, Message: message, Schema: schema}
	mock.lockAct.Lock()
	mock.calls.Act = append(mock.calls.Act, callInfo)
	mock.lockAct.Unlock()
	return mock.ActFunc(ctx, message, schema)
}

func (mock *generatorMock) ActCalls() []struct {
	Ctx     context.Context
	Message string
	Schema  *genai.Schema
} {
	mock.lockAct.RLock()
	calls := mock.calls.Act
	mock.lockAct.RUnlock()
	return calls
}
