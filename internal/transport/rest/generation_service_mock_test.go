package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashgen-backend/internal/service/generation"
)

var _ generationService = &generationServiceMock{}

type generationServiceMock struct {
	CreateFunc func(ctx context.Context, input generation.CreateInput) (*generation.Result, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input generation.CreateInput
		}
	}
	lockCreate sync.RWMutex
}

func (mock *generationServiceMock) Create(ctx context.Context, input generation.CreateInput) (*generation.Result, error) {
	if mock.CreateFunc == nil {
		panic("generationServiceMock.CreateFunc: method is nil but generationService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input generation.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *generationServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input generation.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
