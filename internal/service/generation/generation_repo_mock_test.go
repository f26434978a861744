package generation

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

var _ generationRepo = &generationRepoMock{}

type generationRepoMock struct {
	CreateFunc func(ctx context.Context, g domain.Generation) (domain.Generation, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			G   domain.Generation
		}
	}
	lockCreate sync.RWMutex
}

func (mock *generationRepoMock) Create(ctx context.Context, g domain.Generation) (domain.Generation, error) {
	if mock.CreateFunc == nil {
		panic("generationRepoMock.CreateFunc: method is nil but generationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		G   domain.Generation
	}{Ctx: ctx, G: g}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, g)
}

func (mock *generationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	G   domain.Generation
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
