package flashcard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ generationRepo = &generationRepoMock{}

type generationRepoMock struct {
	GetOwnerFunc func(ctx context.Context, id int64) (uuid.UUID, error)

	calls struct {
		GetOwner []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockGetOwner sync.RWMutex
}

func (mock *generationRepoMock) GetOwner(ctx context.Context, id int64) (uuid.UUID, error) {
	if mock.GetOwnerFunc == nil {
		panic("generationRepoMock.GetOwnerFunc: method is nil but generationRepo.GetOwner was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetOwner.Lock()
	mock.calls.GetOwner = append(mock.calls.GetOwner, callInfo)
	mock.lockGetOwner.Unlock()
	return mock.GetOwnerFunc(ctx, id)
}

func (mock *generationRepoMock) GetOwnerCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetOwner.RLock()
	calls := mock.calls.GetOwner
	mock.lockGetOwner.RUnlock()
	return calls
}
