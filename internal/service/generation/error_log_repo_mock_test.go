package generation

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

var _ errorLogRepo = &errorLogRepoMock{}

type errorLogRepoMock struct {
	InsertFunc func(ctx context.Context, e domain.GenerationErrorLog) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			E   domain.GenerationErrorLog
		}
	}
	lockInsert sync.RWMutex
}

func (mock *errorLogRepoMock) Insert(ctx context.Context, e domain.GenerationErrorLog) error {
	if mock.InsertFunc == nil {
		panic("errorLogRepoMock.InsertFunc: method is nil but errorLogRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.GenerationErrorLog
	}{Ctx: ctx, E: e}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, e)
}

func (mock *errorLogRepoMock) InsertCalls() []struct {
	Ctx context.Context
	E   domain.GenerationErrorLog
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}
