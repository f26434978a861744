package generation

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

var _ flashcardRepo = &flashcardRepoMock{}

type flashcardRepoMock struct {
	CreateBatchFunc func(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error)

	calls struct {
		CreateBatch []struct {
			Ctx   context.Context
			Cards []domain.Flashcard
		}
	}
	lockCreateBatch sync.RWMutex
}

func (mock *flashcardRepoMock) CreateBatch(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error) {
	if mock.CreateBatchFunc == nil {
		panic("flashcardRepoMock.CreateBatchFunc: method is nil but flashcardRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Cards []domain.Flashcard
	}{Ctx: ctx, Cards: cards}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, cards)
}

func (mock *flashcardRepoMock) CreateBatchCalls() []struct {
	Ctx   context.Context
	Cards []domain.Flashcard
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}
