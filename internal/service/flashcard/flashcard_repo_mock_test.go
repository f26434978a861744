package flashcard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

var _ flashcardRepo = &flashcardRepoMock{}

type flashcardRepoMock struct {
	CreateBatchFunc func(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error)
	DeleteFunc      func(ctx context.Context, userID uuid.UUID, id int64) error
	DeleteBatchFunc func(ctx context.Context, userID uuid.UUID, ids []int64) (int, error)
	GetByIDFunc     func(ctx context.Context, userID uuid.UUID, id int64) (domain.Flashcard, error)
	ListFunc        func(ctx context.Context, userID uuid.UUID, f domain.FlashcardFilter) ([]domain.Flashcard, int, error)
	UpdateFunc      func(ctx context.Context, userID uuid.UUID, id int64, question *string, answer *string) (domain.Flashcard, error)

	calls struct {
		CreateBatch []struct {
			Ctx   context.Context
			Cards []domain.Flashcard
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     int64
		}
		DeleteBatch []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []int64
		}
		GetByID []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     int64
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			F      domain.FlashcardFilter
		}
		Update []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			ID       int64
			Question *string
			Answer   *string
		}
	}
	lockCreateBatch sync.RWMutex
	lockDelete sync.RWMutex
	lockDeleteBatch sync.RWMutex
	lockGetByID sync.RWMutex
	lockList sync.RWMutex
	lockUpdate sync.RWMutex
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

func (mock *flashcardRepoMock) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if mock.DeleteFunc == nil {
		panic("flashcardRepoMock.DeleteFunc: method is nil but flashcardRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *flashcardRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *flashcardRepoMock) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []int64) (int, error) {
	if mock.DeleteBatchFunc == nil {
		panic("flashcardRepoMock.DeleteBatchFunc: method is nil but flashcardRepo.DeleteBatch was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []int64
	}{Ctx: ctx, UserID: userID, IDs: ids}
	mock.lockDeleteBatch.Lock()
	mock.calls.DeleteBatch = append(mock.calls.DeleteBatch, callInfo)
	mock.lockDeleteBatch.Unlock()
	return mock.DeleteBatchFunc(ctx, userID, ids)
}

func (mock *flashcardRepoMock) DeleteBatchCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []int64
} {
	mock.lockDeleteBatch.RLock()
	calls := mock.calls.DeleteBatch
	mock.lockDeleteBatch.RUnlock()
	return calls
}

func (mock *flashcardRepoMock) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Flashcard, error) {
	if mock.GetByIDFunc == nil {
		panic("flashcardRepoMock.GetByIDFunc: method is nil but flashcardRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, id)
}

func (mock *flashcardRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *flashcardRepoMock) List(ctx context.Context, userID uuid.UUID, f domain.FlashcardFilter) ([]domain.Flashcard, int, error) {
	if mock.ListFunc == nil {
		panic("flashcardRepoMock.ListFunc: method is nil but flashcardRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		F      domain.FlashcardFilter
	}{Ctx: ctx, UserID: userID, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, f)
}

func (mock *flashcardRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	F      domain.FlashcardFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *flashcardRepoMock) Update(ctx context.Context, userID uuid.UUID, id int64, question *string, answer *string) (domain.Flashcard, error) {
	if mock.UpdateFunc == nil {
		panic("flashcardRepoMock.UpdateFunc: method is nil but flashcardRepo.Update was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		ID       int64
		Question *string
		Answer   *string
	}{Ctx: ctx, UserID: userID, ID: id, Question: question, Answer: answer}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, userID, id, question, answer)
}

func (mock *flashcardRepoMock) UpdateCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	ID       int64
	Question *string
	Answer   *string
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
