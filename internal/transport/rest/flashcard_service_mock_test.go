package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/service/flashcard"
)

var _ flashcardService = &flashcardServiceMock{}

type flashcardServiceMock struct {
	CreateFunc      func(ctx context.Context, input flashcard.CreateInput) ([]domain.Flashcard, error)
	DeleteFunc      func(ctx context.Context, id int64) error
	DeleteBatchFunc func(ctx context.Context, input flashcard.DeleteBatchInput) (int, error)
	GetFunc         func(ctx context.Context, id int64) (domain.Flashcard, error)
	ListFunc        func(ctx context.Context, input flashcard.ListInput) (*flashcard.ListResult, error)
	UpdateFunc      func(ctx context.Context, input flashcard.UpdateInput) (domain.Flashcard, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input flashcard.CreateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
		DeleteBatch []struct {
			Ctx   context.Context
			Input flashcard.DeleteBatchInput
		}
		Get []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx   context.Context
			Input flashcard.ListInput
		}
		Update []struct {
			Ctx   context.Context
			Input flashcard.UpdateInput
		}
	}
	lockCreate sync.RWMutex
	lockDelete sync.RWMutex
	lockDeleteBatch sync.RWMutex
	lockGet sync.RWMutex
	lockList sync.RWMutex
	lockUpdate sync.RWMutex
}

func (mock *flashcardServiceMock) Create(ctx context.Context, input flashcard.CreateInput) ([]domain.Flashcard, error) {
	if mock.CreateFunc == nil {
		panic("flashcardServiceMock.CreateFunc: method is nil but flashcardService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input flashcard.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *flashcardServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input flashcard.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *flashcardServiceMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("flashcardServiceMock.DeleteFunc: method is nil but flashcardService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *flashcardServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *flashcardServiceMock) DeleteBatch(ctx context.Context, input flashcard.DeleteBatchInput) (int, error) {
	if mock.DeleteBatchFunc == nil {
		panic("flashcardServiceMock.DeleteBatchFunc: method is nil but flashcardService.DeleteBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input flashcard.DeleteBatchInput
	}{Ctx: ctx, Input: input}
	mock.lockDeleteBatch.Lock()
	mock.calls.DeleteBatch = append(mock.calls.DeleteBatch, callInfo)
	mock.lockDeleteBatch.Unlock()
	return mock.DeleteBatchFunc(ctx, input)
}

func (mock *flashcardServiceMock) DeleteBatchCalls() []struct {
	Ctx   context.Context
	Input flashcard.DeleteBatchInput
} {
	mock.lockDeleteBatch.RLock()
	calls := mock.calls.DeleteBatch
	mock.lockDeleteBatch.RUnlock()
	return calls
}

func (mock *flashcardServiceMock) Get(ctx context.Context, id int64) (domain.Flashcard, error) {
	if mock.GetFunc == nil {
		panic("flashcardServiceMock.GetFunc: method is nil but flashcardService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *flashcardServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *flashcardServiceMock) List(ctx context.Context, input flashcard.ListInput) (*flashcard.ListResult, error) {
	if mock.ListFunc == nil {
		panic("flashcardServiceMock.ListFunc: method is nil but flashcardService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input flashcard.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *flashcardServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input flashcard.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *flashcardServiceMock) Update(ctx context.Context, input flashcard.UpdateInput) (domain.Flashcard, error) {
	if mock.UpdateFunc == nil {
		panic("flashcardServiceMock.UpdateFunc: method is nil but flashcardService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input flashcard.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *flashcardServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input flashcard.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
