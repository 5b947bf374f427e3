package module

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

var _ moduleAPI = &moduleAPIMock{}

type moduleAPIMock struct {
	FetchModuleFunc      func(ctx context.Context, moduleID string) (*domain.Module, error)
	FetchModuleCardsFunc func(ctx context.Context, moduleID string) ([]domain.CardRecord, error)
	SetCardLearnedFunc   func(ctx context.Context, cardID string, learned bool) error
	SaveCardFunc         func(ctx context.Context, cardID string) error
	UnsaveCardFunc       func(ctx context.Context, cardID string) error

	calls struct {
		FetchModule []struct {
			ModuleID string
		}
		FetchModuleCards []struct {
			ModuleID string
		}
		SetCardLearned []struct {
			CardID  string
			Learned bool
		}
	}
	lockFetchModule      sync.RWMutex
	lockFetchModuleCards sync.RWMutex
	lockSetCardLearned   sync.RWMutex
}

func (mock *moduleAPIMock) FetchModule(ctx context.Context, moduleID string) (*domain.Module, error) {
	if mock.FetchModuleFunc == nil {
		panic("moduleAPIMock.FetchModuleFunc: method is nil but moduleAPI.FetchModule was just called")
	}
	mock.lockFetchModule.Lock()
	mock.calls.FetchModule = append(mock.calls.FetchModule, struct{ ModuleID string }{moduleID})
	mock.lockFetchModule.Unlock()
	return mock.FetchModuleFunc(ctx, moduleID)
}

func (mock *moduleAPIMock) FetchModuleCalls() []struct{ ModuleID string } {
	mock.lockFetchModule.RLock()
	defer mock.lockFetchModule.RUnlock()
	return mock.calls.FetchModule
}

func (mock *moduleAPIMock) FetchModuleCards(ctx context.Context, moduleID string) ([]domain.CardRecord, error) {
	if mock.FetchModuleCardsFunc == nil {
		panic("moduleAPIMock.FetchModuleCardsFunc: method is nil but moduleAPI.FetchModuleCards was just called")
	}
	mock.lockFetchModuleCards.Lock()
	mock.calls.FetchModuleCards = append(mock.calls.FetchModuleCards, struct{ ModuleID string }{moduleID})
	mock.lockFetchModuleCards.Unlock()
	return mock.FetchModuleCardsFunc(ctx, moduleID)
}

func (mock *moduleAPIMock) FetchModuleCardsCalls() []struct{ ModuleID string } {
	mock.lockFetchModuleCards.RLock()
	defer mock.lockFetchModuleCards.RUnlock()
	return mock.calls.FetchModuleCards
}

func (mock *moduleAPIMock) SetCardLearned(ctx context.Context, cardID string, learned bool) error {
	if mock.SetCardLearnedFunc == nil {
		panic("moduleAPIMock.SetCardLearnedFunc: method is nil but moduleAPI.SetCardLearned was just called")
	}
	callInfo := struct {
		CardID  string
		Learned bool
	}{CardID: cardID, Learned: learned}
	mock.lockSetCardLearned.Lock()
	mock.calls.SetCardLearned = append(mock.calls.SetCardLearned, callInfo)
	mock.lockSetCardLearned.Unlock()
	return mock.SetCardLearnedFunc(ctx, cardID, learned)
}

func (mock *moduleAPIMock) SetCardLearnedCalls() []struct {
	CardID  string
	Learned bool
} {
	mock.lockSetCardLearned.RLock()
	defer mock.lockSetCardLearned.RUnlock()
	return mock.calls.SetCardLearned
}

func (mock *moduleAPIMock) SaveCard(ctx context.Context, cardID string) error {
	if mock.SaveCardFunc == nil {
		panic("moduleAPIMock.SaveCardFunc: method is nil but moduleAPI.SaveCard was just called")
	}
	return mock.SaveCardFunc(ctx, cardID)
}

func (mock *moduleAPIMock) UnsaveCard(ctx context.Context, cardID string) error {
	if mock.UnsaveCardFunc == nil {
		panic("moduleAPIMock.UnsaveCardFunc: method is nil but moduleAPI.UnsaveCard was just called")
	}
	return mock.UnsaveCardFunc(ctx, cardID)
}
