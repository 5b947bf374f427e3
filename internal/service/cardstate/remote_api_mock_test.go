package cardstate

import (
	"context"
	"sync"
)

var _ remoteAPI = &remoteAPIMock{}

type remoteAPIMock struct {
	SetCardLearnedFunc func(ctx context.Context, cardID string, learned bool) error
	SaveCardFunc       func(ctx context.Context, cardID string) error
	UnsaveCardFunc     func(ctx context.Context, cardID string) error

	calls struct {
		SetCardLearned []struct {
			CardID  string
			Learned bool
		}
		SaveCard []struct {
			CardID string
		}
		UnsaveCard []struct {
			CardID string
		}
	}
	lockSetCardLearned sync.RWMutex
	lockSaveCard       sync.RWMutex
	lockUnsaveCard     sync.RWMutex
}

func (mock *remoteAPIMock) SetCardLearned(ctx context.Context, cardID string, learned bool) error {
	if mock.SetCardLearnedFunc == nil {
		panic("remoteAPIMock.SetCardLearnedFunc: method is nil but remoteAPI.SetCardLearned was just called")
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

func (mock *remoteAPIMock) SetCardLearnedCalls() []struct {
	CardID  string
	Learned bool
} {
	mock.lockSetCardLearned.RLock()
	calls := mock.calls.SetCardLearned
	mock.lockSetCardLearned.RUnlock()
	return calls
}

func (mock *remoteAPIMock) SaveCard(ctx context.Context, cardID string) error {
	if mock.SaveCardFunc == nil {
		panic("remoteAPIMock.SaveCardFunc: method is nil but remoteAPI.SaveCard was just called")
	}
	callInfo := struct {
		CardID string
	}{CardID: cardID}
	mock.lockSaveCard.Lock()
	mock.calls.SaveCard = append(mock.calls.SaveCard, callInfo)
	mock.lockSaveCard.Unlock()
	return mock.SaveCardFunc(ctx, cardID)
}

func (mock *remoteAPIMock) SaveCardCalls() []struct {
	CardID string
} {
	mock.lockSaveCard.RLock()
	calls := mock.calls.SaveCard
	mock.lockSaveCard.RUnlock()
	return calls
}

func (mock *remoteAPIMock) UnsaveCard(ctx context.Context, cardID string) error {
	if mock.UnsaveCardFunc == nil {
		panic("remoteAPIMock.UnsaveCardFunc: method is nil but remoteAPI.UnsaveCard was just called")
	}
	callInfo := struct {
		CardID string
	}{CardID: cardID}
	mock.lockUnsaveCard.Lock()
	mock.calls.UnsaveCard = append(mock.calls.UnsaveCard, callInfo)
	mock.lockUnsaveCard.Unlock()
	return mock.UnsaveCardFunc(ctx, cardID)
}

func (mock *remoteAPIMock) UnsaveCardCalls() []struct {
	CardID string
} {
	mock.lockUnsaveCard.RLock()
	calls := mock.calls.UnsaveCard
	mock.lockUnsaveCard.RUnlock()
	return calls
}
