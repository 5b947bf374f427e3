package module

import (
	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/cardstate"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

// View is one visit to a module: its metadata, the adapted cards and the
// flag store shared by every session opened from it.
type View struct {
	Module     domain.Module
	Cards      []domain.Card
	Store      *cardstate.Store
	Generation uint64
}

// NewReview opens a review session over the cards with their current flags.
func (v *View) NewReview(opts ...study.ReviewOption) *study.ReviewSession {
	return study.NewReviewSession(v.Store.Apply(v.Cards), opts...)
}

// NewTest opens a test session. Nil gen or clock fall back to defaults.
func (v *View) NewTest(gen *study.QuizGenerator, clock study.Clock) (*study.TestSession, error) {
	return study.NewTestSession(v.Store.Apply(v.Cards), gen, clock)
}
