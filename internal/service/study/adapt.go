package study

import (
	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// Adapt converts a backend record into a canonical Card. It is a pure function:
// term/definition come from term/definition when present, falling back to the
// legacy original/translation fields; absent fields never clear present ones.
//
// Adapt is idempotent over the canonical shape: Adapt(Adapt(r).Record()) == Adapt(r).
func Adapt(rec domain.CardRecord) domain.Card {
	return domain.Card{
		ID:         adaptID(rec),
		Term:       firstPresent(rec.Term, rec.Original),
		Definition: firstPresent(rec.Definition, rec.Translation),
		Learned:    rec.LearnedStatus == domain.LearnedStatusLearned.String(),
		Saved:      rec.Saved != nil && *rec.Saved,
	}
}

// AdaptAll adapts records in order.
func AdaptAll(recs []domain.CardRecord) []domain.Card {
	cards := make([]domain.Card, 0, len(recs))
	for _, r := range recs {
		cards = append(cards, Adapt(r))
	}
	return cards
}

// adaptID keeps backend ids, reuses a known local id, and mints a draft id
// for records that came from a local import.
func adaptID(rec domain.CardRecord) domain.CardID {
	if rec.ID != "" {
		return domain.PersistedCardID(rec.ID)
	}
	if rec.LocalID != "" {
		if id := domain.ParseCardID(rec.LocalID); id.IsDraft() {
			return id
		}
	}
	return domain.NewDraftCardID()
}

func firstPresent(preferred, legacy *string) string {
	if preferred != nil && *preferred != "" {
		return *preferred
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}
