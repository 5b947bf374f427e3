package domain

import (
	"strings"

	"github.com/google/uuid"
)

const draftPrefix = "draft:"

// CardID identifies a card either by its backend id (persisted) or by a
// session-local id (draft). Exactly one of the two is set.
type CardID struct {
	persisted string
	draft     uuid.UUID
}

// PersistedCardID wraps an id issued by the backend.
func PersistedCardID(id string) CardID {
	return CardID{persisted: id}
}

// NewDraftCardID returns a fresh local id for a card that has not been saved yet.
func NewDraftCardID() CardID {
	return CardID{draft: uuid.New()}
}

// DraftCardID wraps an existing local id.
func DraftCardID(id uuid.UUID) CardID {
	return CardID{draft: id}
}

// IsDraft reports whether the card only exists locally.
func (id CardID) IsDraft() bool { return id.draft != uuid.Nil }

// IsZero reports whether the id is unset.
func (id CardID) IsZero() bool { return id.persisted == "" && id.draft == uuid.Nil }

// Persisted returns the backend id and true for persisted cards.
func (id CardID) Persisted() (string, bool) {
	if id.IsDraft() || id.persisted == "" {
		return "", false
	}
	return id.persisted, true
}

func (id CardID) String() string {
	if id.IsDraft() {
		return draftPrefix + id.draft.String()
	}
	return id.persisted
}

// ParseCardID is the inverse of CardID.String.
func ParseCardID(s string) CardID {
	if rest, ok := strings.CutPrefix(s, draftPrefix); ok {
		if u, err := uuid.Parse(rest); err == nil {
			return DraftCardID(u)
		}
	}
	return PersistedCardID(s)
}

// Card is the canonical flashcard shape used by review and test sessions.
type Card struct {
	ID         CardID
	Term       string
	Definition string
	Learned    bool
	Saved      bool
}

// IsValid reports whether both faces carry text. Only valid cards enter a quiz.
func (c Card) IsValid() bool {
	return strings.TrimSpace(c.Term) != "" && strings.TrimSpace(c.Definition) != ""
}

// Record returns the card in the canonical backend record shape.
func (c Card) Record() CardRecord {
	term, def, saved := c.Term, c.Definition, c.Saved
	status := LearnedStatusNotLearned
	if c.Learned {
		status = LearnedStatusLearned
	}
	rec := CardRecord{
		Term:          &term,
		Definition:    &def,
		LearnedStatus: status.String(),
		Saved:         &saved,
	}
	if id, ok := c.ID.Persisted(); ok {
		rec.ID = id
	} else if c.ID.IsDraft() {
		rec.LocalID = c.ID.String()
	}
	return rec
}

// CardRecord is a card as the backend returns it. Older modules use
// original/translation, newer ones term/definition.
// Absent fields are nil. LocalID carries a draft id for cards that were never saved.
type CardRecord struct {
	ID            string
	LocalID       string
	Original      *string
	Translation   *string
	Term          *string
	Definition    *string
	LearnedStatus string
	Saved         *bool
}
