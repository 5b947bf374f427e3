package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// apiID accepts both numeric and string ids.
type apiID string

func (id *apiID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = apiID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = apiID(n.String())
	return nil
}

// apiModule is a module as returned by GET /modules/{id}.
type apiModule struct {
	ID          apiID  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CardsCount  int    `json:"cards_count"`
}

// apiCard is a card as returned by GET /modules/{id}/cards. Older modules
// serialize original/translation, newer ones term/definition.
type apiCard struct {
	ID            apiID   `json:"id"`
	Original      *string `json:"original"`
	Translation   *string `json:"translation"`
	Term          *string `json:"term"`
	Definition    *string `json:"definition"`
	LearnedStatus string  `json:"learned_status"`
	Saved         *bool   `json:"saved"`
	IsSaved       *bool   `json:"is_saved"`
}

// learnedRequest is the body of PATCH /cards/{id}/learned.
type learnedRequest struct {
	LearnedStatus domain.LearnedStatus `json:"learned_status"`
}

// apiError is the error envelope the backend uses for non-2xx responses.
type apiError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}

func mapModule(m apiModule) domain.Module {
	return domain.Module{
		ID:          string(m.ID),
		Name:        m.Name,
		Description: m.Description,
		CardCount:   m.CardsCount,
	}
}

func mapCard(c apiCard) domain.CardRecord {
	saved := c.Saved
	if saved == nil {
		saved = c.IsSaved
	}
	return domain.CardRecord{
		ID:            string(c.ID),
		Original:      c.Original,
		Translation:   c.Translation,
		Term:          c.Term,
		Definition:    c.Definition,
		LearnedStatus: c.LearnedStatus,
		Saved:         saved,
	}
}
