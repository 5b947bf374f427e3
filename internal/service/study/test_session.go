package study

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// TestState is a snapshot of a quiz in progress or finished.
type TestState struct {
	ID         uuid.UUID
	Questions  []domain.Question
	Answers    map[domain.CardID]string
	Status     domain.SessionStatus
	Finished   bool
	StartedAt  time.Time
	FinishedAt *time.Time
}

// TestStats is computed from the answers on demand, never stored.
type TestStats struct {
	Total          int
	Answered       int
	Correct        int
	Incorrect      int
	Skipped        int
	Percentage     int
	ElapsedSeconds float64
	AverageSeconds float64
}

// TestSession collects answers for a generated quiz. Once submitted it is
// frozen; Retry builds a new session from the original cards.
type TestSession struct {
	mu         sync.Mutex
	id         uuid.UUID
	cards      []domain.Card
	gen        *QuizGenerator
	clock      Clock
	questions  []domain.Question
	position   map[domain.CardID]int
	answers    map[domain.CardID]string
	status     domain.SessionStatus
	startedAt  time.Time
	finishedAt *time.Time
}

// NewTestSession generates questions from cards and opens a session.
// Returns domain.ErrInsufficientData when the cards cannot form a quiz.
func NewTestSession(cards []domain.Card, gen *QuizGenerator, clock Clock) (*TestSession, error) {
	if gen == nil {
		gen = NewQuizGenerator(nil, DefaultOptionsPerQuestion)
	}
	if clock == nil {
		clock = SystemClock()
	}

	questions, err := gen.Generate(cards)
	if err != nil {
		return nil, fmt.Errorf("new test session: %w", err)
	}

	position := make(map[domain.CardID]int, len(questions))
	for i, q := range questions {
		position[q.ID] = i
	}

	return &TestSession{
		id:        uuid.New(),
		cards:     slices.Clone(cards),
		gen:       gen,
		clock:     clock,
		questions: questions,
		position:  position,
		answers:   make(map[domain.CardID]string, len(questions)),
		status:    domain.SessionStatusActive,
		startedAt: clock.Now(),
	}, nil
}

// ID identifies this attempt. Every Retry gets a new one.
func (s *TestSession) ID() uuid.UUID { return s.id }

// Questions returns the questions in presentation order.
func (s *TestSession) Questions() []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.questions)
}

// Select records option as the answer to a question, replacing any earlier answer or skip.
func (s *TestSession) Select(questionID domain.CardID, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.lookup(questionID)
	if err != nil {
		return err
	}
	if !q.HasOption(option) {
		return domain.NewValidationError("option", "not one of the question options")
	}
	s.answers[questionID] = option
	return nil
}

// Skip marks a question as skipped.
func (s *TestSession) Skip(questionID domain.CardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(questionID); err != nil {
		return err
	}
	s.answers[questionID] = domain.AnswerSkipped
	return nil
}

// Submit finishes the session once every question has an answer or a skip.
// Otherwise it returns *domain.IncompleteAnswersError naming the first gap
// and the session stays open.
func (s *TestSession) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.SessionStatusFinished {
		return domain.ErrSessionFinished
	}

	if first, missing := s.firstUnanswered(); missing > 0 {
		return &domain.IncompleteAnswersError{QuestionID: first, Missing: missing}
	}

	now := s.clock.Now()
	s.status = domain.SessionStatusFinished
	s.finishedAt = &now
	return nil
}

// Retry returns a fresh session over the original cards with a new question
// order and new options. The receiver is left untouched.
func (s *TestSession) Retry() (*TestSession, error) {
	return NewTestSession(s.cards, s.gen, s.clock)
}

// Answer returns the recorded answer for a question.
func (s *TestSession) Answer(questionID domain.CardID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[questionID]
	return a, ok
}

// FirstUnanswered returns the first question without an answer, in order.
func (s *TestSession) FirstUnanswered() (domain.CardID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, missing := s.firstUnanswered()
	return id, missing > 0
}

// Finished reports whether Submit succeeded.
func (s *TestSession) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == domain.SessionStatusFinished
}

// State returns a copy of the session state.
func (s *TestSession) State() TestState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var finishedAt *time.Time
	if s.finishedAt != nil {
		t := *s.finishedAt
		finishedAt = &t
	}
	return TestState{
		ID:         s.id,
		Questions:  slices.Clone(s.questions),
		Answers:    maps.Clone(s.answers),
		Status:     s.status,
		Finished:   s.status == domain.SessionStatusFinished,
		StartedAt:  s.startedAt,
		FinishedAt: finishedAt,
	}
}

// Stats scores the current answers. Skipped and unanswered questions count
// as incorrect; Skipped is reported separately for display only.
func (s *TestSession) Stats() TestStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := TestStats{Total: len(s.questions)}
	for _, q := range s.questions {
		answer, ok := s.answers[q.ID]
		if !ok {
			continue
		}
		st.Answered++
		if answer == domain.AnswerSkipped {
			st.Skipped++
		}
		if isCorrect(q, answer) {
			st.Correct++
		}
	}
	st.Incorrect = st.Total - st.Correct
	st.Percentage = Percentage(st.Correct, st.Total)

	end := s.clock.Now()
	if s.finishedAt != nil {
		end = *s.finishedAt
	}
	st.ElapsedSeconds = Elapsed(s.startedAt, end)
	st.AverageSeconds = AverageTime(st.ElapsedSeconds, st.Total)
	return st
}

// isCorrect is the single scoring rule.
func isCorrect(q domain.Question, answer string) bool {
	return answer == q.CorrectAnswer
}

// lookup must be called with mu held.
func (s *TestSession) lookup(questionID domain.CardID) (domain.Question, error) {
	if s.status == domain.SessionStatusFinished {
		return domain.Question{}, domain.ErrSessionFinished
	}
	i, ok := s.position[questionID]
	if !ok {
		return domain.Question{}, fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	return s.questions[i], nil
}

// firstUnanswered must be called with mu held.
func (s *TestSession) firstUnanswered() (domain.CardID, int) {
	var first domain.CardID
	missing := 0
	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; ok {
			continue
		}
		if missing == 0 {
			first = q.ID
		}
		missing++
	}
	return first, missing
}
