package study

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// ReviewState is a snapshot of a flashcard browsing session.
type ReviewState struct {
	Cards        []domain.Card
	CurrentIndex int
	Flipped      bool
	AutoplayOn   bool
	Seen         int
	StartedAt    time.Time
}

// ReviewStats summarizes a review session.
type ReviewStats struct {
	Total          int
	Learned        int
	NotLearned     int
	Percentage     int
	Seen           int
	ElapsedSeconds float64
	AverageSeconds float64
}

// ReviewSession walks an ordered card sequence one card at a time.
// Navigation wraps around at both ends. With no cards every operation is a no-op.
//
// The autoplay timer belongs to the caller; SetAutoplay only records the mode.
// Methods are safe for concurrent use since the timer fires on its own goroutine.
type ReviewSession struct {
	mu        sync.Mutex
	cards     []domain.Card
	index     int
	flipped   bool
	autoplay  bool
	seen      map[domain.CardID]struct{}
	clock     Clock
	startedAt time.Time
}

// ReviewOption configures a ReviewSession.
type ReviewOption func(*ReviewSession)

// WithReviewClock overrides the time source.
func WithReviewClock(c Clock) ReviewOption {
	return func(s *ReviewSession) { s.clock = c }
}

// NewReviewSession starts a session at the first card.
func NewReviewSession(cards []domain.Card, opts ...ReviewOption) *ReviewSession {
	s := &ReviewSession{
		cards: slices.Clone(cards),
		seen:  make(map[domain.CardID]struct{}),
		clock: SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.clock.Now()
	s.markSeen()
	return s
}

// Next advances to the following card, wrapping to the first.
func (s *ReviewSession) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.cards)
	s.flipped = false
	s.markSeen()
}

// Prev retreats to the previous card, wrapping to the last.
func (s *ReviewSession) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return
	}
	s.index = (s.index - 1 + len(s.cards)) % len(s.cards)
	s.flipped = false
	s.markSeen()
}

// Flip toggles between the term and definition faces.
func (s *ReviewSession) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return
	}
	s.flipped = !s.flipped
}

// Restart returns to the first card, face up.
func (s *ReviewSession) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return
	}
	s.index = 0
	s.flipped = false
	s.markSeen()
}

// Shuffle reorders the cards and restarts from the first one.
func (s *ReviewSession) Shuffle(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return
	}
	shuffle(rng, s.cards)
	s.index = 0
	s.flipped = false
	s.markSeen()
}

// SetAutoplay records whether the caller's timer should be advancing the session.
func (s *ReviewSession) SetAutoplay(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoplay = on
}

// AutoplayOn reports the autoplay mode.
func (s *ReviewSession) AutoplayOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplay
}

// Current returns the card under the cursor, false when there are no cards.
func (s *ReviewSession) Current() (domain.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 {
		return domain.Card{}, false
	}
	return s.cards[s.index], true
}

// UpdateCard replaces the card with the same id, keeping position.
// Used to reflect learned/saved toggles. Returns false for unknown ids.
func (s *ReviewSession) UpdateCard(card domain.Card) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i] = card
			return true
		}
	}
	return false
}

// State returns a copy of the session state.
func (s *ReviewSession) State() ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ReviewState{
		Cards:        slices.Clone(s.cards),
		CurrentIndex: s.index,
		Flipped:      s.flipped,
		AutoplayOn:   s.autoplay,
		Seen:         len(s.seen),
		StartedAt:    s.startedAt,
	}
}

// Stats computes learned counts and timing as of now.
func (s *ReviewSession) Stats() ReviewStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	learned := 0
	for _, c := range s.cards {
		if c.Learned {
			learned++
		}
	}
	elapsed := Elapsed(s.startedAt, s.clock.Now())

	return ReviewStats{
		Total:          len(s.cards),
		Learned:        learned,
		NotLearned:     len(s.cards) - learned,
		Percentage:     Percentage(learned, len(s.cards)),
		Seen:           len(s.seen),
		ElapsedSeconds: elapsed,
		AverageSeconds: AverageTime(elapsed, len(s.seen)),
	}
}

// markSeen must be called with mu held.
func (s *ReviewSession) markSeen() {
	if len(s.cards) == 0 {
		return
	}
	s.seen[s.cards[s.index].ID] = struct{}{}
}
