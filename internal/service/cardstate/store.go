package cardstate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type remoteAPI interface {
	SetCardLearned(ctx context.Context, cardID string, learned bool) error
	SaveCard(ctx context.Context, cardID string) error
	UnsaveCard(ctx context.Context, cardID string) error
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Flags is the per-card state held by the store.
type Flags struct {
	Learned bool
	Saved   bool
}

// Change is delivered to listeners on every local value change.
type Change struct {
	CardID domain.CardID
	Flag   domain.CardFlag
	Value  bool
	State  domain.MutationState
}

// Listener receives changes synchronously, in order, outside the store lock.
type Listener func(Change)

// Result describes how one toggle ended.
type Result struct {
	CardID   domain.CardID
	Flag     domain.CardFlag
	Previous bool
	Value    bool
	State    domain.MutationState
}

// Store holds learned/saved flags for the cards of one module visit and
// applies toggles optimistically: the local value flips first, the backend
// call follows, and a failed call restores the previous value.
//
// Concurrent toggles on the same card are not coalesced; each one issues its
// own request and is reconciled on its own.
type Store struct {
	remote remoteAPI
	log    *slog.Logger

	mu        sync.Mutex
	flags     map[domain.CardID]Flags
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// NewStore creates a store seeded from the given cards.
func NewStore(log *slog.Logger, remote remoteAPI, cards []domain.Card) *Store {
	flags := make(map[domain.CardID]Flags, len(cards))
	for _, c := range cards {
		flags[c.ID] = Flags{Learned: c.Learned, Saved: c.Saved}
	}
	return &Store{
		remote: remote,
		log:    log.With("service", "cardstate"),
		flags:  flags,
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
	}
}

// Get returns the flags of a card.
func (s *Store) Get(cardID domain.CardID) (Flags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flags[cardID]
	if !ok {
		return Flags{}, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}
	return f, nil
}

// Snapshot returns a copy of all flags.
func (s *Store) Snapshot() map[domain.CardID]Flags {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.CardID]Flags, len(s.flags))
	for id, f := range s.flags {
		out[id] = f
	}
	return out
}

// Apply copies the store's flags onto cards with a known id.
func (s *Store) Apply(cards []domain.Card) []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		if f, ok := s.flags[c.ID]; ok {
			c.Learned, c.Saved = f.Learned, f.Saved
		}
		out[i] = c
	}
	return out
}

// ToggleLearned flips the learned flag of a card.
func (s *Store) ToggleLearned(ctx context.Context, cardID domain.CardID) (Result, error) {
	return s.toggle(ctx, cardID, domain.CardFlagLearned)
}

// ToggleSave flips the saved flag of a card.
func (s *Store) ToggleSave(ctx context.Context, cardID domain.CardID) (Result, error) {
	return s.toggle(ctx, cardID, domain.CardFlagSaved)
}

func (s *Store) toggle(ctx context.Context, cardID domain.CardID, flag domain.CardFlag) (Result, error) {
	res := Result{CardID: cardID, Flag: flag, State: domain.MutationStateIdle}

	// 1-2. Read current value, flip locally, notify.
	prev, err := s.set(cardID, flag, func(v bool) bool { return !v })
	if err != nil {
		return res, err
	}
	res.Previous, res.Value = prev, !prev
	res.State = domain.MutationStatePending
	s.notify(Change{CardID: cardID, Flag: flag, Value: !prev, State: res.State})

	// Drafts do not exist on the backend yet; the local value is authoritative.
	backendID, persisted := cardID.Persisted()
	if !persisted {
		res.State = domain.MutationStateConfirmed
		return res, nil
	}

	// 3. Remote mutation.
	if err := s.callRemote(ctx, backendID, flag, !prev); err != nil {
		// 5. Roll back to the value we started from.
		if _, setErr := s.set(cardID, flag, func(bool) bool { return prev }); setErr != nil {
			return res, setErr
		}
		res.Value = prev
		res.State = domain.MutationStateRolledBack
		s.notify(Change{CardID: cardID, Flag: flag, Value: prev, State: res.State})

		s.log.WarnContext(ctx, "flag toggle rolled back",
			slog.String("card_id", cardID.String()),
			slog.String("flag", flag.String()),
			slog.String("error", err.Error()),
		)
		return res, &domain.RemoteMutationError{CardID: cardID, Flag: flag, Err: err}
	}

	// 4. Confirmed; local state is already correct.
	res.State = domain.MutationStateConfirmed
	s.log.DebugContext(ctx, "flag toggle confirmed",
		slog.String("card_id", cardID.String()),
		slog.String("flag", flag.String()),
		slog.Bool("value", !prev),
	)
	return res, nil
}

func (s *Store) callRemote(ctx context.Context, backendID string, flag domain.CardFlag, value bool) error {
	switch flag {
	case domain.CardFlagLearned:
		return s.remote.SetCardLearned(ctx, backendID, value)
	case domain.CardFlagSaved:
		if value {
			return s.remote.SaveCard(ctx, backendID)
		}
		return s.remote.UnsaveCard(ctx, backendID)
	default:
		return fmt.Errorf("unknown flag %q", flag)
	}
}

// set applies fn to the flag and returns the value before the change.
func (s *Store) set(cardID domain.CardID, flag domain.CardFlag, fn func(bool) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flags[cardID]
	if !ok {
		return false, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	var prev bool
	switch flag {
	case domain.CardFlagLearned:
		prev = f.Learned
		f.Learned = fn(prev)
	case domain.CardFlagSaved:
		prev = f.Saved
		f.Saved = fn(prev)
	default:
		return false, domain.NewValidationError("flag", "must be learned or saved")
	}
	s.flags[cardID] = f
	return prev, nil
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	subs := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}
