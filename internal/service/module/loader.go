package module

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/cardstate"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type moduleAPI interface {
	FetchModule(ctx context.Context, moduleID string) (*domain.Module, error)
	FetchModuleCards(ctx context.Context, moduleID string) ([]domain.CardRecord, error)
	SetCardLearned(ctx context.Context, cardID string, learned bool) error
	SaveCard(ctx context.Context, cardID string) error
	UnsaveCard(ctx context.Context, cardID string) error
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// Loader opens module visits. Each Load starts a new generation; results
// that arrive for an older generation are dropped.
type Loader struct {
	api moduleAPI
	log *slog.Logger

	generation atomic.Uint64

	mu      sync.Mutex
	current *View
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger, api moduleAPI) *Loader {
	return &Loader{
		api: api,
		log: logger.With("service", "module"),
	}
}

// Load fetches a module and its cards and makes it the current visit.
// It returns domain.ErrStaleSession when another Load or Close happened
// while the fetch was in flight.
func (l *Loader) Load(ctx context.Context, moduleID string) (*View, error) {
	moduleID = strings.TrimSpace(moduleID)
	if moduleID == "" {
		return nil, domain.NewValidationError("module_id", "required")
	}

	gen := l.generation.Add(1)

	var (
		mod  *domain.Module
		recs []domain.CardRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		mod, err = l.api.FetchModule(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("fetch module: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		recs, err = l.api.FetchModuleCards(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("fetch cards: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if !l.IsCurrent(gen) {
		l.log.DebugContext(ctx, "stale module load discarded",
			slog.String("module_id", moduleID),
			slog.Uint64("generation", gen),
		)
		return nil, fmt.Errorf("load module %s: %w", moduleID, domain.ErrStaleSession)
	}
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", moduleID, err)
	}
	if mod == nil {
		return nil, fmt.Errorf("load module %s: %w", moduleID, domain.ErrNotFound)
	}

	cards := study.AdaptAll(recs)
	view := &View{
		Module:     *mod,
		Cards:      cards,
		Store:      cardstate.NewStore(l.log, l.api, cards),
		Generation: gen,
	}
	view.Module.CardCount = len(cards)

	l.mu.Lock()
	defer l.mu.Unlock()
	// Close may have run between the check above and taking the lock.
	if !l.IsCurrent(gen) {
		return nil, fmt.Errorf("load module %s: %w", moduleID, domain.ErrStaleSession)
	}
	l.current = view

	l.log.InfoContext(ctx, "module loaded",
		slog.String("module_id", moduleID),
		slog.Int("cards", len(cards)),
		slog.Int("valid_cards", len(study.ValidCards(cards))),
		slog.Uint64("generation", gen),
	)
	return view, nil
}

// Current returns the latest loaded visit, if any.
func (l *Loader) Current() (*View, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.current != nil
}

// IsCurrent reports whether gen is still the live generation.
func (l *Loader) IsCurrent(gen uint64) bool {
	return l.generation.Load() == gen
}

// Close ends the current visit. In-flight loads become stale.
func (l *Loader) Close() {
	l.generation.Add(1)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = nil
}
