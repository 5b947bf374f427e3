package terminal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/cardstate"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/module"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

const reviewHelp = "n next, p prev, f flip, r restart, x shuffle, a autoplay, l learned, s save, q quit"

func (r *Runner) runReview(ctx context.Context, view *module.View, lines <-chan string) {
	session := view.NewReview(study.WithReviewClock(r.opts.Clock))
	if _, ok := session.Current(); !ok {
		r.println("This module has no cards.")
		return
	}

	unsubscribe := view.Store.Subscribe(func(c cardstate.Change) {
		// Late callbacks from a closed visit must not touch the screen.
		if !r.loader.IsCurrent(view.Generation) {
			return
		}
		applyChange(session, c)
	})
	defer unsubscribe()

	rng := r.newRand(1)
	var autoplay *Autoplay
	stopAutoplay := func() {
		if autoplay != nil {
			autoplay.Stop()
			autoplay = nil
		}
	}
	defer stopAutoplay()

	r.println(reviewHelp)
	r.renderCard(session)

	for {
		cmd, ok := next(ctx, lines)
		if !ok {
			break
		}

		switch cmd {
		case "n", "":
			session.Next()
		case "p":
			session.Prev()
		case "f":
			session.Flip()
		case "r":
			session.Restart()
		case "x":
			session.Shuffle(rng)
		case "a":
			if autoplay != nil {
				stopAutoplay()
				r.println("autoplay off")
			} else {
				autoplay = StartAutoplay(ctx, session, r.opts.AutoplayInterval, func() { r.renderCard(session) })
				r.println("autoplay on")
			}
			continue
		case "l", "s":
			r.toggle(ctx, view.Store, session, cmd)
		case "q":
			stopAutoplay()
			r.renderReviewStats(session.Stats())
			return
		case "?", "h":
			r.println(reviewHelp)
			continue
		default:
			r.printf("unknown command %q\n", cmd)
			continue
		}
		r.renderCard(session)
	}

	stopAutoplay()
	r.renderReviewStats(session.Stats())
}

func (r *Runner) toggle(ctx context.Context, store *cardstate.Store, session *study.ReviewSession, cmd string) {
	card, ok := session.Current()
	if !ok {
		return
	}

	var err error
	if cmd == "l" {
		_, err = store.ToggleLearned(ctx, card.ID)
	} else {
		_, err = store.ToggleSave(ctx, card.ID)
	}
	if err == nil {
		return
	}

	r.println(describeError(err))
	if !errors.Is(err, domain.ErrRemoteMutation) {
		r.log.ErrorContext(ctx, "toggle failed",
			slog.String("card_id", card.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// applyChange mirrors a store change onto the card shown by the session.
func applyChange(session *study.ReviewSession, c cardstate.Change) {
	for _, card := range session.State().Cards {
		if card.ID != c.CardID {
			continue
		}
		switch c.Flag {
		case domain.CardFlagLearned:
			card.Learned = c.Value
		case domain.CardFlagSaved:
			card.Saved = c.Value
		}
		session.UpdateCard(card)
		return
	}
}
