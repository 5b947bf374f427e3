package terminal

import (
	"context"
	"sync"
	"time"
)

// DefaultAutoplayInterval is how long each card stays on screen.
const DefaultAutoplayInterval = 3 * time.Second

// advancer is the part of a review session the autoplay timer drives.
type advancer interface {
	Next()
	SetAutoplay(on bool)
}

// Autoplay advances a review session on a fixed interval until stopped.
type Autoplay struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartAutoplay starts the timer goroutine. onTick, when non-nil, runs after
// every advance. The timer also stops when ctx is cancelled.
func StartAutoplay(ctx context.Context, session advancer, interval time.Duration, onTick func()) *Autoplay {
	if interval <= 0 {
		interval = DefaultAutoplayInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &Autoplay{cancel: cancel, done: make(chan struct{})}
	session.SetAutoplay(true)

	go func() {
		defer close(a.done)
		defer session.SetAutoplay(false)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Stop may race with a tick that is already due.
				if ctx.Err() != nil {
					return
				}
				session.Next()
				if onTick != nil {
					onTick()
				}
			}
		}
	}()

	return a
}

// Stop cancels the timer and waits for the goroutine to exit.
// Calling it more than once is a no-op.
func (a *Autoplay) Stop() {
	a.once.Do(a.cancel)
	<-a.done
}

// Done is closed once the timer goroutine has exited.
func (a *Autoplay) Done() <-chan struct{} { return a.done }
