package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/internal/service/module"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type moduleLoader interface {
	Load(ctx context.Context, moduleID string) (*module.View, error)
	IsCurrent(gen uint64) bool
	Close()
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

// Mode selects which session the runner opens.
type Mode string

const (
	ModeReview Mode = "review"
	ModeTest   Mode = "test"
)

func (m Mode) IsValid() bool {
	return m == ModeReview || m == ModeTest
}

// Options tunes a Runner. Zero values fall back to defaults.
type Options struct {
	AutoplayInterval   time.Duration
	OptionsPerQuestion int
	// Seed makes shuffles and quizzes reproducible; 0 means time-based.
	Seed  uint64
	Clock study.Clock
}

// Runner drives one module visit from line-oriented text input.
type Runner struct {
	loader moduleLoader
	log    *slog.Logger
	opts   Options
	in     io.Reader

	outMu sync.Mutex
	out   io.Writer
}

// NewRunner creates a Runner reading commands from in and rendering to out.
func NewRunner(logger *slog.Logger, loader moduleLoader, opts Options, in io.Reader, out io.Writer) *Runner {
	if opts.AutoplayInterval <= 0 {
		opts.AutoplayInterval = DefaultAutoplayInterval
	}
	if opts.OptionsPerQuestion < 2 {
		opts.OptionsPerQuestion = study.DefaultOptionsPerQuestion
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Clock == nil {
		opts.Clock = study.SystemClock()
	}
	return &Runner{
		loader: loader,
		log:    logger.With("transport", "terminal"),
		opts:   opts,
		in:     in,
		out:    out,
	}
}

// Run loads the module and runs the chosen session until the user quits,
// input ends or ctx is cancelled. Problems inside a session are reported
// to the user; only a failed load is returned.
func (r *Runner) Run(ctx context.Context, moduleID string, mode Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	view, err := r.loader.Load(ctx, moduleID)
	if err != nil {
		r.println(describeError(err))
		return fmt.Errorf("run %s: %w", mode, err)
	}
	defer r.loader.Close()

	r.printf("%s (%d cards)\n", view.Module.Name, view.Module.CardCount)
	if view.Module.Description != "" {
		r.println(view.Module.Description)
	}

	lines := readLines(ctx, r.in)

	switch mode {
	case ModeTest:
		r.runTest(ctx, view, lines)
	default:
		r.runReview(ctx, view, lines)
	}
	return nil
}

func (r *Runner) newRand(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(r.opts.Seed, stream))
}

// readLines feeds trimmed input lines into a channel that closes at EOF.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// next blocks for the next command. ok is false at EOF or cancellation.
func next(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}

func (r *Runner) printf(format string, args ...any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(s string) {
	r.printf("%s\n", s)
}
