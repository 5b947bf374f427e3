package terminal

import (
	"context"
	"errors"
	"strconv"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/module"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

const testHelp = "1-9 choose, s skip, p previous, q quit"

func (r *Runner) runTest(ctx context.Context, view *module.View, lines <-chan string) {
	gen := study.NewQuizGenerator(r.newRand(2), r.opts.OptionsPerQuestion)

	session, err := view.NewTest(gen, r.opts.Clock)
	if err != nil {
		r.println(describeError(err))
		return
	}

	r.println(testHelp)
	for {
		if !r.answerAll(ctx, session, lines) {
			return
		}

		r.renderTestResult(session)

		r.println("Try again? (y/n)")
		cmd, ok := next(ctx, lines)
		if !ok || cmd != "y" {
			return
		}
		if session, err = session.Retry(); err != nil {
			r.println(describeError(err))
			return
		}
	}
}

// answerAll walks the questions until the session is submitted.
// It returns false when the user quits or input ends.
func (r *Runner) answerAll(ctx context.Context, session *study.TestSession, lines <-chan string) bool {
	questions := session.Questions()
	pos := 0

	for {
		if pos >= len(questions) {
			err := session.Submit()
			if err == nil {
				return true
			}
			r.println(describeError(err))

			var incomplete *domain.IncompleteAnswersError
			if !errors.As(err, &incomplete) {
				return false
			}
			pos = indexOf(questions, incomplete.QuestionID)
		}

		q := questions[pos]
		r.renderQuestion(session, pos, len(questions))

		cmd, ok := next(ctx, lines)
		if !ok {
			return false
		}

		switch cmd {
		case "q":
			return false
		case "p":
			if pos > 0 {
				pos--
			}
			continue
		case "s":
			err := session.Skip(q.ID)
			if err != nil {
				r.println(describeError(err))
				continue
			}
		case "?", "h":
			r.println(testHelp)
			continue
		default:
			n, convErr := strconv.Atoi(cmd)
			if convErr != nil || n < 1 || n > len(q.Options) {
				r.printf("choose 1-%d\n", len(q.Options))
				continue
			}
			if err := session.Select(q.ID, q.Options[n-1]); err != nil {
				r.println(describeError(err))
				continue
			}
		}
		pos++
	}
}

func indexOf(questions []domain.Question, id domain.CardID) int {
	for i, q := range questions {
		if q.ID == id {
			return i
		}
	}
	return 0
}
