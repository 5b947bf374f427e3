package terminal

import (
	"strings"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/study"
)

func (r *Runner) renderCard(session *study.ReviewSession) {
	st := session.State()
	if len(st.Cards) == 0 {
		return
	}
	c := st.Cards[st.CurrentIndex]

	face := c.Term
	if st.Flipped {
		face = c.Definition
	}

	var marks []string
	if c.Learned {
		marks = append(marks, "learned")
	}
	if c.Saved {
		marks = append(marks, "saved")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = " [" + strings.Join(marks, ", ") + "]"
	}

	r.printf("[%d/%d] %s%s\n", st.CurrentIndex+1, len(st.Cards), face, suffix)
}

func (r *Runner) renderReviewStats(s study.ReviewStats) {
	r.printf("Learned %d of %d (%d%%), %d not learned\n", s.Learned, s.Total, s.Percentage, s.NotLearned)
	r.printf("Seen %d cards in %.0fs, %.1fs per card\n", s.Seen, s.ElapsedSeconds, s.AverageSeconds)
}

func (r *Runner) renderQuestion(session *study.TestSession, pos, total int) {
	q := session.Questions()[pos]
	answer, answered := session.Answer(q.ID)

	r.printf("Question %d/%d: %s\n", pos+1, total, q.Prompt)
	for i, opt := range q.Options {
		mark := " "
		if answered && answer == opt {
			mark = "*"
		}
		r.printf(" %s%d) %s\n", mark, i+1, opt)
	}
}

func (r *Runner) renderTestResult(session *study.TestSession) {
	for _, q := range session.Questions() {
		answer, _ := session.Answer(q.ID)
		switch {
		case answer == domain.AnswerSkipped:
			r.printf("- %s: skipped, answer %s\n", q.Prompt, q.CorrectAnswer)
		case answer == q.CorrectAnswer:
			r.printf("+ %s: %s\n", q.Prompt, answer)
		default:
			r.printf("- %s: %s, answer %s\n", q.Prompt, answer, q.CorrectAnswer)
		}
	}

	s := session.Stats()
	r.printf("Correct %d of %d (%d%%), incorrect %d, skipped %d\n",
		s.Correct, s.Total, s.Percentage, s.Incorrect, s.Skipped)
	r.printf("Finished in %.0fs, %.1fs per question\n", s.ElapsedSeconds, s.AverageSeconds)
}
