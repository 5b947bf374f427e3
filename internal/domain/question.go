package domain

// AnswerSkipped is stored as the answer of a question the user skipped.
const AnswerSkipped = "skipped"

// Question is a multiple-choice item built from one card.
type Question struct {
	ID            CardID
	Prompt        string
	CorrectAnswer string
	Options       []string
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o == value {
			return true
		}
	}
	return false
}
