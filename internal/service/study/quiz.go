package study

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// DefaultOptionsPerQuestion is the number of choices shown when enough cards exist.
const DefaultOptionsPerQuestion = 4

// minQuizCards is the smallest card set that can produce a distractor.
const minQuizCards = 2

// QuizGenerator builds multiple-choice questions from cards.
// All randomness comes from the injected generator, so a seeded
// generator reproduces the same quiz.
type QuizGenerator struct {
	mu                 sync.Mutex
	rng                *rand.Rand
	optionsPerQuestion int
}

// NewQuizGenerator creates a generator. A nil rng uses a randomly seeded PCG;
// optionsPerQuestion below 2 falls back to DefaultOptionsPerQuestion.
func NewQuizGenerator(rng *rand.Rand, optionsPerQuestion int) *QuizGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if optionsPerQuestion < 2 {
		optionsPerQuestion = DefaultOptionsPerQuestion
	}
	return &QuizGenerator{rng: rng, optionsPerQuestion: optionsPerQuestion}
}

// NewSeededQuizGenerator is a convenience for reproducible quizzes.
func NewSeededQuizGenerator(seed uint64, optionsPerQuestion int) *QuizGenerator {
	return NewQuizGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), optionsPerQuestion)
}

// Generate returns one question per valid card in shuffled order.
// Cards missing a term or definition are skipped; fewer than two valid
// cards yields domain.ErrInsufficientData.
func (g *QuizGenerator) Generate(cards []domain.Card) ([]domain.Question, error) {
	valid := ValidCards(cards)
	if len(valid) < minQuizCards {
		return nil, fmt.Errorf("generate quiz: %d valid cards: %w", len(valid), domain.ErrInsufficientData)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	shuffle(g.rng, valid)

	questions := make([]domain.Question, 0, len(valid))
	for i := range valid {
		questions = append(questions, g.buildQuestion(valid, i))
	}
	return questions, nil
}

// buildQuestion draws distractors from every other card by position, so
// cards that share a definition still distract each other.
func (g *QuizGenerator) buildQuestion(pool []domain.Card, idx int) domain.Question {
	card := pool[idx]

	others := make([]string, 0, len(pool)-1)
	for i, c := range pool {
		if i != idx {
			others = append(others, c.Definition)
		}
	}
	shuffle(g.rng, others)

	options := make([]string, 0, g.optionsPerQuestion)
	options = append(options, card.Definition)
	options = append(options, pickDistractors(card.Definition, others, g.optionsPerQuestion-1)...)
	shuffle(g.rng, options)

	return domain.Question{
		ID:            card.ID,
		Prompt:        card.Term,
		CorrectAnswer: card.Definition,
		Options:       options,
	}
}

// pickDistractors takes up to n entries whose normalized text differs from the
// correct answer and from each other. If the pool runs out of distinct text the
// remaining slots are filled with repeats; identical definitions are accepted.
func pickDistractors(correct string, pool []string, n int) []string {
	seen := map[string]struct{}{domain.NormalizeText(correct): {}}
	picked := make([]string, 0, n)
	var repeats []string

	for _, d := range pool {
		if len(picked) == n {
			return picked
		}
		key := domain.NormalizeText(d)
		if _, dup := seen[key]; dup {
			repeats = append(repeats, d)
			continue
		}
		seen[key] = struct{}{}
		picked = append(picked, d)
	}

	for _, d := range repeats {
		if len(picked) == n {
			break
		}
		picked = append(picked, d)
	}
	return picked
}

// ValidCards returns a copy of the cards that have both faces filled.
func ValidCards(cards []domain.Card) []domain.Card {
	valid := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if c.IsValid() {
			valid = append(valid, c)
		}
	}
	return valid
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
