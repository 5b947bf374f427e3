package study

import (
	"slices"
	"testing"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizGenerator_OneQuestionPerCard(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 10; n++ {
		cards := manyCards(n)
		questions, err := NewSeededQuizGenerator(uint64(n), DefaultOptionsPerQuestion).Generate(cards)
		require.NoError(t, err)
		require.Len(t, questions, n)

		seen := make(map[domain.CardID]int)
		for _, q := range questions {
			seen[q.ID]++
		}
		for _, c := range cards {
			assert.Equal(t, 1, seen[c.ID], "card %s with n=%d", c.ID, n)
		}
	}
}

func TestQuizGenerator_OptionsValidity(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 10; n++ {
		cards := manyCards(n)
		questions, err := NewSeededQuizGenerator(42, DefaultOptionsPerQuestion).Generate(cards)
		require.NoError(t, err)

		for _, q := range questions {
			assert.Len(t, q.Options, min(4, n), "question %s", q.ID)

			count := 0
			for _, o := range q.Options {
				if o == q.CorrectAnswer {
					count++
				}
			}
			assert.Equal(t, 1, count, "correct answer must appear once in %v", q.Options)

			unique := slices.Compact(slices.Sorted(slices.Values(q.Options)))
			assert.Len(t, unique, len(q.Options), "options must be distinct: %v", q.Options)
		}
	}
}

func TestQuizGenerator_QuestionCopiesCard(t *testing.T) {
	t.Parallel()

	cards := animalCards()
	byID := make(map[domain.CardID]domain.Card)
	for _, c := range cards {
		byID[c.ID] = c
	}

	questions, err := NewSeededQuizGenerator(7, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)

	for _, q := range questions {
		c := byID[q.ID]
		assert.Equal(t, c.Term, q.Prompt)
		assert.Equal(t, c.Definition, q.CorrectAnswer)
	}
}

func TestQuizGenerator_FiltersInvalidCards(t *testing.T) {
	t.Parallel()

	cards := []domain.Card{
		card("1", "cat", "кіт"),
		card("2", "", "пес"),
		card("3", "bird", ""),
		card("4", "fish", "риба"),
	}

	questions, err := NewSeededQuizGenerator(1, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Len(t, q.Options, 2)
		assert.Contains(t, []string{"1", "4"}, q.ID.String())
	}
}

func TestQuizGenerator_InsufficientData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []domain.Card
	}{
		{"no cards", nil},
		{"one card", []domain.Card{card("1", "cat", "кіт")}},
		{"one valid of three", []domain.Card{card("1", "cat", "кіт"), card("2", "", ""), card("3", "x", " ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSeededQuizGenerator(1, DefaultOptionsPerQuestion).Generate(tt.cards)
			require.ErrorIs(t, err, domain.ErrInsufficientData)
		})
	}
}

func TestQuizGenerator_SameSeedSameQuiz(t *testing.T) {
	t.Parallel()

	cards := manyCards(8)
	a, err := NewSeededQuizGenerator(99, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)
	b, err := NewSeededQuizGenerator(99, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestQuizGenerator_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	cards := manyCards(6)
	before := slices.Clone(cards)

	_, err := NewSeededQuizGenerator(3, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)

	assert.Equal(t, before, cards)
}

func TestQuizGenerator_DuplicateDefinitionsStillFillOptions(t *testing.T) {
	t.Parallel()

	cards := []domain.Card{
		card("1", "big", "великий"),
		card("2", "large", "великий"),
		card("3", "huge", "великий"),
	}

	questions, err := NewSeededQuizGenerator(5, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)
	for _, q := range questions {
		assert.Len(t, q.Options, 3)
		for _, o := range q.Options {
			assert.Equal(t, "великий", o)
		}
	}
}

func TestQuizGenerator_PrefersDistinctDistractors(t *testing.T) {
	t.Parallel()

	cards := []domain.Card{
		card("1", "cat", "кіт"),
		card("2", "tomcat", "Кіт"),
		card("3", "dog", "пес"),
		card("4", "bird", "птах"),
		card("5", "fish", "риба"),
	}

	questions, err := NewSeededQuizGenerator(11, DefaultOptionsPerQuestion).Generate(cards)
	require.NoError(t, err)

	for _, q := range questions {
		if q.ID.String() != "1" {
			continue
		}
		assert.NotContains(t, q.Options, "Кіт", "case variant of the answer is not a distinct distractor")
		assert.Len(t, q.Options, 4)
	}
}

func TestQuizGenerator_OptionsPerQuestion(t *testing.T) {
	t.Parallel()

	questions, err := NewSeededQuizGenerator(2, 3).Generate(manyCards(6))
	require.NoError(t, err)
	for _, q := range questions {
		assert.Len(t, q.Options, 3)
	}
}

func TestPickDistractors(t *testing.T) {
	t.Parallel()

	got := pickDistractors("a", []string{"b", "A", "b", "c", "d"}, 3)
	assert.Equal(t, []string{"b", "c", "d"}, got)

	got = pickDistractors("a", []string{"b", "b"}, 3)
	assert.Equal(t, []string{"b", "b"}, got)
}
