package study

import (
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func ptr[T any](v T) *T { return &v }

func card(id, term, def string) domain.Card {
	return domain.Card{ID: domain.PersistedCardID(id), Term: term, Definition: def}
}

// animalCards is the three-card module used across scenario tests.
func animalCards() []domain.Card {
	return []domain.Card{
		card("1", "cat", "кіт"),
		card("2", "dog", "пес"),
		card("3", "bird", "птах"),
	}
}

func manyCards(n int) []domain.Card {
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	defs := []string{"один", "два", "три", "чотири", "п'ять", "шість", "сім", "вісім", "дев'ять", "десять"}
	cards := make([]domain.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, card(words[i], words[i], defs[i]))
	}
	return cards
}
