package review

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueCard(id string, due time.Time) *domain.Card {
	return &domain.Card{
		ID:             id,
		DeckID:         "deck",
		Front:          "f",
		Back:           "b",
		EaseFactor:     domain.DefaultEaseFactor,
		NextReviewDate: due,
	}
}

func TestSelectNextCardEmpty(t *testing.T) {
	t.Parallel() // Enable parallel execution

	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, selectNextCard(nil, 0, rng))
	assert.Nil(t, selectNextCard([]*domain.Card{}, 0, rng))
}

func TestSelectNextCardSingle(t *testing.T) {
	t.Parallel() // Enable parallel execution

	rng := rand.New(rand.NewSource(1))
	card := dueCard("deck#a", time.Now())

	got := selectNextCard([]*domain.Card{card}, 0, rng)

	assert.Same(t, card, got)
}

func TestSelectNextCardExactTies(t *testing.T) {
	t.Parallel() // Enable parallel execution

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	cards := []*domain.Card{
		dueCard("deck#a", base),
		dueCard("deck#b", base),
		dueCard("deck#c", base),
		dueCard("deck#d", base.Add(time.Hour)),
	}
	ties := map[string]bool{"deck#a": true, "deck#b": true, "deck#c": true}

	rng := rand.New(rand.NewSource(42))
	picked := make(map[string]bool)
	for i := 0; i < 200; i++ {
		got := selectNextCard(cards, 0, rng)
		require.NotNil(t, got)
		assert.True(t, ties[got.ID], "card %s outside the earliest tie set was picked", got.ID)
		picked[got.ID] = true
	}

	// 200 draws over three ties reach every member.
	assert.Len(t, picked, 3, "every tied card should be reachable")
}

func TestSelectNextCardPoolOfOneIsDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	cards := []*domain.Card{
		dueCard("deck#a", base),
		dueCard("deck#b", base),
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		got := selectNextCard(cards, 1, rng)
		assert.Equal(t, "deck#a", got.ID, "pool size 1 always picks the earliest card")
	}
}

func TestSelectNextCardPoolSpansDates(t *testing.T) {
	t.Parallel() // Enable parallel execution

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	cards := []*domain.Card{
		dueCard("deck#a", base),
		dueCard("deck#b", base.Add(time.Minute)),
		dueCard("deck#c", base.Add(2 * time.Minute)),
	}
	pool := map[string]bool{"deck#a": true, "deck#b": true}

	rng := rand.New(rand.NewSource(42))
	picked := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got := selectNextCard(cards, 2, rng)
		require.NotNil(t, got)
		assert.True(t, pool[got.ID], "card %s outside the first-2 pool was picked", got.ID)
		picked[got.ID] = true
	}
	assert.Len(t, picked, 2, "the pool may cross due dates")
}

func TestSelectNextCardPoolLargerThanList(t *testing.T) {
	t.Parallel() // Enable parallel execution

	rng := rand.New(rand.NewSource(1))
	cards := []*domain.Card{dueCard("deck#a", time.Now())}

	got := selectNextCard(cards, 10, rng)

	assert.Equal(t, "deck#a", got.ID)
}

func TestAskedSideFixedDirections(t *testing.T) {
	t.Parallel() // Enable parallel execution

	rng := rand.New(rand.NewSource(1))

	front := dueCard("deck#a", time.Now())
	front.ActiveDirection = domain.DirectionFront
	assert.Equal(t, domain.DirectionFront, askedSide(front, rng))

	back := dueCard("deck#b", time.Now())
	back.ActiveDirection = domain.DirectionBack
	assert.Equal(t, domain.DirectionBack, askedSide(back, rng))
}

func TestAskedSideBothDrawsBothSides(t *testing.T) {
	t.Parallel() // Enable parallel execution

	rng := rand.New(rand.NewSource(42))
	card := dueCard("deck#a", time.Now())
	card.ActiveDirection = domain.DirectionBoth

	seen := make(map[domain.Direction]bool)
	for i := 0; i < 50; i++ {
		side := askedSide(card, rng)
		require.Contains(t, []domain.Direction{domain.DirectionFront, domain.DirectionBack}, side)
		seen[side] = true
	}
	assert.Len(t, seen, 2, "a card in the both state should be asked from either side")
}
