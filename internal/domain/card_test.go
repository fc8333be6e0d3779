package domain

import (
	"testing"
	"time"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	card, err := NewCard("animals.json", "42", "der Hund", "the dog", true, now)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID != "animals.json#42" {
		t.Errorf("Expected deck-qualified ID %q, got %q", "animals.json#42", card.ID)
	}

	if card.DeckID != "animals.json" {
		t.Errorf("Expected deck ID %q, got %q", "animals.json", card.DeckID)
	}

	if card.ActiveDirection != DirectionFront {
		t.Errorf("Expected starting direction %q, got %q", DirectionFront, card.ActiveDirection)
	}

	if !card.AllowDirectionChange {
		t.Error("Expected AllowDirectionChange to carry over from the deck header")
	}

	if card.Repetition != 0 || card.Interval != 0 {
		t.Errorf(
			"Expected fresh scheduling state, got repetition=%d interval=%g",
			card.Repetition,
			card.Interval,
		)
	}

	if card.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected default ease factor %g, got %g", DefaultEaseFactor, card.EaseFactor)
	}

	// Seeding rounds the next-review timestamp down to the minute.
	wantReview := time.Date(2024, 3, 14, 9, 26, 0, 0, time.UTC)
	if !card.NextReviewDate.Equal(wantReview) {
		t.Errorf("Expected minute-rounded next review %v, got %v", wantReview, card.NextReviewDate)
	}

	// Test invalid deck ID
	_, err = NewCard("", "42", "front", "back", false, now)
	if err != ErrCardDeckIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardDeckIDEmpty, err)
	}

	// Test empty front
	_, err = NewCard("animals.json", "42", "", "back", false, now)
	if err != ErrCardFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardFrontEmpty, err)
	}

	// Test empty back
	_, err = NewCard("animals.json", "42", "front", " ", false, now)
	if err != ErrCardBackEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardBackEmpty, err)
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validCard := Card{
		ID:              "deck.json#1",
		DeckID:          "deck.json",
		Front:           "front",
		Back:            "back",
		ActiveDirection: DirectionFront,
		EaseFactor:      2.5,
	}

	// Test valid card
	if err := validCard.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidCard := validCard
	invalidCard.ID = ""
	if err := invalidCard.Validate(); err != ErrCardIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardIDEmpty, err)
	}

	// Test unknown direction
	invalidCard = validCard
	invalidCard.ActiveDirection = "sideways"
	if err := invalidCard.Validate(); err != ErrInvalidDirection {
		t.Errorf("Expected error %v, got %v", ErrInvalidDirection, err)
	}

	// Test negative repetition
	invalidCard = validCard
	invalidCard.Repetition = -1
	if err := invalidCard.Validate(); err != ErrInvalidRepetition {
		t.Errorf("Expected error %v, got %v", ErrInvalidRepetition, err)
	}

	// Test negative interval
	invalidCard = validCard
	invalidCard.Interval = -0.5
	if err := invalidCard.Validate(); err != ErrInvalidInterval {
		t.Errorf("Expected error %v, got %v", ErrInvalidInterval, err)
	}

	// Test ease factor below the floor
	invalidCard = validCard
	invalidCard.EaseFactor = 1.29
	if err := invalidCard.Validate(); err != ErrInvalidEaseFactor {
		t.Errorf("Expected error %v, got %v", ErrInvalidEaseFactor, err)
	}
}

func TestDirectionNext(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		current  Direction
		expected Direction
	}{
		{
			name:     "front advances to back",
			current:  DirectionFront,
			expected: DirectionBack,
		},
		{
			name:     "back advances to both",
			current:  DirectionBack,
			expected: DirectionBoth,
		},
		{
			name:     "both stays at both",
			current:  DirectionBoth,
			expected: DirectionBoth,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.current.Next(); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestCardClone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	original := &Card{
		ID:              "deck.json#1",
		DeckID:          "deck.json",
		Front:           "front",
		Back:            "back",
		ActiveDirection: DirectionFront,
		EaseFactor:      2.5,
		Interval:        6,
		Repetition:      2,
	}

	clone := original.Clone()
	clone.Repetition = 0
	clone.Interval = 1

	if original.Repetition != 2 || original.Interval != 6 {
		t.Error("Mutating a clone must not modify the original card")
	}
}
