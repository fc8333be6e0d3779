package domain

import (
	"errors"
	"strings"
	"time"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front side is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back side is empty.
	ErrCardBackEmpty = errors.New("card back cannot be empty")

	// ErrInvalidDirection is returned when a card carries an unknown
	// active direction value.
	ErrInvalidDirection = errors.New("invalid active direction")

	// ErrInvalidInterval is returned when an interval is negative.
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")

	// ErrInvalidEaseFactor is returned when an ease factor is below the
	// minimum the scheduler operates with.
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")

	// ErrInvalidRepetition is returned when a repetition count is negative.
	ErrInvalidRepetition = errors.New("repetition must be greater than or equal to 0")
)

// MinEaseFactor is the hard floor for a card's ease factor. No grading
// history may push the ease factor below this value.
const MinEaseFactor = 1.3

// DefaultEaseFactor is the ease factor assigned to a freshly seeded card.
const DefaultEaseFactor = 2.5

// Direction identifies which side(s) of a card are being asked.
type Direction string

// Possible direction values. A card only ever advances in the order
// front -> back -> both; it never moves backward, except that a lapse pins
// a card in DirectionBoth to whichever single side was just asked.
const (
	DirectionFront Direction = "front"
	DirectionBack  Direction = "back"
	DirectionBoth  Direction = "both"
)

// IsValid reports whether d is one of the known direction values.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionFront, DirectionBack, DirectionBoth:
		return true
	default:
		return false
	}
}

// Next returns the direction one promotion step forward. Promotion is a
// no-op once a card reaches DirectionBoth.
func (d Direction) Next() Direction {
	switch d {
	case DirectionFront:
		return DirectionBack
	case DirectionBack:
		return DirectionBoth
	default:
		return d
	}
}

// Card is the unit of scheduling state: the two sides of a flashcard plus
// the memory-strength fields the scheduler mutates after each review.
//
// Identity fields (ID, DeckID, Front, Back, audio references,
// AllowDirectionChange) are fixed at seeding time and never change.
// Scheduling fields (Repetition, Interval, EaseFactor, ActiveDirection,
// NextReviewDate) are mutated only by the progress updater, at most once
// per grading event.
type Card struct {
	ID                   string    `json:"id"`
	DeckID               string    `json:"deck_id"`
	Front                string    `json:"front"`
	Back                 string    `json:"back"`
	AudioFront           string    `json:"audio_front,omitempty"`
	AudioBack            string    `json:"audio_back,omitempty"`
	AllowDirectionChange bool      `json:"allow_direction_change"`
	ActiveDirection      Direction `json:"active_direction"`
	Repetition           int       `json:"repetition"`
	Interval             float64   `json:"interval"`    // days
	EaseFactor           float64   `json:"ease_factor"` // >= MinEaseFactor
	NextReviewDate       time.Time `json:"next_review_date"`
}

// QualifyCardID builds the globally unique card ID from the deck ID and the
// in-deck card ID.
func QualifyCardID(deckID, cardID string) string {
	return deckID + "#" + cardID
}

// NewCard creates a Card in its default seeded state: never reviewed,
// eligible immediately. The next-review timestamp is rounded down to the
// minute so that all cards seeded in the same session share a timestamp and
// take part in the randomized tie-break together.
// Returns an error if validation fails.
func NewCard(
	deckID, cardID, front, back string,
	allowDirectionChange bool,
	now time.Time,
) (*Card, error) {
	card := &Card{
		ID:                   QualifyCardID(deckID, cardID),
		DeckID:               deckID,
		Front:                front,
		Back:                 back,
		AllowDirectionChange: allowDirectionChange,
		ActiveDirection:      DirectionFront,
		Repetition:           0,
		Interval:             0,
		EaseFactor:           DefaultEaseFactor,
		NextReviewDate:       now.Truncate(time.Minute),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrCardIDEmpty
	}

	if strings.TrimSpace(c.DeckID) == "" {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}

	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}

	if !c.ActiveDirection.IsValid() {
		return ErrInvalidDirection
	}

	if c.Repetition < 0 {
		return ErrInvalidRepetition
	}

	if c.Interval < 0 {
		return ErrInvalidInterval
	}

	if c.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}

// Clone returns a copy of the card. The progress updater works on copies so
// that a failed store write never leaves a half-mutated card in memory.
func (c *Card) Clone() *Card {
	clone := *c
	return &clone
}
