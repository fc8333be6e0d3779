package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewLog validation errors
var (
	// ErrReviewLogIDEmpty is returned when a review log ID is nil.
	ErrReviewLogIDEmpty = errors.New("review log ID cannot be empty")

	// ErrReviewLogCardIDEmpty is returned when a review log's card ID is empty.
	ErrReviewLogCardIDEmpty = errors.New("review log card ID cannot be empty")
)

// ReviewLog records a single grading event. It is append-only: the
// scheduler never reads it back, it exists for inspection and export.
// The scheduling fields hold the card's state after the update was applied.
type ReviewLog struct {
	ID             uuid.UUID   `json:"id"`
	CardID         string      `json:"card_id"`
	Grade          ReviewGrade `json:"grade"`
	AskedDirection Direction   `json:"asked_direction"`
	Repetition     int         `json:"repetition"`
	Interval       float64     `json:"interval"`
	EaseFactor     float64     `json:"ease_factor"`
	ReviewedAt     time.Time   `json:"reviewed_at"`
}

// NewReviewLog creates a ReviewLog for a card that has just been graded,
// capturing the post-update scheduling state.
func NewReviewLog(
	card *Card,
	grade ReviewGrade,
	askedDirection Direction,
	reviewedAt time.Time,
) (*ReviewLog, error) {
	log := &ReviewLog{
		ID:             uuid.New(),
		CardID:         card.ID,
		Grade:          grade,
		AskedDirection: askedDirection,
		Repetition:     card.Repetition,
		Interval:       card.Interval,
		EaseFactor:     card.EaseFactor,
		ReviewedAt:     reviewedAt,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ReviewLog has valid data.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrReviewLogIDEmpty
	}

	if l.CardID == "" {
		return ErrReviewLogCardIDEmpty
	}

	if !l.Grade.IsValid() {
		return ErrInvalidReviewGrade
	}

	if !l.AskedDirection.IsValid() {
		return ErrInvalidDirection
	}

	return nil
}
