package srs

import (
	"errors"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
)

// Common errors
var (
	ErrNilCard          = errors.New("card cannot be nil")
	ErrInvalidGrade     = errors.New("invalid review grade")
	ErrInvalidDirection = errors.New("asked direction must be front or back")
)

// Service defines the interface for the scheduling algorithm. It is pure
// computation: implementations never touch the store, so a grade update can
// be computed in full before a single write happens.
type Service interface {
	// Grade computes the card's new scheduling state for a review event.
	// askedDirection is the side the learner was actually shown, which for
	// a card in the "both" state is one of front or back. The input card
	// is not mutated; the returned card carries the complete new state.
	Grade(
		card *domain.Card,
		grade domain.ReviewGrade,
		askedDirection domain.Direction,
		now time.Time,
	) (*domain.Card, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Grade implements the Service interface.
func (s *defaultService) Grade(
	card *domain.Card,
	grade domain.ReviewGrade,
	askedDirection domain.Direction,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !grade.IsValid() {
		return nil, ErrInvalidGrade
	}

	if askedDirection != domain.DirectionFront && askedDirection != domain.DirectionBack {
		return nil, ErrInvalidDirection
	}

	return calculateNextCard(card, grade, askedDirection, now, s.params), nil
}
