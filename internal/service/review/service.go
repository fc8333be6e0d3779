package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkarhu/rehearse/internal/domain"
)

// ReviewAnswer represents the learner's answer to the current card.
type ReviewAnswer struct {
	Grade domain.ReviewGrade `json:"grade"`
}

// Prompt is what the learner is shown next: one card, the side being
// asked, and how many cards are still due in the session's deck set.
type Prompt struct {
	Card           *domain.Card     `json:"card"`
	AskedDirection domain.Direction `json:"asked_direction"`
	Remaining      int              `json:"remaining"`
}

// ReviewService drives a review session. It holds exactly one current card
// at a time; every transition is learner-initiated.
type ReviewService interface {
	// StartSession begins a session over the given deck set and selects
	// the first due card.
	//
	// Returns:
	//   - (*Prompt, nil): the first card to review
	//   - (nil, ErrNoCardsDue): the session started but nothing is due yet
	//   - (nil, error): any other error, typically from the store
	StartSession(ctx context.Context, deckIDs []string) (*Prompt, error)

	// CurrentPrompt returns the card currently being asked. If the last
	// selection found nothing due, it retries, because cards graded
	// "again" come back within minutes.
	//
	// Returns ErrNoActiveSession when StartSession has not been called,
	// and ErrNoCardsDue when the session has no due card.
	CurrentPrompt(ctx context.Context) (*Prompt, error)

	// SubmitAnswer grades the current card, persists the new scheduling
	// state together with a review log entry in one transaction, and
	// selects the next card.
	//
	// Returns:
	//   - (*Prompt, nil): the next card to review
	//   - (nil, ErrNoCardsDue): the answer was recorded and nothing else is due
	//   - (nil, ErrNoActiveCard): there is no card to grade
	//   - (nil, ErrInvalidAnswer): the grade is not again/hard/good
	//   - (nil, error): any other error; the card's stored state is unchanged
	SubmitAnswer(ctx context.Context, answer ReviewAnswer) (*Prompt, error)
}

// Common error types for ReviewService
var (
	// ErrNoCardsDue indicates that no card in the session's deck set is
	// due for review. This is a defined terminal state, not a failure.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrNoActiveSession indicates that no session has been started.
	ErrNoActiveSession = errors.New("no active review session")

	// ErrNoActiveCard indicates an answer was submitted with no card
	// currently being asked.
	ErrNoActiveCard = errors.New("no active card to grade")

	// ErrInvalidAnswer indicates an invalid grade was provided.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrNoDecksSelected indicates a session was started with an empty
	// deck set.
	ErrNoDecksSelected = errors.New("no decks selected")
)

// ServiceError wraps errors from the review service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError returns a new ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "start_session", Message: message, Err: err}
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_answer", Message: message, Err: err}
}
