package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// The store is single-writer per session: the session controller never
// issues a second operation against the same card before the prior one's
// result has been observed, so implementations do not need row locking.
type CardStore interface {
	// GetByID retrieves a card by its deck-qualified ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// Save writes a card's scheduling fields back to the store.
	// The card must already exist; identity fields are never rewritten.
	// Returns ErrCardNotFound if the card does not exist.
	Save(ctx context.Context, card *domain.Card) error

	// CreateIfAbsent inserts every card whose ID is not already present,
	// leaving existing records untouched so stored progress survives
	// re-seeding. The whole batch runs in one transaction. Returns the
	// number of cards actually inserted.
	CreateIfAbsent(ctx context.Context, cards []*domain.Card) (int, error)

	// ListDue retrieves cards in the given deck set whose next review
	// date is at or before the cutoff, ordered by ascending next review
	// date (ties broken by id for a stable order), capped at limit.
	// An empty result is not an error: no cards are due.
	ListDue(ctx context.Context, deckIDs []string, cutoff time.Time, limit int) ([]*domain.Card, error)

	// CountDue reports how many cards in the deck set are due at the cutoff.
	CountDue(ctx context.Context, deckIDs []string, cutoff time.Time) (int, error)

	// WithTx returns a new CardStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) CardStore
}
