package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkarhu/rehearse/internal/deck"
	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/platform/logger"
	"github.com/pkarhu/rehearse/internal/store"
)

// SeederError is a custom error type for deck seeding failures.
type SeederError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SeederError.
func (e *SeederError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck seeder %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck seeder %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SeederError) Unwrap() error {
	return e.Err
}

// NewSeederError creates a new SeederError.
func NewSeederError(operation, message string, err error) *SeederError {
	return &SeederError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// DeckSeeder materializes parsed deck files as stored cards. Seeding is
// idempotent: cards that already exist keep their scheduling progress, and
// re-seeding the same decks writes nothing.
type DeckSeeder struct {
	db        *sql.DB
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckSeeder creates a new DeckSeeder.
func NewDeckSeeder(db *sql.DB, cardStore store.CardStore, logger *slog.Logger) *DeckSeeder {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckSeeder{
		db:        db,
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "deck_seeder")),
	}
}

// SeedDecks ensures every card in the given decks exists in the store with
// default scheduling state. Returns the number of cards actually inserted.
// All inserts run in a single transaction.
func (s *DeckSeeder) SeedDecks(ctx context.Context, decks []*deck.Deck, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := buildCards(decks, now)
	if err != nil {
		return 0, NewSeederError("seed_decks", "failed to build cards", err)
	}

	if len(cards) == 0 {
		log.Debug("no cards to seed")
		return 0, nil
	}

	var inserted int
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.cardStore.WithTx(tx).CreateIfAbsent(ctx, cards)
		if err != nil {
			return err
		}
		inserted = n
		return nil
	})
	if err != nil {
		log.Error("failed to seed decks",
			slog.String("error", err.Error()),
			slog.Int("card_count", len(cards)))
		return 0, NewSeederError("seed_decks", "failed to save cards", err)
	}

	log.Info("seeded decks",
		slog.Int("deck_count", len(decks)),
		slog.Int("card_count", len(cards)),
		slog.Int("inserted", inserted))
	return inserted, nil
}

// buildCards turns parsed decks into default-state domain cards. Card ids
// are qualified with the deck id so the same card id can appear in
// different decks without colliding.
func buildCards(decks []*deck.Deck, now time.Time) ([]*domain.Card, error) {
	var cards []*domain.Card
	for _, d := range decks {
		for _, c := range d.Cards {
			card, err := domain.NewCard(d.ID, c.ID, c.Front, c.Back, d.AllowDirectionChange, now)
			if err != nil {
				return nil, fmt.Errorf("deck %s card %s: %w", d.ID, c.ID, err)
			}
			card.AudioFront = c.AudioFront
			card.AudioBack = c.AudioBack
			cards = append(cards, card)
		}
	}
	return cards, nil
}
