package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/store"
)

// CardStore implements the store.CardStore interface using a SQL database
// as the storage backend.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new SQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// cardColumns is the column list every card query selects, in scanCard order.
const cardColumns = `id, deck_id, front, back, audio_front, audio_back,
	allow_direction_change, active_direction, repetition, interval_days,
	ease_factor, next_review_date`

// scanCard reads one card row. Timestamps are stored as milliseconds since
// epoch and surface as UTC times.
func scanCard(row interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var card domain.Card
	var direction string
	var nextReviewMillis int64

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.AudioFront,
		&card.AudioBack,
		&card.AllowDirectionChange,
		&direction,
		&card.Repetition,
		&card.Interval,
		&card.EaseFactor,
		&nextReviewMillis,
	)
	if err != nil {
		return nil, err
	}

	card.ActiveDirection = domain.Direction(direction)
	card.NextReviewDate = time.UnixMilli(nextReviewMillis).UTC()
	return &card, nil
}

// GetByID implements store.CardStore.GetByID.
// It retrieves a card by its deck-qualified ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *CardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM cards WHERE id = $1`, cardColumns)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("card", "get", "failed to query card", err)
	}

	return card, nil
}

// Save implements store.CardStore.Save.
// It writes back the scheduling fields only; identity fields are immutable
// after seeding and are deliberately absent from the UPDATE.
func (s *CardStore) Save(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards
		SET active_direction = $1,
			repetition = $2,
			interval_days = $3,
			ease_factor = $4,
			next_review_date = $5
		WHERE id = $6`,
		string(card.ActiveDirection),
		card.Repetition,
		card.Interval,
		card.EaseFactor,
		card.NextReviewDate.UnixMilli(),
		card.ID,
	)
	if err != nil {
		return store.NewStoreError("card", "save", "failed to update card", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("card", "save", "failed to read rows affected", err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// CreateIfAbsent implements store.CardStore.CreateIfAbsent.
// Existing rows are left untouched so that re-seeding a deck never clobbers
// stored progress. Returns the number of cards actually inserted.
func (s *CardStore) CreateIfAbsent(ctx context.Context, cards []*domain.Card) (int, error) {
	inserted := 0

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return inserted, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		result, err := s.db.ExecContext(ctx, `
			INSERT INTO cards (
				id, deck_id, front, back, audio_front, audio_back,
				allow_direction_change, active_direction, repetition,
				interval_days, ease_factor, next_review_date
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO NOTHING`,
			card.ID,
			card.DeckID,
			card.Front,
			card.Back,
			card.AudioFront,
			card.AudioBack,
			card.AllowDirectionChange,
			string(card.ActiveDirection),
			card.Repetition,
			card.Interval,
			card.EaseFactor,
			card.NextReviewDate.UnixMilli(),
		)
		if err != nil {
			return inserted, store.NewStoreError(
				"card",
				"create_if_absent",
				fmt.Sprintf("failed to insert card %s", card.ID),
				err,
			)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, store.NewStoreError(
				"card",
				"create_if_absent",
				"failed to read rows affected",
				err,
			)
		}
		inserted += int(rows)
	}

	return inserted, nil
}

// deckSetClause builds the placeholder list for a deck-id IN clause,
// continuing the numbering after the already-used placeholders.
func deckSetClause(deckIDs []string, firstPlaceholder int) (string, []any) {
	placeholders := make([]string, len(deckIDs))
	args := make([]any, len(deckIDs))
	for i, deckID := range deckIDs {
		placeholders[i] = fmt.Sprintf("$%d", firstPlaceholder+i)
		args[i] = deckID
	}
	return strings.Join(placeholders, ", "), args
}

// ListDue implements store.CardStore.ListDue.
// Results are ordered by ascending next review date with id as a stable
// tie-break, so the selector sees the earliest-due cards first.
func (s *CardStore) ListDue(
	ctx context.Context,
	deckIDs []string,
	cutoff time.Time,
	limit int,
) ([]*domain.Card, error) {
	if len(deckIDs) == 0 {
		return nil, nil
	}

	// Placeholders are numbered in order of appearance so the query binds
	// identically under both drivers.
	inClause, deckArgs := deckSetClause(deckIDs, 2)
	query := fmt.Sprintf(`
		SELECT %s FROM cards
		WHERE next_review_date <= $1 AND deck_id IN (%s)
		ORDER BY next_review_date ASC, id ASC
		LIMIT $%d`, cardColumns, inClause, len(deckIDs)+2)

	args := append([]any{cutoff.UnixMilli()}, deckArgs...)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("card", "list_due", "failed to query due cards", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", "list_due", "failed to scan card row", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list_due", "failed to iterate card rows", err)
	}

	return cards, nil
}

// CountDue implements store.CardStore.CountDue.
func (s *CardStore) CountDue(
	ctx context.Context,
	deckIDs []string,
	cutoff time.Time,
) (int, error) {
	if len(deckIDs) == 0 {
		return 0, nil
	}

	inClause, deckArgs := deckSetClause(deckIDs, 2)
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM cards
		WHERE next_review_date <= $1 AND deck_id IN (%s)`, inClause)

	args := append([]any{cutoff.UnixMilli()}, deckArgs...)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, store.NewStoreError("card", "count_due", "failed to count due cards", err)
	}

	return count, nil
}

// WithTx implements store.CardStore.WithTx.
// It returns a new CardStore that runs all operations on the given transaction.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{
		db:     tx,
		logger: s.logger,
	}
}
