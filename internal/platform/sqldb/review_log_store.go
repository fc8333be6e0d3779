package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/store"
)

// ReviewLogStore implements the store.ReviewLogStore interface using a SQL
// database as the storage backend.
type ReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewLogStore creates a new SQL implementation of the ReviewLogStore
// interface. If logger is nil, a default logger will be used.
func NewReviewLogStore(db store.DBTX, logger *slog.Logger) *ReviewLogStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure ReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create.
func (s *ReviewLogStore) Create(ctx context.Context, log *domain.ReviewLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_logs (
			id, card_id, grade, asked_direction, repetition,
			interval_days, ease_factor, reviewed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID.String(),
		log.CardID,
		string(log.Grade),
		string(log.AskedDirection),
		log.Repetition,
		log.Interval,
		log.EaseFactor,
		log.ReviewedAt.UnixMilli(),
	)
	if err != nil {
		return store.NewStoreError("review_log", "create", "failed to insert review log", err)
	}

	return nil
}

// WithTx implements store.ReviewLogStore.WithTx.
func (s *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &ReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}
