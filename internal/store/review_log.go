package store

import (
	"context"
	"database/sql"

	"github.com/pkarhu/rehearse/internal/domain"
)

// ReviewLogStore defines the interface for review log persistence.
// Logs are append-only; the scheduler never reads them back.
type ReviewLogStore interface {
	// Create appends a review log entry.
	// Returns validation errors from the domain ReviewLog if data is invalid.
	Create(ctx context.Context, log *domain.ReviewLog) error

	// WithTx returns a new ReviewLogStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
