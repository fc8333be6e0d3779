package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/domain/srs"
	"github.com/pkarhu/rehearse/internal/platform/logger"
	"github.com/pkarhu/rehearse/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// dueListLimit caps how many due cards a single selection fetches. The
// exact-tie pool can never exceed one seeding batch, so this only needs to
// be comfortably larger than a deck.
const dueListLimit = 100

// Config carries the selection policy knobs.
type Config struct {
	// DueWindow widens the due cutoff to cards coming due within the
	// window. Zero means immediate-only.
	DueWindow time.Duration

	// SelectionPoolSize is the earliest-K pool for the randomized
	// tie-break. Zero selects among the exact ties at the earliest due
	// date.
	SelectionPoolSize int
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db         *sql.DB
	cardStore  store.CardStore
	logStore   store.ReviewLogStore
	srsService srs.Service
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time

	// mu guards the session state and the rng, which is not safe for
	// concurrent use.
	mu      sync.Mutex
	rng     *rand.Rand
	deckIDs []string
	current *domain.Card
	asked   domain.Direction
}

// NewReviewService creates a new ReviewService implementation. A nil rng
// gets a time-seeded one; tests inject a fixed seed to make selection
// deterministic.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	logStore store.ReviewLogStore,
	srsService srs.Service,
	cfg Config,
	rng *rand.Rand,
	log *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if logStore == nil {
		panic("logStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		db:         db,
		cardStore:  cardStore,
		logStore:   logStore,
		srsService: srsService,
		cfg:        cfg,
		logger:     log.With(slog.String("component", "review_service")),
		now:        time.Now,
		rng:        rng,
	}
}

// StartSession implements ReviewService.StartSession.
func (s *reviewServiceImpl) StartSession(ctx context.Context, deckIDs []string) (*Prompt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(deckIDs) == 0 {
		return nil, ErrNoDecksSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deckIDs = append([]string(nil), deckIDs...)
	s.current = nil

	log.Info("review session started", slog.Any("deck_ids", deckIDs))

	prompt, err := s.selectLocked(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCardsDue) {
			log.Debug("session started with nothing due")
			return nil, ErrNoCardsDue
		}
		return nil, NewStartSessionError("failed to select first card", err)
	}
	return prompt, nil
}

// CurrentPrompt implements ReviewService.CurrentPrompt.
func (s *reviewServiceImpl) CurrentPrompt(ctx context.Context) (*Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deckIDs == nil {
		return nil, ErrNoActiveSession
	}

	// A card already on display stays put; repeated polls must not
	// reshuffle. Only re-select when the last selection came up empty.
	if s.current != nil {
		remaining, err := s.countDueLocked(ctx)
		if err != nil {
			return nil, err
		}
		return &Prompt{Card: s.current.Clone(), AskedDirection: s.asked, Remaining: remaining}, nil
	}

	return s.selectLocked(ctx)
}

// SubmitAnswer implements ReviewService.SubmitAnswer.
func (s *reviewServiceImpl) SubmitAnswer(ctx context.Context, answer ReviewAnswer) (*Prompt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deckIDs == nil {
		return nil, ErrNoActiveSession
	}
	if s.current == nil {
		return nil, ErrNoActiveCard
	}
	if !answer.Grade.IsValid() {
		log.Warn("invalid review grade",
			slog.String("card_id", s.current.ID),
			slog.String("grade", string(answer.Grade)))
		return nil, ErrInvalidAnswer
	}

	now := s.now().UTC()
	updated, err := s.srsService.Grade(s.current, answer.Grade, s.asked, now)
	if err != nil {
		return nil, NewSubmitAnswerError("failed to compute new schedule", err)
	}

	reviewLog, err := domain.NewReviewLog(updated, answer.Grade, s.asked, now)
	if err != nil {
		return nil, NewSubmitAnswerError("failed to build review log", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cardStore.WithTx(tx).Save(ctx, updated); err != nil {
			return fmt.Errorf("failed to save card: %w", err)
		}
		if err := s.logStore.WithTx(tx).Create(ctx, reviewLog); err != nil {
			return fmt.Errorf("failed to record review: %w", err)
		}
		return nil
	})
	if err != nil {
		// The card on display is unchanged; the learner can retry.
		log.Error("failed to persist review",
			slog.String("error", err.Error()),
			slog.String("card_id", updated.ID))
		return nil, NewSubmitAnswerError("failed to persist review", err)
	}

	log.Debug("review recorded",
		slog.String("card_id", updated.ID),
		slog.String("grade", string(answer.Grade)),
		slog.String("asked_direction", string(s.asked)),
		slog.Int("repetition", updated.Repetition),
		slog.Float64("interval_days", updated.Interval),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Time("next_review_date", updated.NextReviewDate))

	s.current = nil
	return s.selectLocked(ctx)
}

// selectLocked fetches the due list and installs one card as the current
// prompt. Caller must hold s.mu.
func (s *reviewServiceImpl) selectLocked(ctx context.Context) (*Prompt, error) {
	cutoff := s.now().UTC().Add(s.cfg.DueWindow)

	cards, err := s.cardStore.ListDue(ctx, s.deckIDs, cutoff, dueListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	card := selectNextCard(cards, s.cfg.SelectionPoolSize, s.rng)
	if card == nil {
		s.current = nil
		return nil, ErrNoCardsDue
	}

	s.current = card
	s.asked = askedSide(card, s.rng)

	remaining, err := s.countDueLocked(ctx)
	if err != nil {
		return nil, err
	}

	return &Prompt{Card: card.Clone(), AskedDirection: s.asked, Remaining: remaining}, nil
}

// countDueLocked counts the cards still due under the session's cutoff.
// Caller must hold s.mu.
func (s *reviewServiceImpl) countDueLocked(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(s.cfg.DueWindow)
	count, err := s.cardStore.CountDue(ctx, s.deckIDs, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count due cards: %w", err)
	}
	return count, nil
}
