package review

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/pkarhu/rehearse/internal/domain"
	"github.com/pkarhu/rehearse/internal/domain/srs"
	"github.com/pkarhu/rehearse/internal/platform/sqldb"
	"github.com/pkarhu/rehearse/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testService wires a ReviewService over a fresh in-memory database with a
// fixed clock and a seeded rng.
type testService struct {
	svc   ReviewService
	impl  *reviewServiceImpl
	db    *sql.DB
	cards store.CardStore
}

func newTestService(t *testing.T, cfg Config) *testService {
	t.Helper()

	db, err := sqldb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := discardLogger()
	cardStore := sqldb.NewCardStore(db, log)
	logStore := sqldb.NewReviewLogStore(db, log)

	svc := NewReviewService(
		db,
		cardStore,
		logStore,
		srs.NewDefaultService(),
		cfg,
		rand.New(rand.NewSource(42)),
		log,
	)
	impl := svc.(*reviewServiceImpl)
	impl.now = func() time.Time { return testTime }

	return &testService{svc: svc, impl: impl, db: db, cards: cardStore}
}

// seedCard inserts a card with a chosen due date and direction policy.
func (ts *testService) seedCard(t *testing.T, deckID, cardID string, due time.Time, allowSwitch bool) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(deckID, cardID, cardID+"-front", cardID+"-back", allowSwitch, due)
	require.NoError(t, err)
	card.NextReviewDate = due

	n, err := ts.cards.CreateIfAbsent(context.Background(), []*domain.Card{card})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return card
}

func (ts *testService) reviewLogCount(t *testing.T) int {
	t.Helper()

	var count int
	err := ts.db.QueryRow("SELECT COUNT(*) FROM review_logs").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestStartSessionNoDecks(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})

	prompt, err := ts.svc.StartSession(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoDecksSelected)
	assert.Nil(t, prompt)
}

func TestCurrentPromptWithoutSession(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})

	prompt, err := ts.svc.CurrentPrompt(context.Background())

	require.ErrorIs(t, err, ErrNoActiveSession)
	assert.Nil(t, prompt)
}

func TestStartSessionNothingDue(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(24*time.Hour), false)

	prompt, err := ts.svc.StartSession(context.Background(), []string{"spanish"})

	require.ErrorIs(t, err, ErrNoCardsDue)
	assert.Nil(t, prompt)
}

func TestSessionGradeGoodFlow(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(-time.Hour), false)

	prompt, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)
	require.NotNil(t, prompt)
	assert.Equal(t, "spanish#hola", prompt.Card.ID)
	assert.Equal(t, domain.DirectionFront, prompt.AskedDirection)
	assert.Equal(t, 1, prompt.Remaining)

	// First success schedules minutes ahead, so nothing else is due.
	next, err := ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeGood})
	require.ErrorIs(t, err, ErrNoCardsDue)
	assert.Nil(t, next)

	stored, err := ts.cards.GetByID(context.Background(), "spanish#hola")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Repetition)
	assert.Equal(t, 1.0, stored.Interval)
	assert.Equal(t, 2.6, stored.EaseFactor)
	assert.Equal(t, testTime.Add(10*time.Minute), stored.NextReviewDate)

	assert.Equal(t, 1, ts.reviewLogCount(t), "one review log entry per graded answer")
}

func TestSubmitAnswerAgainResurfacesAfterDelay(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(-time.Hour), false)

	_, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)

	next, err := ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeAgain})
	require.ErrorIs(t, err, ErrNoCardsDue, "again schedules one minute out, not immediately")
	assert.Nil(t, next)

	stored, err := ts.cards.GetByID(context.Background(), "spanish#hola")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Repetition)
	assert.Equal(t, testTime.Add(time.Minute), stored.NextReviewDate)

	// Two minutes later the card is back.
	ts.impl.now = func() time.Time { return testTime.Add(2 * time.Minute) }
	prompt, err := ts.svc.CurrentPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "spanish#hola", prompt.Card.ID)
}

func TestSessionScopedToSelectedDecks(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(-time.Hour), false)
	ts.seedCard(t, "french", "bonjour", testTime.Add(-2*time.Hour), false)

	prompt, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)
	assert.Equal(t, "spanish#hola", prompt.Card.ID, "cards outside the session's deck set are invisible")
	assert.Equal(t, 1, prompt.Remaining)

	_, err = ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeGood})
	require.ErrorIs(t, err, ErrNoCardsDue)

	// The other deck's card was never touched.
	other, err := ts.cards.GetByID(context.Background(), "french#bonjour")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Repetition)
	assert.Equal(t, testTime.Add(-2*time.Hour), other.NextReviewDate)
}

func TestDueWindowWidensCutoff(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{DueWindow: 15 * time.Minute})
	ts.seedCard(t, "spanish", "hola", testTime.Add(10*time.Minute), false)

	prompt, err := ts.svc.StartSession(context.Background(), []string{"spanish"})

	require.NoError(t, err)
	assert.Equal(t, "spanish#hola", prompt.Card.ID, "a card due inside the window counts as due")
}

func TestSubmitAnswerWithoutActiveCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(24*time.Hour), false)

	_, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.ErrorIs(t, err, ErrNoCardsDue)

	next, err := ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeGood})

	require.ErrorIs(t, err, ErrNoActiveCard)
	assert.Nil(t, next)
	assert.Equal(t, 0, ts.reviewLogCount(t))
}

func TestSubmitAnswerInvalidGrade(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime.Add(-time.Hour), false)

	_, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)

	next, err := ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: "easy"})

	require.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Nil(t, next)

	// The card is still current and its stored state is untouched.
	prompt, err := ts.svc.CurrentPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "spanish#hola", prompt.Card.ID)
	assert.Equal(t, 0, ts.reviewLogCount(t))
}

func TestCurrentPromptIsStable(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ts.seedCard(t, "spanish", "hola", testTime, false)
	ts.seedCard(t, "spanish", "gracias", testTime, false)
	ts.seedCard(t, "spanish", "adios", testTime, false)

	first, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ts.svc.CurrentPrompt(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first.Card.ID, again.Card.ID, "polling must not reshuffle the current card")
		assert.Equal(t, first.AskedDirection, again.AskedDirection)
	}
}

func TestSessionWorksThroughAllTies(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ts := newTestService(t, Config{})
	ids := map[string]bool{"spanish#hola": true, "spanish#gracias": true, "spanish#adios": true}
	for id := range ids {
		ts.seedCard(t, "spanish", id[len("spanish#"):], testTime.Add(-time.Hour), false)
	}

	prompt, err := ts.svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)

	seen := make(map[string]bool)
	remaining := 3
	for {
		assert.True(t, ids[prompt.Card.ID], "selected card %s is not in the due set", prompt.Card.ID)
		assert.False(t, seen[prompt.Card.ID], "card %s was asked twice in one pass", prompt.Card.ID)
		assert.Equal(t, remaining, prompt.Remaining)
		seen[prompt.Card.ID] = true
		remaining--

		prompt, err = ts.svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeGood})
		if errors.Is(err, ErrNoCardsDue) {
			break
		}
		require.NoError(t, err)
	}

	assert.Len(t, seen, 3, "every due card is asked exactly once before the session drains")
	assert.Equal(t, 3, ts.reviewLogCount(t))
}

// failingCardStore wraps mock expectations around the CardStore interface
// for the write-failure path.
type failingCardStore struct {
	mock.Mock
}

func (m *failingCardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *failingCardStore) Save(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *failingCardStore) CreateIfAbsent(ctx context.Context, cards []*domain.Card) (int, error) {
	args := m.Called(ctx, cards)
	return args.Int(0), args.Error(1)
}

func (m *failingCardStore) ListDue(
	ctx context.Context,
	deckIDs []string,
	cutoff time.Time,
	limit int,
) ([]*domain.Card, error) {
	args := m.Called(ctx, deckIDs, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *failingCardStore) CountDue(ctx context.Context, deckIDs []string, cutoff time.Time) (int, error) {
	args := m.Called(ctx, deckIDs, cutoff)
	return args.Int(0), args.Error(1)
}

func (m *failingCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}

type noopLogStore struct{}

func (noopLogStore) Create(ctx context.Context, log *domain.ReviewLog) error { return nil }
func (s noopLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore               { return s }

func TestSubmitAnswerSaveFailureKeepsCurrentCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	db, err := sqldb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	card, err := domain.NewCard("spanish", "hola", "hola", "hello", false, testTime.Add(-time.Hour))
	require.NoError(t, err)

	saveErr := errors.New("disk full")
	cards := new(failingCardStore)
	cards.On("ListDue", mock.Anything, []string{"spanish"}, mock.Anything, dueListLimit).
		Return([]*domain.Card{card}, nil)
	cards.On("CountDue", mock.Anything, []string{"spanish"}, mock.Anything).Return(1, nil)
	cards.On("Save", mock.Anything, mock.Anything).Return(saveErr)

	svc := NewReviewService(db, cards, noopLogStore{}, srs.NewDefaultService(),
		Config{}, rand.New(rand.NewSource(1)), discardLogger())
	svc.(*reviewServiceImpl).now = func() time.Time { return testTime }

	_, err = svc.StartSession(context.Background(), []string{"spanish"})
	require.NoError(t, err)

	next, err := svc.SubmitAnswer(context.Background(), ReviewAnswer{Grade: domain.ReviewGradeGood})

	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr, "the write failure must surface to the caller")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "submit_answer", svcErr.Operation)
	assert.Nil(t, next)

	// The failed answer did not advance the session.
	prompt, err := svc.CurrentPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, card.ID, prompt.Card.ID)
	cards.AssertExpectations(t)
}
