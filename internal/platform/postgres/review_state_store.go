package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
//
// The card_reviews table has a composite primary key on (user_id, card_id),
// so the upsert's ON CONFLICT clause gives the last-write-wins semantics the
// scheduler tolerates without any explicit row locking.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of the
// ReviewStateStore interface. If logger is nil, a default logger is used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

// Get implements store.ReviewStateStore.Get.
// Returns store.ErrReviewStateNotFound if the card has never been reviewed.
func (s *PostgresReviewStateStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.ReviewState, error) {
	query := `
		SELECT user_id, card_id, ease_factor, "interval", repetitions,
		       last_reviewed_at, next_review_at
		FROM card_reviews
		WHERE user_id = $1 AND card_id = $2`

	state, err := scanReviewState(s.db.QueryRowContext(ctx, query, userID, cardID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStateNotFound
		}
		return nil, fmt.Errorf("failed to get review state: %w", err)
	}

	return state, nil
}

// GetByUser implements store.ReviewStateStore.GetByUser.
func (s *PostgresReviewStateStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID]*domain.ReviewState, error) {
	query := `
		SELECT user_id, card_id, ease_factor, "interval", repetitions,
		       last_reviewed_at, next_review_at
		FROM card_reviews
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review states: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	states := make(map[uuid.UUID]*domain.ReviewState)
	for rows.Next() {
		state, err := scanReviewState(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review state: %w", err)
		}
		states[state.CardID] = state
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review states: %w", err)
	}

	return states, nil
}

// Upsert implements store.ReviewStateStore.Upsert. Inserting and replacing
// share one statement; racing writers simply overwrite each other, which is
// acceptable for scheduling state.
func (s *PostgresReviewStateStore) Upsert(ctx context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO card_reviews
			(user_id, card_id, ease_factor, "interval", repetitions,
			 last_reviewed_at, next_review_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			ease_factor      = EXCLUDED.ease_factor,
			"interval"       = EXCLUDED."interval",
			repetitions      = EXCLUDED.repetitions,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at   = EXCLUDED.next_review_at`

	var lastReviewedAt any
	if !state.LastReviewedAt.IsZero() {
		lastReviewedAt = state.LastReviewedAt
	}

	_, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.CardID,
		state.EaseFactor,
		state.Interval,
		state.Repetitions,
		lastReviewedAt,
		state.NextReviewAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrCardNotFound
		}
		return store.NewStoreError("review_state", "upsert", "failed to upsert review state", err)
	}

	return nil
}

// scanReviewState reads one review state row. last_reviewed_at is nullable;
// NULL maps to the zero time, meaning the state was seeded but never
// reviewed.
func scanReviewState(scan func(dest ...any) error) (*domain.ReviewState, error) {
	state := &domain.ReviewState{}
	var lastReviewedAt sql.NullTime

	err := scan(
		&state.UserID,
		&state.CardID,
		&state.EaseFactor,
		&state.Interval,
		&state.Repetitions,
		&lastReviewedAt,
		&state.NextReviewAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewedAt.Valid {
		state.LastReviewedAt = lastReviewedAt.Time
	}

	return state, nil
}

// WithTx implements store.ReviewStateStore.WithTx.
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}
