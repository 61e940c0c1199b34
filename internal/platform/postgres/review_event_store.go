package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// PostgresReviewEventStore implements the store.ReviewEventStore interface
// using a PostgreSQL database as the storage backend. The study_logs table
// is append-only; this store exposes no update or delete.
type PostgresReviewEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewEventStore creates a new PostgreSQL implementation of the
// ReviewEventStore interface. If logger is nil, a default logger is used.
func NewPostgresReviewEventStore(db store.DBTX, logger *slog.Logger) *PostgresReviewEventStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_event_store")),
	}
}

// Ensure PostgresReviewEventStore implements store.ReviewEventStore interface
var _ store.ReviewEventStore = (*PostgresReviewEventStore)(nil)

// Append implements store.ReviewEventStore.Append.
func (s *PostgresReviewEventStore) Append(ctx context.Context, event *domain.ReviewEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_logs
			(id, user_id, card_id, deck_id, rating, is_correct, mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.CardID,
		event.DeckID,
		string(event.Rating),
		event.IsCorrect,
		string(event.Mode),
		event.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrCardNotFound
		}
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return store.NewStoreError("review_event", "append", "failed to append review event", err)
	}

	return nil
}

// RecentReviewDays implements store.ReviewEventStore.RecentReviewDays.
func (s *PostgresReviewEventStore) RecentReviewDays(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day
		FROM study_logs
		WHERE user_id = $1
		ORDER BY day DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list review days: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan review day: %w", err)
		}
		days = append(days, day.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review days: %w", err)
	}

	return days, nil
}

// CountCorrectByDeck implements store.ReviewEventStore.CountCorrectByDeck.
func (s *PostgresReviewEventStore) CountCorrectByDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM study_logs
		WHERE user_id = $1 AND deck_id = $2 AND is_correct`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, deckID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count correct reviews: %w", err)
	}

	return count, nil
}

// WithTx implements store.ReviewEventStore.WithTx.
func (s *PostgresReviewEventStore) WithTx(tx *sql.Tx) store.ReviewEventStore {
	return &PostgresReviewEventStore{
		db:     tx,
		logger: s.logger,
	}
}
