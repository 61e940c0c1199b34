package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// ReviewStateStore persists per-card scheduling state. At most one row
// exists per (user, card) pair; concurrent writers converge to
// last-write-wins through the upsert.
type ReviewStateStore interface {
	// Get retrieves the review state for a (user, card) pair.
	// Returns ErrReviewStateNotFound if the card has never been reviewed.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)

	// GetByUser retrieves all of a user's review states keyed by card ID.
	// Cards never reviewed simply have no entry.
	GetByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.ReviewState, error)

	// Upsert inserts or replaces the review state for its (user, card) pair.
	// It handles domain validation internally and returns validation errors
	// wrapped in ErrInvalidEntity if the state is invalid.
	Upsert(ctx context.Context, state *domain.ReviewState) error

	// WithTx returns a ReviewStateStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewStateStore
}

// ReviewEventStore persists the append-only review log. Events are never
// updated or deleted.
type ReviewEventStore interface {
	// Append writes one review event.
	// It handles domain validation internally.
	Append(ctx context.Context, event *domain.ReviewEvent) error

	// RecentReviewDays returns the distinct UTC days (midnight-truncated) on
	// which the user reviewed at least one card, newest first, up to limit.
	RecentReviewDays(ctx context.Context, userID uuid.UUID, limit int) ([]time.Time, error)

	// CountCorrectByDeck returns the number of correct reviews the user has
	// logged against a deck.
	CountCorrectByDeck(ctx context.Context, userID, deckID uuid.UUID) (int, error)

	// WithTx returns a ReviewEventStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewEventStore
}
