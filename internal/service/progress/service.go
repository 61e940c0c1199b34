// Package progress derives learning analytics from review states and the
// append-only review log: per-deck progress counts and the user's study
// streak.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/platform/logger"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// A card counts as learned once its review interval has grown to three
// weeks, the usual "mature card" threshold in spaced-repetition tooling.
const learnedIntervalDays = 21

// streakLookbackDays bounds how many distinct review days are fetched when
// computing a streak.
const streakLookbackDays = 366

// Common error types for the progress service
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckAccessDenied indicates the deck is private and owned by someone else.
	ErrDeckAccessDenied = errors.New("deck is not accessible to this user")
)

// DeckProgress summarizes how far a user has come with one deck.
type DeckProgress struct {
	DeckID         uuid.UUID `json:"deck_id"`
	TotalCards     int       `json:"total_cards"`
	Learned        int       `json:"learned"`  // state exists, interval >= 21 days
	Learning       int       `json:"learning"` // state exists, interval < 21 days
	Unseen         int       `json:"unseen"`   // never reviewed
	CorrectReviews int       `json:"correct_reviews"`
}

// Service computes progress analytics.
type Service interface {
	// DeckProgress returns per-deck card counts for the user. The deck must
	// be owned by the user or public.
	DeckProgress(ctx context.Context, userID, deckID uuid.UUID) (*DeckProgress, error)

	// Streak returns the length in days of the user's current study streak.
	// The streak anchors on today or yesterday (a streak is not broken until
	// a full day has been missed) and counts consecutive review days
	// backwards from there.
	Streak(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	deckStore  store.DeckStore
	cardStore  store.CardStore
	stateStore store.ReviewStateStore
	eventStore store.ReviewEventStore
	logger     *slog.Logger
}

// NewService creates a new progress Service implementation.
func NewService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	stateStore store.ReviewStateStore,
	eventStore store.ReviewEventStore,
	logger *slog.Logger,
) Service {
	if deckStore == nil || cardStore == nil || stateStore == nil || eventStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		deckStore:  deckStore,
		cardStore:  cardStore,
		stateStore: stateStore,
		eventStore: eventStore,
		logger:     logger.With(slog.String("component", "progress_service")),
	}
}

// DeckProgress implements Service.DeckProgress.
func (s *serviceImpl) DeckProgress(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*DeckProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if !deck.AccessibleBy(userID) {
		return nil, ErrDeckAccessDenied
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck cards: %w", err)
	}

	states, err := s.stateStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review states: %w", err)
	}

	correct, err := s.eventStore.CountCorrectByDeck(ctx, userID, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct reviews: %w", err)
	}

	result := &DeckProgress{DeckID: deckID, TotalCards: len(cards), CorrectReviews: correct}
	for _, card := range cards {
		state, ok := states[card.ID]
		switch {
		case !ok:
			result.Unseen++
		case state.Interval >= learnedIntervalDays:
			result.Learned++
		default:
			result.Learning++
		}
	}

	log.Debug("computed deck progress",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("total", result.TotalCards),
		slog.Int("learned", result.Learned))
	return result, nil
}

// Streak implements Service.Streak.
func (s *serviceImpl) Streak(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	days, err := s.eventStore.RecentReviewDays(ctx, userID, streakLookbackDays)
	if err != nil {
		return 0, fmt.Errorf("failed to load review days: %w", err)
	}

	return currentStreak(days, now), nil
}

// currentStreak counts consecutive review days walking backwards from the
// newest one. days must be distinct UTC midnights, newest first. A streak
// whose newest day is before yesterday is over and counts as zero.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)

	if days[0].Before(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}
