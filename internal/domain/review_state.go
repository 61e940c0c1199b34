package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating is the learner's self-assessed recall quality for one review.
type Rating string

// Possible rating values. The UI exposes exactly these three buttons.
const (
	RatingEasy   Rating = "easy"
	RatingNormal Rating = "normal"
	RatingHard   Rating = "hard"
)

// IsValid reports whether the rating is one of the three known values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingEasy, RatingNormal, RatingHard:
		return true
	default:
		return false
	}
}

// Default scheduling values for a card that has never been reviewed.
// These seed the scheduler input when no ReviewState row exists yet.
const (
	DefaultEaseFactor = 2.5
	DefaultInterval   = 1
	MinEaseFactor     = 1.3
)

// Common validation errors for ReviewState
var (
	ErrEmptyStateUserID  = errors.New("review state user ID cannot be empty")
	ErrEmptyStateCardID  = errors.New("review state card ID cannot be empty")
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidRepetition = errors.New("repetitions must be greater than or equal to 0")
)

// ReviewState tracks a user's spaced-repetition scheduling state for a
// single card. At most one row exists per (user, card) pair; a card with no
// ReviewState has never been reviewed and is always due.
type ReviewState struct {
	UserID         uuid.UUID `json:"user_id"`
	CardID         uuid.UUID `json:"card_id"`
	EaseFactor     float64   `json:"ease_factor"` // >= 1.3, starts at 2.5
	Interval       int       `json:"interval"`    // days until the next review
	Repetitions    int       `json:"repetitions"` // consecutive non-failing reviews
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
}

// NewReviewState creates the scheduling state for a card that has never been
// reviewed. The zero LastReviewedAt marks the state as fresh and NextReviewAt
// is now, so the card is immediately due.
func NewReviewState(userID, cardID uuid.UUID) (*ReviewState, error) {
	now := time.Now().UTC()
	state := &ReviewState{
		UserID:       userID,
		CardID:       cardID,
		EaseFactor:   DefaultEaseFactor,
		Interval:     DefaultInterval,
		Repetitions:  0,
		NextReviewAt: now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks the ReviewState invariants.
func (s *ReviewState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStateCardID
	}

	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.Repetitions < 0 {
		return ErrInvalidRepetition
	}

	return nil
}

// IsDue reports whether the card should be presented for review at the given
// time. A card whose next review time has passed is due.
func (s *ReviewState) IsDue(now time.Time) bool {
	return !s.NextReviewAt.After(now)
}
