package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudyMode identifies which review surface produced a review event.
type StudyMode string

// Possible study mode values
const (
	StudyModeFlashcard   StudyMode = "flashcard"
	StudyModeFillInBlank StudyMode = "fill_in_blank"
)

// IsValid reports whether the mode is one of the known values.
func (m StudyMode) IsValid() bool {
	switch m {
	case StudyModeFlashcard, StudyModeFillInBlank:
		return true
	default:
		return false
	}
}

// Common validation errors for ReviewEvent
var (
	ErrEmptyEventUserID = errors.New("review event user ID cannot be empty")
	ErrEmptyEventCardID = errors.New("review event card ID cannot be empty")
	ErrEmptyEventDeckID = errors.New("review event deck ID cannot be empty")
	ErrInvalidRating    = errors.New("invalid rating")
	ErrInvalidStudyMode = errors.New("invalid study mode")
)

// ReviewEvent is one entry in the append-only review log. Events are never
// mutated after being written; they are the audit trail of scheduler inputs
// and the raw material for streak and progress analytics.
type ReviewEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CardID    uuid.UUID `json:"card_id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Rating    Rating    `json:"rating"`
	IsCorrect bool      `json:"is_correct"`
	Mode      StudyMode `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewEvent creates a review event with a generated ID and the current
// time. Returns an error if validation fails.
func NewReviewEvent(
	userID, cardID, deckID uuid.UUID,
	rating Rating,
	isCorrect bool,
	mode StudyMode,
) (*ReviewEvent, error) {
	event := &ReviewEvent{
		ID:        uuid.New(),
		UserID:    userID,
		CardID:    cardID,
		DeckID:    deckID,
		Rating:    rating,
		IsCorrect: isCorrect,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the ReviewEvent has valid data.
func (e *ReviewEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEventUserID
	}

	if e.CardID == uuid.Nil {
		return ErrEmptyEventCardID
	}

	if e.DeckID == uuid.Nil {
		return ErrEmptyEventDeckID
	}

	if !e.Rating.IsValid() {
		return ErrInvalidRating
	}

	if !e.Mode.IsValid() {
		return ErrInvalidStudyMode
	}

	return nil
}
