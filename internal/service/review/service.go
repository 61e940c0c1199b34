// Package review wires the scheduling core to persistence: it builds study
// sessions and quizzes from stored cards and review states, and processes
// review submissions.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ayumu838/kotoba-api/internal/domain"
	"github.com/ayumu838/kotoba-api/internal/session"
)

// Submission is one review interaction from the client: a flashcard flip or
// a quiz answer.
type Submission struct {
	CardID    uuid.UUID        `json:"card_id"`
	Rating    domain.Rating    `json:"rating"`
	IsCorrect bool             `json:"is_correct"`
	Mode      domain.StudyMode `json:"mode"`
}

// Service provides study session building, quiz generation, and review
// submission over a user's card pool.
type Service interface {
	// DeckSession builds a flashcard session for one deck. The deck must be
	// owned by the user or public.
	//
	// Returns ErrDeckNotFound if the deck does not exist and
	// ErrDeckAccessDenied if the user may not study it. An empty deck yields
	// an empty session, never an error.
	DeckSession(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)

	// AllSession builds a flashcard session across all of the user's decks.
	AllSession(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// Quiz builds a weighted multiple-choice quiz from the user's whole card
	// pool. Returns ErrNotEnoughCards when the pool has fewer than
	// session.QuizMinCards cards.
	Quiz(ctx context.Context, userID uuid.UUID) ([]session.Question, error)

	// SubmitReview validates the submission, verifies card ownership, runs
	// the scheduler, upserts the card's review state and appends one review
	// event. Returns the updated state.
	//
	// Returns ErrInvalidRating or ErrInvalidMode before any scheduling or
	// storage work happens, ErrCardNotFound if the card does not exist, and
	// ErrCardNotOwned if the card belongs to another user.
	SubmitReview(ctx context.Context, userID uuid.UUID, sub Submission) (*domain.ReviewState, error)
}

// Common error types for the review service
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckAccessDenied indicates the deck is private and owned by someone else.
	ErrDeckAccessDenied = errors.New("deck is not accessible to this user")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidRating indicates an unknown rating value was submitted.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidMode indicates an unknown study mode was submitted.
	ErrInvalidMode = errors.New("invalid study mode")

	// ErrNotEnoughCards indicates the card pool is too small to build a quiz.
	ErrNotEnoughCards = errors.New("not enough cards to build a quiz")
)

// ServiceError wraps errors from the review service with the operation that
// failed, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
