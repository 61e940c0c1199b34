// Package srs implements the spaced-repetition scheduling algorithm, an
// SM-2 variant collapsed onto the three-button UI rating scale.
package srs

import (
	"errors"
	"time"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// Common errors
var (
	ErrNilState      = errors.New("review state cannot be nil")
	ErrInvalidRating = errors.New("invalid rating")
)

// Service defines the interface for scheduling operations.
type Service interface {
	// CalculateNextReview computes the review state after one review.
	// The returned state is a new instance; the input is never modified.
	CalculateNextReview(
		state *domain.ReviewState,
		rating domain.Rating,
		now time.Time,
	) (*domain.ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface. It validates its
// inputs and delegates to the pure scheduling functions; the algorithm
// itself has no error cases.
func (s *defaultService) CalculateNextReview(
	state *domain.ReviewState,
	rating domain.Rating,
	now time.Time,
) (*domain.ReviewState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	return calculateNextState(state, rating, now, s.params), nil
}
