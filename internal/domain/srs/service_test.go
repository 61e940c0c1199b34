package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

func TestCalculateNextReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	state, err := domain.NewReviewState(uuid.New(), uuid.New())
	require.NoError(t, err)

	next, err := service.CalculateNextReview(state, domain.RatingNormal, now)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Repetitions)
	assert.Equal(t, 1, next.Interval)
	assert.InDelta(t, 2.36, next.EaseFactor, 1e-9)
	assert.True(t, next.NextReviewAt.Equal(now.AddDate(0, 0, 1)))
	assert.NoError(t, next.Validate())
}

func TestCalculateNextReviewNilState(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	_, err := service.CalculateNextReview(nil, domain.RatingNormal, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilState)
}

func TestCalculateNextReviewInvalidRating(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	state, err := domain.NewReviewState(uuid.New(), uuid.New())
	require.NoError(t, err)

	for _, rating := range []domain.Rating{"", "good", "EASY", "medium"} {
		_, err := service.CalculateNextReview(state, rating, time.Now().UTC())
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %q", rating)
	}
}

func TestCalculateNextReviewCustomParams(t *testing.T) {
	t.Parallel()
	service := NewServiceWithParams(NewParams(ParamsConfig{
		SecondIntervalNormal: 4,
	}))
	now := time.Now().UTC()

	state := &domain.ReviewState{
		UserID:      uuid.New(),
		CardID:      uuid.New(),
		EaseFactor:  2.36,
		Interval:    1,
		Repetitions: 1,
	}

	next, err := service.CalculateNextReview(state, domain.RatingNormal, now)
	require.NoError(t, err)
	assert.Equal(t, 4, next.Interval)
}
