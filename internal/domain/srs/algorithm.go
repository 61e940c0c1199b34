package srs

import (
	"math"
	"time"

	"github.com/ayumu838/kotoba-api/internal/domain"
)

// SM-2 quality thresholds. A review below rememberedQuality is a failure
// and resets the repetition streak; perfectQuality selects the longer fixed
// interval on the second repetition.
const (
	rememberedQuality = 3
	perfectQuality    = 5
)

// Schedule is the scheduler's pure input/output triple: the part of a
// ReviewState the algorithm reads and replaces.
type Schedule struct {
	EaseFactor  float64
	Interval    int
	Repetitions int
}

// calculateNewEaseFactor applies the SM-2 ease update for the given recall
// quality:
//
//	newEase = max(floor, oldEase + 0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// The (5-q)^2 term penalizes low quality quadratically, so a run of "hard"
// ratings drives the ease factor down much faster than "easy" ratings raise
// it. The ease factor is updated on every review, including failures, and is
// clamped below at params.MinEaseFactor. No upper clamp is applied.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	miss := float64(perfectQuality - quality)
	newEF := currentEF + 0.1 - miss*(0.08+miss*0.02)

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// NextSchedule computes the schedule after one review of recall quality q.
//
// A quality below the remembered threshold is a failure: the repetition
// streak resets and the card comes back after params.FailureInterval days,
// but the ease factor keeps the penalty applied above rather than being
// reset to its default.
//
// Successful reviews increment the streak. The first two repetitions use
// fixed intervals; from the third onward the interval grows multiplicatively
// by the newly computed ease factor.
//
// The function is total over the 0-5 quality domain and has no error cases.
func NextSchedule(current Schedule, quality int, params *Params) Schedule {
	newEase := calculateNewEaseFactor(current.EaseFactor, quality, params)

	if quality < rememberedQuality {
		return Schedule{
			EaseFactor:  newEase,
			Interval:    params.FailureInterval,
			Repetitions: 0,
		}
	}

	repetitions := current.Repetitions + 1

	var interval int
	switch {
	case repetitions == 1:
		interval = params.FirstInterval
	case repetitions == 2:
		if quality >= perfectQuality {
			interval = params.SecondIntervalEasy
		} else {
			interval = params.SecondIntervalNormal
		}
	default:
		interval = int(math.Round(float64(current.Interval) * newEase))
	}

	return Schedule{
		EaseFactor:  newEase,
		Interval:    interval,
		Repetitions: repetitions,
	}
}

// calculateNextState builds the full ReviewState after a review, following
// the immutable update pattern: the input state is never modified.
func calculateNextState(
	state *domain.ReviewState,
	rating domain.Rating,
	now time.Time,
	params *Params,
) *domain.ReviewState {
	quality := params.RatingQuality[rating]

	next := NextSchedule(Schedule{
		EaseFactor:  state.EaseFactor,
		Interval:    state.Interval,
		Repetitions: state.Repetitions,
	}, quality, params)

	return &domain.ReviewState{
		UserID:         state.UserID,
		CardID:         state.CardID,
		EaseFactor:     next.EaseFactor,
		Interval:       next.Interval,
		Repetitions:    next.Repetitions,
		LastReviewedAt: now,
		NextReviewAt:   now.AddDate(0, 0, next.Interval),
	}
}
