package srs

import (
	"github.com/ayumu838/kotoba-api/internal/domain"
)

// Params defines the configurable parameters of the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the lower bound the ease factor can never fall below.
	// There is deliberately no upper bound: repeated "easy" ratings may grow
	// the ease factor (and intervals) without limit.
	MinEaseFactor float64

	// RatingQuality maps each rating to a recall quality on the 0-5 SM-2
	// scale. The formula is defined over the full scale even though the UI
	// only ever produces three of its values.
	RatingQuality map[domain.Rating]int

	// FirstInterval is the interval in days after the first successful review.
	FirstInterval int

	// SecondIntervalNormal and SecondIntervalEasy are the fixed intervals in
	// days after the second consecutive successful review. Fixed early
	// intervals keep the schedule stable before the ease factor has had a
	// chance to adjust.
	SecondIntervalNormal int
	SecondIntervalEasy   int

	// FailureInterval is the interval in days after a failed review.
	FailureInterval int
}

// NewDefaultParams returns the standard parameter set.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: domain.MinEaseFactor,

		RatingQuality: map[domain.Rating]int{
			domain.RatingEasy:   5,
			domain.RatingNormal: 3,
			domain.RatingHard:   1,
		},

		FirstInterval:        1,
		SecondIntervalNormal: 3,
		SecondIntervalEasy:   5,
		FailureInterval:      1,
	}
}

// ParamsConfig allows overriding individual defaults when constructing Params.
// Zero-valued fields keep their defaults.
type ParamsConfig struct {
	MinEaseFactor float64

	EasyQuality   int
	NormalQuality int
	HardQuality   int

	FirstInterval        int
	SecondIntervalNormal int
	SecondIntervalEasy   int
	FailureInterval      int
}

// NewParams creates a Params instance from defaults overridden by config.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}

	if config.EasyQuality > 0 {
		params.RatingQuality[domain.RatingEasy] = config.EasyQuality
	}
	if config.NormalQuality > 0 {
		params.RatingQuality[domain.RatingNormal] = config.NormalQuality
	}
	if config.HardQuality > 0 {
		params.RatingQuality[domain.RatingHard] = config.HardQuality
	}

	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondIntervalNormal > 0 {
		params.SecondIntervalNormal = config.SecondIntervalNormal
	}
	if config.SecondIntervalEasy > 0 {
		params.SecondIntervalEasy = config.SecondIntervalEasy
	}
	if config.FailureInterval > 0 {
		params.FailureInterval = config.FailureInterval
	}

	return params
}
