package srs

import (
	"fmt"
	"math"
	"time"
)

// Params tunes the SM-2 variant. All callers should start from
// DefaultParams and override only what they need.
type Params struct {
	DefaultEase      float64
	MinEase          float64
	MaxEase          float64
	FailIntervalDays int
	MaxIntervalDays  int
}

// DefaultParams returns the stock SM-2 tuning.
func DefaultParams() Params {
	return Params{
		DefaultEase:      2.5,
		MinEase:          1.3,
		MaxEase:          3.0,
		FailIntervalDays: 1,
		MaxIntervalDays:  180,
	}
}

// Review is the scheduling output for one answered exercise.
type Review struct {
	EaseFactor   float64
	IntervalDays int
	DueAt        time.Time
}

// Schedule applies the SM-2 update to an existing ease factor and interval.
// quality follows the SM-2 convention: 0-2 is a failed recall, 3-5 a
// successful one. A quality outside 0-5 is a programming error and panics
// rather than being clamped.
func Schedule(ease float64, intervalDays int, quality int, now time.Time, p Params) Review {
	if quality < 0 || quality > 5 {
		panic(fmt.Sprintf("srs: quality %d out of range [0,5]", quality))
	}

	q := float64(quality)
	ef := ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < p.MinEase {
		ef = p.MinEase
	}
	if ef > p.MaxEase {
		ef = p.MaxEase
	}

	var interval int
	switch {
	case quality < 3:
		// Failed recall resets spacing entirely.
		interval = p.FailIntervalDays
	case intervalDays <= 1:
		interval = 1
	case intervalDays == 2:
		interval = 6
	default:
		interval = int(math.Round(float64(intervalDays) * ef))
	}
	if interval > p.MaxIntervalDays {
		interval = p.MaxIntervalDays
	}

	return Review{
		EaseFactor:   ef,
		IntervalDays: interval,
		DueAt:        now.AddDate(0, 0, interval),
	}
}

// EstimateQuality maps a graded answer plus timing onto the discrete SM-2
// quality scale. Wrong answers always map to 2 ("fail, remembered after
// seeing"); correct answers split three ways on the spent/expected ratio.
// The coarse split is deliberate: sub-second timing precision carries no
// signal worth feeding into spacing decisions.
func EstimateQuality(correct bool, spentSeconds, expectedSeconds float64) int {
	if !correct {
		return 2
	}
	if expectedSeconds <= 0 {
		return 4
	}
	switch ratio := spentSeconds / expectedSeconds; {
	case ratio < 0.5:
		return 5
	case ratio < 1.0:
		return 4
	default:
		return 3
	}
}
