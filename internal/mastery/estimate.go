// Package mastery estimates a learner's command of a single taxonomy node
// from their attempt record, blending lifetime accuracy with recent
// performance, difficulty-weighted accuracy and outcome consistency.
package mastery

import (
	"math"

	"github.com/adaptly/practicekit/internal/models"
)

// RecentWindow is the number of most-recent outcomes the estimator looks at.
const RecentWindow = 10

// DefaultAttemptFloor is the minimum lifetime attempts before any mastery is
// reported. Below it the estimate is pinned to zero.
const DefaultAttemptFloor = 3

// Weights blends the four accuracy signals. They must sum to 1.
type Weights struct {
	Base        float64
	Recent      float64
	Difficulty  float64
	Consistency float64
}

// DefaultWeights returns the canonical blend.
func DefaultWeights() Weights {
	return Weights{Base: 0.30, Recent: 0.35, Difficulty: 0.25, Consistency: 0.10}
}

// Input carries the per-node attempt record the estimate is computed from.
// Recent holds the newest outcome last; only the trailing RecentWindow
// entries are considered.
type Input struct {
	Attempted    int
	Correct      int
	Recent       []bool
	ByDifficulty map[int]models.DifficultyStat
}

// Estimate computes a 0-100 mastery score. With fewer than attemptFloor
// lifetime attempts the score is exactly 0: a couple of lucky answers say
// nothing about mastery yet.
func Estimate(in Input, w Weights, attemptFloor int) float64 {
	if in.Attempted < attemptFloor || in.Attempted == 0 {
		return 0
	}

	base := float64(in.Correct) / float64(in.Attempted)

	recent := in.Recent
	if len(recent) > RecentWindow {
		recent = recent[len(recent)-RecentWindow:]
	}

	recentAcc := base
	consistency := 0.0
	if len(recent) > 0 {
		hits := 0
		for _, ok := range recent {
			if ok {
				hits++
			}
		}
		recentAcc = float64(hits) / float64(len(recent))
		consistency = consistencyOf(recent, recentAcc)
	}

	diffWeighted := difficultyWeighted(in.ByDifficulty, base)

	score := 100 * (w.Base*base + w.Recent*recentAcc + w.Difficulty*diffWeighted + w.Consistency*consistency)
	return clamp(score, 0, 100)
}

// difficultyWeighted gives harder buckets proportionally more influence:
// each attempted bucket contributes its accuracy at weight bucket*0.5.
// With no bucket data it falls back to lifetime accuracy.
func difficultyWeighted(stats map[int]models.DifficultyStat, fallback float64) float64 {
	var sum, total float64
	for bucket, st := range stats {
		if st.Attempted == 0 {
			continue
		}
		weight := float64(bucket) * 0.5
		sum += weight * float64(st.Correct) / float64(st.Attempted)
		total += weight
	}
	if total == 0 {
		return fallback
	}
	return sum / total
}

// consistencyOf rewards low volatility in the recent window: 1 for an
// all-same run, shrinking as outcomes alternate.
func consistencyOf(recent []bool, mean float64) float64 {
	var variance float64
	for _, ok := range recent {
		v := 0.0
		if ok {
			v = 1.0
		}
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(recent))
	return math.Max(0, 1-math.Sqrt(variance))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
