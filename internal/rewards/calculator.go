// Package rewards converts a batch of graded results into experience points.
package rewards

import "math"

// Params tunes the XP formula.
type Params struct {
	CorrectBase    float64
	IncorrectBase  float64
	Multipliers    map[int]float64 // difficulty bucket -> multiplier
	SpeedBonus     float64         // per correct answer in a fast session
	PerfectBonus   float64         // once per all-correct session
	PerfectMinSize int             // minimum batch size for the perfect bonus
	DailyCap       int
}

// DefaultParams returns the stock XP tuning.
func DefaultParams() Params {
	return Params{
		CorrectBase:   10,
		IncorrectBase: 2,
		Multipliers: map[int]float64{
			1: 1.0,
			2: 1.25,
			3: 1.5,
			4: 1.75,
			5: 2.0,
		},
		SpeedBonus:     3,
		PerfectBonus:   25,
		PerfectMinSize: 5,
		DailyCap:       500,
	}
}

// GradedResult is one answered exercise with the metadata the formula needs.
type GradedResult struct {
	Correct         bool
	Difficulty      int
	ExpectedSeconds float64
}

// Calculate computes the XP for one session. Correct answers earn the base
// times the difficulty multiplier; incorrect answers earn the flat incorrect
// base. The speed bonus applies per correct answer when the session's average
// time per question beats half that exercise's expected time, and a flat
// perfect bonus lands once when every answer in a big-enough batch is
// correct. The result is rounded and clamped into [0, DailyCap].
func Calculate(results []GradedResult, sessionSeconds float64, p Params) int {
	if len(results) == 0 {
		return 0
	}

	avgSeconds := sessionSeconds / float64(len(results))

	var xp float64
	allCorrect := true
	for _, r := range results {
		if !r.Correct {
			allCorrect = false
			xp += p.IncorrectBase
			continue
		}
		mult, ok := p.Multipliers[r.Difficulty]
		if !ok {
			mult = 1.0
		}
		xp += p.CorrectBase * mult
		if r.ExpectedSeconds > 0 && avgSeconds < r.ExpectedSeconds/2 {
			xp += p.SpeedBonus
		}
	}

	if allCorrect && len(results) >= p.PerfectMinSize {
		xp += p.PerfectBonus
	}

	total := int(math.Round(xp))
	if total < 0 {
		total = 0
	}
	if total > p.DailyCap {
		total = p.DailyCap
	}
	return total
}
