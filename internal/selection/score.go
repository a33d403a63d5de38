// Package selection ranks candidate exercises for a learner's next batch.
// Scoring combines mastery tier, spaced-repetition due state, difficulty
// closeness, retry and struggle signals and a variety penalty; every signal
// also feeds a learner-facing selection reason.
package selection

import (
	"time"

	"github.com/adaptly/practicekit/internal/models"
)

// Mastery tier cutoffs.
const (
	weakBelow   = 40.0
	strongAbove = 70.0
)

// ScoreParams tunes the candidate scorer.
type ScoreParams struct {
	Base float64

	// Spaced-repetition terms.
	OverdueBase    float64 // added once a due date has passed
	OverduePerDay  float64 // added per day overdue
	OverdueDayCap  int     // overdue days counted at most
	NotYetDue      float64 // subtracted while a due date lies in the future
	NeverAttempted float64 // added when no history exists

	// Difficulty closeness.
	DifficultyGapPenalty float64 // per step of |difficulty - target|

	// Struggle signals.
	RetryFailedBonus float64 // last attempt on this exercise was wrong
	LowEaseBonus     float64 // ease factor below LowEaseThreshold
	LowEaseThreshold float64

	// Variety: repeated exposure past the threshold costs per extra view.
	VarietyThreshold int
	VarietyPenalty   float64

	// TierBonus[sessionType] -> {weak, developing, strong} allocation.
	TierBonus map[models.SessionType]TierAllocation
}

// TierAllocation fixes how one session type rewards the three mastery tiers.
type TierAllocation struct {
	Weak       float64
	Developing float64
	Strong     float64
}

// DefaultScoreParams returns the stock tuning.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{
		Base:                 100,
		OverdueBase:          40,
		OverduePerDay:        2,
		OverdueDayCap:        30,
		NotYetDue:            60,
		NeverAttempted:       25,
		DifficultyGapPenalty: 15,
		RetryFailedBonus:     30,
		LowEaseBonus:         20,
		LowEaseThreshold:     2.0,
		VarietyThreshold:     5,
		VarietyPenalty:       5,
		TierBonus: map[models.SessionType]TierAllocation{
			models.SessionPractice:  {Weak: 50, Developing: 30, Strong: 5},
			models.SessionReview:    {Weak: 40, Developing: 35, Strong: 15},
			models.SessionChallenge: {Weak: 10, Developing: 30, Strong: 45},
		},
	}
}

// ScoreCandidate scores one exercise against the learner's state and returns
// the score with the reasons that apply, highest priority first. hist is nil
// when the learner has never attempted the exercise.
func ScoreCandidate(ex models.Exercise, hist *models.ExerciseHistory, sctx models.SessionContext, now time.Time, p ScoreParams) (float64, []models.SelectionReason) {
	score := p.Base
	var reasons []models.SelectionReason

	// Mastery tier bonus, allocated per session type.
	alloc := p.TierBonus[sctx.Type]
	masteryLevel, tracked := sctx.Mastery[ex.SkillID]
	switch {
	case masteryLevel < weakBelow:
		score += alloc.Weak
		if tracked {
			reasons = append(reasons, weakPointReason())
		}
	case masteryLevel > strongAbove:
		score += alloc.Strong
		reasons = append(reasons, challengeReason())
	default:
		score += alloc.Developing
		reasons = append(reasons, reinforceReason())
	}
	if !tracked {
		reasons = append(reasons, newTopicReason())
	}

	// Spaced repetition: overdue pulls hard, not-yet-due pushes away, never
	// attempted gets a moderate nudge.
	switch {
	case hist == nil || hist.NextReviewAt == nil:
		score += p.NeverAttempted
	case !now.Before(*hist.NextReviewAt):
		overdueDays := int(now.Sub(*hist.NextReviewAt).Hours() / 24)
		if overdueDays > p.OverdueDayCap {
			overdueDays = p.OverdueDayCap
		}
		score += p.OverdueBase + p.OverduePerDay*float64(overdueDays)
		reasons = append(reasons, dueForReviewReason(overdueDays))
	default:
		score -= p.NotYetDue
	}

	// Difficulty closeness.
	gap := ex.Difficulty - sctx.TargetDifficulty
	if gap < 0 {
		gap = -gap
	}
	score -= p.DifficultyGapPenalty * float64(gap)
	if gap == 0 {
		reasons = append(reasons, difficultyMatchReason(ex.Difficulty))
	}

	if hist != nil {
		if hist.LastResult != nil && !*hist.LastResult {
			score += p.RetryFailedBonus
			reasons = append(reasons, retryFailedReason())
		}
		if hist.TimesSeen > 0 && hist.EaseFactor < p.LowEaseThreshold {
			score += p.LowEaseBonus
			reasons = append(reasons, strugglingReason())
		}
		if hist.TimesSeen > p.VarietyThreshold {
			score -= p.VarietyPenalty * float64(hist.TimesSeen-p.VarietyThreshold)
		}
	}

	sortReasons(reasons)
	return score, reasons
}
