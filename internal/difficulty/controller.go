// Package difficulty adapts the target exercise difficulty within a session.
// The adjustment is session-scoped: streak counters live on the
// SessionContext and start at zero every session.
package difficulty

import "github.com/adaptly/practicekit/internal/models"

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// StreakStep is how many consecutive same-direction outcomes move the
	// target by one.
	StreakStep = 3
)

// BaseForLevel maps a learner's overall level to a starting difficulty.
func BaseForLevel(level int) int {
	switch {
	case level <= 5:
		return 1
	case level <= 15:
		return 2
	case level <= 30:
		return 3
	default:
		return 4
	}
}

// TargetFor computes the target difficulty for the next exercise. Every
// StreakStep consecutive correct answers push the target up one; the same
// run of incorrect answers pulls it down one. At most one of the two
// counters is non-zero at a time (see Advance).
func TargetFor(level, consecutiveCorrect, consecutiveIncorrect int) int {
	target := BaseForLevel(level) + consecutiveCorrect/StreakStep - consecutiveIncorrect/StreakStep
	if target < MinDifficulty {
		return MinDifficulty
	}
	if target > MaxDifficulty {
		return MaxDifficulty
	}
	return target
}

// Advance records one outcome on the session context and refreshes its
// target difficulty. An outcome always zeroes the opposite streak counter.
func Advance(sctx *models.SessionContext, correct bool) {
	if correct {
		sctx.ConsecutiveCorrect++
		sctx.ConsecutiveIncorrect = 0
	} else {
		sctx.ConsecutiveIncorrect++
		sctx.ConsecutiveCorrect = 0
	}
	sctx.TargetDifficulty = TargetFor(sctx.Level, sctx.ConsecutiveCorrect, sctx.ConsecutiveIncorrect)
}
