package models

// ReasonKind tags why an exercise was picked.
type ReasonKind string

const (
	ReasonRetryFailed     ReasonKind = "retry-failed"
	ReasonDueForReview    ReasonKind = "due-for-review"
	ReasonWeakPoint       ReasonKind = "weak-point"
	ReasonStruggling      ReasonKind = "struggling"
	ReasonChallenge       ReasonKind = "challenge"
	ReasonNewTopic        ReasonKind = "new-topic"
	ReasonReinforce       ReasonKind = "reinforce"
	ReasonDifficultyMatch ReasonKind = "difficulty-match"
)

// SelectionReason is a learner-facing explanation attached to a selected
// exercise. Priority orders reasons within one exercise's list only; it plays
// no part in ranking exercises against each other.
type SelectionReason struct {
	Kind        ReasonKind `json:"kind"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
}

// ScoredExercise pairs a candidate with its score and its reasons, highest
// priority first.
type ScoredExercise struct {
	Exercise Exercise          `json:"exercise"`
	Score    float64           `json:"score"`
	Reasons  []SelectionReason `json:"reasons"`
}

// TopReason returns the highest-priority reason, or nil when none applied.
func (s *ScoredExercise) TopReason() *SelectionReason {
	if len(s.Reasons) == 0 {
		return nil
	}
	return &s.Reasons[0]
}
