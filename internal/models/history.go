package models

import "time"

// ExerciseHistory tracks one learner's scheduling state for one exercise.
// LastResult is nil until the first attempt is recorded; NextReviewAt is nil
// until the first review is scheduled.
type ExerciseHistory struct {
	LearnerID    int64      `json:"learner_id"`
	ExerciseID   int64      `json:"exercise_id"`
	TimesSeen    int        `json:"times_seen"`
	TimesCorrect int        `json:"times_correct"`
	LastResult   *bool      `json:"last_result"`
	EaseFactor   float64    `json:"ease_factor"` // bounded [1.3, 3.0]
	IntervalDays int        `json:"interval_days"`
	NextReviewAt *time.Time `json:"next_review_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
