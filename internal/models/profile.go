package models

import "time"

// LearnerProfile is the per-learner rollup updated once per completed session.
// TotalXP is monotonically non-decreasing; LastPracticeDate carries only the
// calendar day (time component is zeroed by the store).
type LearnerProfile struct {
	LearnerID               int64      `json:"learner_id"`
	TotalXP                 int        `json:"total_xp"`
	TotalQuestionsAttempted int        `json:"total_questions_attempted"`
	TotalCorrectAnswers     int        `json:"total_correct_answers"`
	TotalPracticeMinutes    int        `json:"total_practice_minutes"`
	CurrentStreak           int        `json:"current_streak"`
	LongestStreak           int        `json:"longest_streak"`
	LastPracticeDate        *time.Time `json:"last_practice_date"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// Level maps accumulated XP to a coarse learner level, starting at 1.
func (p *LearnerProfile) Level() int {
	return p.TotalXP/250 + 1
}
