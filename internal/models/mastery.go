package models

import "time"

// DifficultyStat is the attempt/correct tally for one difficulty bucket.
type DifficultyStat struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// SkillMastery is one learner's mastery aggregate for one taxonomy node.
// RecentOutcomes keeps the newest outcome last and is trimmed to the
// estimator's window on write.
type SkillMastery struct {
	LearnerID          int64                  `json:"learner_id"`
	SkillID            int64                  `json:"skill_id"`
	MasteryLevel       float64                `json:"mastery_level"` // 0-100
	QuestionsAttempted int                    `json:"questions_attempted"`
	QuestionsCorrect   int                    `json:"questions_correct"`
	DifficultyStats    map[int]DifficultyStat `json:"difficulty_stats"`
	RecentOutcomes     []bool                 `json:"recent_outcomes"`
	LastCorrectStreak  int                    `json:"last_correct_streak"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// Accuracy returns the lifetime accuracy ratio.
func (sm *SkillMastery) Accuracy() float64 {
	if sm.QuestionsAttempted == 0 {
		return 0.0
	}
	return float64(sm.QuestionsCorrect) / float64(sm.QuestionsAttempted)
}
