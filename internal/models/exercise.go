package models

import "time"

type Exercise struct {
	ID              int64     `json:"id"`
	SkillID         int64     `json:"skill_id"`
	Subject         string    `json:"subject"`
	Prompt          string    `json:"prompt"`
	Difficulty      int       `json:"difficulty"` // 1-5
	ExpectedSeconds float64   `json:"expected_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExerciseFilter narrows exercise listings. Zero values mean "no filter".
type ExerciseFilter struct {
	Subject    string
	SkillID    int64
	Difficulty int
	Limit      int
	Offset     int
}
