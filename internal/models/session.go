package models

// SessionType names a practice mode. The type fixes how selection scoring
// allocates its mastery-tier bonus across weak/developing/strong skills.
type SessionType string

const (
	SessionPractice  SessionType = "practice"
	SessionReview    SessionType = "review"
	SessionChallenge SessionType = "challenge"
)

// SessionContext is the ephemeral per-session state threaded explicitly
// through selection and difficulty adjustment. It is never persisted; the
// streak counters reset when a new session starts.
type SessionContext struct {
	LearnerID            int64
	Type                 SessionType
	Subject              string
	Level                int
	Mastery              map[int64]float64 // skill id -> mastery snapshot, attempted skills only
	TargetDifficulty     int
	ConsecutiveCorrect   int
	ConsecutiveIncorrect int
}

// AnswerResult is one graded outcome handed in by the caller. Correctness is
// judged against the answer key before this engine is invoked.
type AnswerResult struct {
	ExerciseID       int64   `json:"exercise_id"`
	Correct          bool    `json:"correct"`
	TimeSpentSeconds float64 `json:"time_spent_seconds"`
}
