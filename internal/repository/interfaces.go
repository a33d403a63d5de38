package repository

import (
	"context"

	"github.com/adaptly/practicekit/internal/models"
)

// ExerciseRepository handles the exercise bank. The engine itself only lists
// candidates pre-filtered by the caller; inserts exist for seeding and tests.
// Get reports a NOT_FOUND coded error for a missing id: unlike learner state,
// an absent exercise is never a valid blank slate.
type ExerciseRepository interface {
	Get(ctx context.Context, id int64) (*models.Exercise, error)
	List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error)
	Count(ctx context.Context, filter models.ExerciseFilter) (int, error)
	Insert(ctx context.Context, ex models.Exercise) (int64, error)
	InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error)
}

// HistoryRepository handles per-learner exercise scheduling state.
// Merge is a merge-write: it inserts the record if absent, else overwrites
// it. submissionID deduplicates retries of the same session completion.
type HistoryRepository interface {
	Get(ctx context.Context, learnerID, exerciseID int64) (*models.ExerciseHistory, error)
	GetBatch(ctx context.Context, learnerID int64, exerciseIDs []int64) (map[int64]*models.ExerciseHistory, error)
	Merge(ctx context.Context, submissionID string, h models.ExerciseHistory) error
}

// MasteryRepository handles per-learner, per-taxonomy-node mastery records.
type MasteryRepository interface {
	Get(ctx context.Context, learnerID, skillID int64) (*models.SkillMastery, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]models.SkillMastery, error)
	Merge(ctx context.Context, submissionID string, m models.SkillMastery) error
}

// ProfileRepository handles the per-learner rollup.
type ProfileRepository interface {
	Get(ctx context.Context, learnerID int64) (*models.LearnerProfile, error)
	Merge(ctx context.Context, submissionID string, p models.LearnerProfile) error
}
