package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository/sqlite"
	"github.com/adaptly/practicekit/internal/testutil"
)

func sampleMastery(learnerID, skillID int64) models.SkillMastery {
	return models.SkillMastery{
		LearnerID:          learnerID,
		SkillID:            skillID,
		MasteryLevel:       62.5,
		QuestionsAttempted: 8,
		QuestionsCorrect:   6,
		DifficultyStats: map[int]models.DifficultyStat{
			2: {Attempted: 5, Correct: 4},
			3: {Attempted: 3, Correct: 2},
		},
		RecentOutcomes:    []bool{true, true, false, true},
		LastCorrectStreak: 1,
		UpdatedAt:         testTime,
	}
}

func TestMasteryMerge_RoundTripsNestedFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewMasteryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleMastery(1, 7)))

	got, err := repo.Get(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 62.5, got.MasteryLevel, 1e-9)
	assert.Equal(t, 8, got.QuestionsAttempted)
	assert.Equal(t, models.DifficultyStat{Attempted: 5, Correct: 4}, got.DifficultyStats[2])
	assert.Equal(t, models.DifficultyStat{Attempted: 3, Correct: 2}, got.DifficultyStats[3])
	assert.Equal(t, []bool{true, true, false, true}, got.RecentOutcomes)
	assert.Equal(t, 1, got.LastCorrectStreak)
}

func TestMasteryMerge_RetryWithSameSubmissionIsNoOp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewMasteryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleMastery(1, 7)))

	retry := sampleMastery(1, 7)
	retry.QuestionsAttempted = 16
	require.NoError(t, repo.Merge(ctx, "sub-1", retry))

	got, err := repo.Get(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, got.QuestionsAttempted, "retried submission must not double-count")
}

func TestMasteryGet_MissingRecordIsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewMasteryRepository(database.DB)

	got, err := repo.Get(context.Background(), 1, 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMasteryListByLearner(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewMasteryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleMastery(1, 7)))
	require.NoError(t, repo.Merge(ctx, "sub-1", sampleMastery(1, 3)))
	require.NoError(t, repo.Merge(ctx, "sub-1", sampleMastery(2, 7)))

	got, err := repo.ListByLearner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].SkillID, "ordered by skill id")
	assert.Equal(t, int64(7), got[1].SkillID)
}
