package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/adaptly/practicekit/internal/errors"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
	"github.com/adaptly/practicekit/internal/repository/sqlite"
	"github.com/adaptly/practicekit/internal/testutil"
)

func seedExercises(t *testing.T, repo repository.ExerciseRepository) []int64 {
	t.Helper()
	ids, err := repo.InsertBatch(context.Background(), []models.Exercise{
		{SkillID: 1, Subject: "math", Prompt: "2+2", Difficulty: 1, ExpectedSeconds: 10},
		{SkillID: 1, Subject: "math", Prompt: "12*12", Difficulty: 3, ExpectedSeconds: 30},
		{SkillID: 2, Subject: "math", Prompt: "derivative of x^2", Difficulty: 4, ExpectedSeconds: 45},
		{SkillID: 3, Subject: "reading", Prompt: "main idea of passage", Difficulty: 2, ExpectedSeconds: 60},
	})
	require.NoError(t, err)
	require.Len(t, ids, 4)
	return ids
}

func TestExerciseInsertThenGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewExerciseRepository(database.DB)
	ctx := context.Background()

	id, err := repo.Insert(ctx, models.Exercise{
		SkillID: 7, Subject: "math", Prompt: "3*7", Difficulty: 2, ExpectedSeconds: 15,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.SkillID)
	assert.Equal(t, "math", got.Subject)
	assert.Equal(t, "3*7", got.Prompt)
	assert.Equal(t, 2, got.Difficulty)
	assert.InDelta(t, 15, got.ExpectedSeconds, 1e-9)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestExerciseGet_MissingRecordIsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewExerciseRepository(database.DB)

	_, err := repo.Get(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestExerciseList_Filters(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewExerciseRepository(database.DB)
	ctx := context.Background()
	seedExercises(t, repo)

	all, err := repo.List(ctx, models.ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	math, err := repo.List(ctx, models.ExerciseFilter{Subject: "math"})
	require.NoError(t, err)
	assert.Len(t, math, 3)

	skill, err := repo.List(ctx, models.ExerciseFilter{SkillID: 1})
	require.NoError(t, err)
	assert.Len(t, skill, 2)

	hard, err := repo.List(ctx, models.ExerciseFilter{Subject: "math", Difficulty: 4})
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, "derivative of x^2", hard[0].Prompt)
}

func TestExerciseList_LimitOffset(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewExerciseRepository(database.DB)
	ctx := context.Background()
	ids := seedExercises(t, repo)

	page, err := repo.List(ctx, models.ExerciseFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID, "ordered by id")
	assert.Equal(t, ids[2], page[1].ID)
}

func TestExerciseCount(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewExerciseRepository(database.DB)
	ctx := context.Background()
	seedExercises(t, repo)

	total, err := repo.Count(ctx, models.ExerciseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	reading, err := repo.Count(ctx, models.ExerciseFilter{Subject: "reading"})
	require.NoError(t, err)
	assert.Equal(t, 1, reading)
}
