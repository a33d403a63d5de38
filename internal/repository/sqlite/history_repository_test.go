package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository/sqlite"
	"github.com/adaptly/practicekit/internal/testutil"
)

var testTime = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func sampleHistory(learnerID, exerciseID int64) models.ExerciseHistory {
	correct := true
	due := testTime.AddDate(0, 0, 6)
	return models.ExerciseHistory{
		LearnerID:    learnerID,
		ExerciseID:   exerciseID,
		TimesSeen:    3,
		TimesCorrect: 2,
		LastResult:   &correct,
		EaseFactor:   2.36,
		IntervalDays: 6,
		NextReviewAt: &due,
		UpdatedAt:    testTime,
	}
}

func TestHistoryMerge_InsertThenGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewHistoryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleHistory(1, 10)))

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TimesSeen)
	assert.Equal(t, 2, got.TimesCorrect)
	require.NotNil(t, got.LastResult)
	assert.True(t, *got.LastResult)
	assert.InDelta(t, 2.36, got.EaseFactor, 1e-9)
	assert.Equal(t, 6, got.IntervalDays)
	require.NotNil(t, got.NextReviewAt)
	assert.True(t, got.NextReviewAt.Equal(testTime.AddDate(0, 0, 6)))
}

func TestHistoryMerge_UpdatesExistingRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewHistoryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleHistory(1, 10)))

	updated := sampleHistory(1, 10)
	updated.TimesSeen = 4
	updated.TimesCorrect = 3
	require.NoError(t, repo.Merge(ctx, "sub-2", updated))

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, got.TimesSeen)
	assert.Equal(t, 3, got.TimesCorrect)
}

func TestHistoryMerge_RetryWithSameSubmissionIsNoOp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewHistoryRepository(database.DB)
	ctx := context.Background()

	first := sampleHistory(1, 10)
	require.NoError(t, repo.Merge(ctx, "sub-1", first))

	// A blind retry recomputed from stale state would bump the counters
	// again; the submission claim must swallow it.
	retry := first
	retry.TimesSeen = 6
	retry.TimesCorrect = 4
	require.NoError(t, repo.Merge(ctx, "sub-1", retry))

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TimesSeen, "retried submission must not double-count")
	assert.Equal(t, 2, got.TimesCorrect)
}

func TestHistoryGet_MissingRecordIsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewHistoryRepository(database.DB)

	got, err := repo.Get(context.Background(), 1, 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryGetBatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewHistoryRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleHistory(1, 10)))
	require.NoError(t, repo.Merge(ctx, "sub-1", sampleHistory(1, 11)))
	require.NoError(t, repo.Merge(ctx, "sub-1", sampleHistory(2, 10))) // other learner

	got, err := repo.GetBatch(ctx, 1, []int64{10, 11, 12})
	require.NoError(t, err)
	assert.Len(t, got, 2, "missing ids are simply absent")
	assert.Contains(t, got, int64(10))
	assert.Contains(t, got, int64(11))

	empty, err := repo.GetBatch(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
