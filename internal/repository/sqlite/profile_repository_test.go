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

func sampleProfile(learnerID int64) models.LearnerProfile {
	day := testTime.Truncate(24 * time.Hour)
	return models.LearnerProfile{
		LearnerID:               learnerID,
		TotalXP:                 340,
		TotalQuestionsAttempted: 42,
		TotalCorrectAnswers:     31,
		TotalPracticeMinutes:    55,
		CurrentStreak:           4,
		LongestStreak:           9,
		LastPracticeDate:        &day,
		UpdatedAt:               testTime,
	}
}

func TestProfileMerge_InsertThenGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProfileRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleProfile(1)))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 340, got.TotalXP)
	assert.Equal(t, 42, got.TotalQuestionsAttempted)
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 9, got.LongestStreak)
	require.NotNil(t, got.LastPracticeDate)
	assert.Equal(t, 2, got.Level())
}

func TestProfileMerge_UpdatesExistingRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProfileRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleProfile(1)))

	updated := sampleProfile(1)
	updated.TotalXP = 400
	updated.CurrentStreak = 5
	require.NoError(t, repo.Merge(ctx, "sub-2", updated))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 400, got.TotalXP)
	assert.Equal(t, 5, got.CurrentStreak)
}

func TestProfileMerge_RetryWithSameSubmissionIsNoOp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProfileRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, "sub-1", sampleProfile(1)))

	retry := sampleProfile(1)
	retry.TotalXP = 680
	require.NoError(t, repo.Merge(ctx, "sub-1", retry))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 340, got.TotalXP, "retried submission must not double-count")
}

func TestProfileGet_MissingRecordIsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProfileRepository(database.DB)

	got, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileMerge_NoPracticeDateStoresNull(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProfileRepository(database.DB)
	ctx := context.Background()

	p := sampleProfile(1)
	p.LastPracticeDate = nil
	require.NoError(t, repo.Merge(ctx, "sub-1", p))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got.LastPracticeDate)
}
