package selection_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/adaptly/practicekit/internal/errors"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/selection"
	"github.com/adaptly/practicekit/internal/testutil/mocks"
)

func makePool(n int) []models.Exercise {
	pool := make([]models.Exercise, n)
	for i := range pool {
		pool[i] = models.Exercise{
			ID:         int64(i + 1),
			SkillID:    int64(i%4 + 1),
			Difficulty: i%5 + 1,
		}
	}
	return pool
}

func emptyHistories() map[int64]*models.ExerciseHistory {
	return map[int64]*models.ExerciseHistory{}
}

func TestSelect_ReturnsRequestedCount(t *testing.T) {
	histories := new(mocks.MockHistoryRepository)
	histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).Return(emptyHistories(), nil)

	s := selection.NewSelector(histories, selection.WithRand(rand.New(rand.NewSource(42))))
	got, err := s.Select(context.Background(), makePool(20), 5, baseContext())

	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestSelect_ShrinksToPoolSize(t *testing.T) {
	histories := new(mocks.MockHistoryRepository)
	histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).Return(emptyHistories(), nil)

	s := selection.NewSelector(histories, selection.WithRand(rand.New(rand.NewSource(42))))
	got, err := s.Select(context.Background(), makePool(3), 10, baseContext())

	require.NoError(t, err)
	assert.Len(t, got, 3, "K beyond pool size returns the whole pool")
}

func TestSelect_NoDuplicates(t *testing.T) {
	histories := new(mocks.MockHistoryRepository)
	histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).Return(emptyHistories(), nil)

	s := selection.NewSelector(histories, selection.WithRand(rand.New(rand.NewSource(7))))
	got, err := s.Select(context.Background(), makePool(30), 10, baseContext())

	require.NoError(t, err)
	seen := make(map[int64]bool)
	for _, se := range got {
		assert.False(t, seen[se.Exercise.ID], "exercise %d returned twice", se.Exercise.ID)
		seen[se.Exercise.ID] = true
	}
}

func TestSelect_DeterministicWithSeededRand(t *testing.T) {
	run := func() []int64 {
		histories := new(mocks.MockHistoryRepository)
		histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).Return(emptyHistories(), nil)
		s := selection.NewSelector(histories, selection.WithRand(rand.New(rand.NewSource(99))))
		got, err := s.Select(context.Background(), makePool(20), 5, baseContext())
		require.NoError(t, err)
		ids := make([]int64, len(got))
		for i, se := range got {
			ids[i] = se.Exercise.ID
		}
		return ids
	}

	assert.Equal(t, run(), run(), "same seed must give the same batch")
}

func TestSelect_ShuffleStaysInsideTopTier(t *testing.T) {
	// 12 overdue candidates score far above 8 not-yet-due ones. With K=4 the
	// top tier is exactly the 12 overdue exercises; whatever the shuffle
	// does, nothing from the weak group may leak into the result.
	pool := make([]models.Exercise, 20)
	hist := emptyHistories()
	overdueAt := now.AddDate(0, 0, -5)
	futureAt := now.AddDate(0, 0, 5)
	weak := make(map[int64]bool)
	for i := range pool {
		id := int64(i + 1)
		pool[i] = models.Exercise{ID: id, SkillID: 1, Difficulty: 2}
		due := overdueAt
		if i >= 12 {
			due = futureAt
			weak[id] = true
		}
		d := due
		hist[id] = &models.ExerciseHistory{TimesSeen: 1, EaseFactor: 2.5, NextReviewAt: &d}
	}

	histories := new(mocks.MockHistoryRepository)
	histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).Return(hist, nil)

	for seed := int64(0); seed < 20; seed++ {
		s := selection.NewSelector(histories,
			selection.WithRand(rand.New(rand.NewSource(seed))),
			selection.WithClock(func() time.Time { return now }))
		got, err := s.Select(context.Background(), pool, 4, baseContext())
		require.NoError(t, err)
		for _, se := range got {
			assert.False(t, weak[se.Exercise.ID],
				"seed %d leaked low-tier exercise %d", seed, se.Exercise.ID)
		}
	}
}

func TestSelect_EmptyPoolIsValidationError(t *testing.T) {
	histories := new(mocks.MockHistoryRepository)
	s := selection.NewSelector(histories)

	_, err := s.Select(context.Background(), nil, 5, baseContext())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	histories.AssertNotCalled(t, "GetBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSelect_ReadFailurePropagates(t *testing.T) {
	histories := new(mocks.MockHistoryRepository)
	histories.On("GetBatch", mock.Anything, int64(1), mock.Anything).
		Return(nil, fmt.Errorf("connection reset"))

	s := selection.NewSelector(histories)
	got, err := s.Select(context.Background(), makePool(5), 3, baseContext())

	assert.Nil(t, got, "no partial batch on read failure")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStoreRead))
}
